package workbook

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Upload is a workbook received by name and content. The name identifies the
// file in selections, warnings and suffixed column names.
type Upload struct {
	Name string
	Data []byte
}

// Load reads a workbook from disk. The upload is named after the file's base
// name.
func Load(path string) (*Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", path)
	}
	return &Upload{Name: filepath.Base(path), Data: data}, nil
}

// Book is an opened workbook.
type Book struct {
	name   string
	file   *excelize.File
	styles map[int]bool // style ID -> is date format
}

// Open parses an upload as a spreadsheet container.
func Open(u *Upload) (*Book, error) {
	f, err := excelize.OpenReader(bytes.NewReader(u.Data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open workbook %s", u.Name)
	}
	return &Book{
		name:   u.Name,
		file:   f,
		styles: make(map[int]bool),
	}, nil
}

// Name returns the upload name of the workbook.
func (b *Book) Name() string { return b.name }

// SheetNames returns the sheet names in workbook order.
func (b *Book) SheetNames() []string {
	return b.file.GetSheetList()
}

func (b *Book) Close() error {
	return b.file.Close()
}

// SheetNames opens the upload and lists its sheets.
func SheetNames(u *Upload) ([]string, error) {
	b, err := Open(u)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	names := b.SheetNames()
	if len(names) == 0 {
		return nil, errors.Errorf("workbook %s has no sheets", u.Name)
	}
	return names, nil
}
