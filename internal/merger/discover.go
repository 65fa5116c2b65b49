package merger

import (
	"github.com/pkg/errors"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
)

// ErrNoColumns is returned when there is no sheet to offer join keys from.
var ErrNoColumns = errors.New("no sheet selected to read columns from")

// FileSheets lists the sheets found in one upload.
type FileSheets struct {
	File   string   `json:"file"`
	Sheets []string `json:"sheets"`
}

// Discover lists the sheets of every upload. Uploads that cannot be parsed
// are left out and reported as warnings; the others are unaffected.
func Discover(uploads []*workbook.Upload) ([]FileSheets, []Warning) {
	var (
		found    []FileSheets
		warnings []Warning
	)
	for _, u := range uploads {
		names, err := workbook.SheetNames(u)
		if err != nil {
			warnings = append(warnings, Warning{File: u.Name, Reason: err.Error()})
			continue
		}
		found = append(found, FileSheets{File: u.Name, Sheets: names})
	}
	return found, warnings
}

// DefaultSelections selects every discovered sheet, file by file.
func DefaultSelections(found []FileSheets) []Selection {
	var sels []Selection
	for _, fs := range found {
		for _, sheet := range fs.Sheets {
			sels = append(sels, Selection{File: fs.File, Sheet: sheet})
		}
	}
	return sels
}

// Columns returns the column names of the first selected sheet of the first
// upload, read with the first row as header. These are the join keys a
// horizontal merge can use.
func Columns(uploads []*workbook.Upload, selections []Selection) ([]string, error) {
	if len(uploads) == 0 {
		return nil, errors.WithStack(ErrNoColumns)
	}
	first := uploads[0]
	sheet := ""
	for _, sel := range selections {
		if sel.File == first.Name {
			sheet = sel.Sheet
			break
		}
	}
	if sheet == "" {
		return nil, errors.Wrapf(ErrNoColumns, "file %s", first.Name)
	}

	book, err := workbook.Open(first)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	t, err := book.ReadSheet(sheet, 0)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read columns of %s#%s", first.Name, sheet)
	}
	return t.ColumnNames(), nil
}
