// Package testutil builds in-memory workbooks for tests.
package testutil

import (
	"bytes"
	"testing"

	"github.com/ryabkov82/sheet-merger/internal/workbook"
	"github.com/xuri/excelize/v2"
)

// Sheet is a fixture sheet: a name and rows of cell values. Cells are written
// with excelize.SetSheetRow, so ints and floats become numeric cells, strings
// become text cells and nil leaves the cell blank. Formats maps a cell
// reference such as "B2" to a custom number format applied to that cell.
type Sheet struct {
	Name    string
	Rows    [][]interface{}
	Formats map[string]string
}

// Workbook encodes sheets, in order, as an upload named name.
func Workbook(t testing.TB, name string, sheets ...Sheet) *workbook.Upload {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				t.Fatalf("rename sheet %s: %+v", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %s: %+v", s.Name, err)
		}
		for r, row := range s.Rows {
			row := row
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %+v", err)
			}
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				t.Fatalf("write %s!%s: %+v", s.Name, cell, err)
			}
		}
		for cell, format := range s.Formats {
			format := format
			style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
			if err != nil {
				t.Fatalf("number format %q: %+v", format, err)
			}
			if err := f.SetCellStyle(s.Name, cell, cell, style); err != nil {
				t.Fatalf("style %s!%s: %+v", s.Name, cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("encode workbook %s: %+v", name, err)
	}
	return &workbook.Upload{Name: name, Data: buf.Bytes()}
}

// ReadResult decodes a written workbook and returns its sheet names and the
// rows of its first sheet.
func ReadResult(t testing.TB, data []byte) ([]string, [][]string) {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open result: %+v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		t.Fatalf("read result rows: %+v", err)
	}
	return sheets, rows
}
