package merger

import (
	"github.com/ryabkov82/sheet-merger/internal/table"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
)

// Tracking columns appended to every row of a vertical merge.
const (
	SourceFileColumn  = "來源檔案"
	SourceSheetColumn = "來源工作表"
)

// verticalFold stacks sheets read at the same header row. Columns are the
// union of all sheets' columns in first-seen order.
type verticalFold struct {
	headerRow int // 0-based
	acc       *table.Table
}

func (v *verticalFold) add(book *workbook.Book, sheet string) (int, error) {
	t, err := book.ReadSheet(sheet, v.headerRow)
	if err != nil {
		return 0, err
	}
	// an existing column of the same name is replaced
	t.RemoveColumn(SourceFileColumn)
	t.RemoveColumn(SourceSheetColumn)
	if err := t.AddConst(SourceFileColumn, table.Str(book.Name())); err != nil {
		return 0, err
	}
	if err := t.AddConst(SourceSheetColumn, table.Str(sheet)); err != nil {
		return 0, err
	}

	if v.acc == nil {
		v.acc = t
	} else {
		v.acc = table.Concat(v.acc, t)
	}
	return t.NumRows(), nil
}

func (v *verticalFold) result() (*table.Table, error) {
	v.acc.Fill()
	return v.acc, nil
}
