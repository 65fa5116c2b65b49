package workbook

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/ryabkov82/sheet-merger/internal/table"
	"github.com/xuri/excelize/v2"
)

const (
	// ResultSheet is the only sheet of a merge result workbook.
	ResultSheet = "合併結果"
	// DefaultFileName is the suggested name of a merge result workbook.
	DefaultFileName = "合併結果.xlsx"
	// ContentType is the MIME type of a merge result workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	minColWidth = 8
	maxColWidth = 60
)

// Write encodes t as a workbook with a single ResultSheet: a header row
// followed by the data rows, without an index column.
func Write(w io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ResultSheet); err != nil {
		return errors.Wrapf(err, "failed to rename sheet to %s", ResultSheet)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	sw, err := f.NewStreamWriter(ResultSheet)
	if err != nil {
		return errors.Wrap(err, "failed to create stream writer")
	}

	// widths must be set before the first row is written
	for i, width := range columnWidths(t) {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return errors.Wrapf(err, "failed to set width of column %d", i+1)
		}
	}

	header := make([]interface{}, t.NumCols())
	for i, name := range t.ColumnNames() {
		header[i] = excelize.Cell{Value: name, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	for r := 0; r < t.NumRows(); r++ {
		values := t.Row(r)
		rowData := make([]interface{}, len(values))
		for i, v := range values {
			rowData[i] = v.Interface()
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := sw.SetRow(cell, rowData); err != nil {
			return errors.Wrapf(err, "failed to write row %d", r+2)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush stream writer")
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to encode workbook")
	}
	return nil
}

// Save writes t to path. The workbook is encoded in memory first, so a failed
// encoding never leaves a partial file behind.
func Save(path string, t *table.Table) error {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

// columnWidths sizes each column to its widest display text, counting East
// Asian wide characters twice.
func columnWidths(t *table.Table) []float64 {
	widths := make([]float64, t.NumCols())
	for i, col := range t.Columns() {
		widest := runewidth.StringWidth(col.Name)
		for _, v := range col.Values {
			if w := runewidth.StringWidth(v.String()); w > widest {
				widest = w
			}
		}
		width := float64(widest + 2)
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		widths[i] = width
	}
	return widths
}
