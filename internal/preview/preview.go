// Package preview renders a merged table as aligned text for the terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ryabkov82/sheet-merger/internal/table"
)

const (
	// DefaultRows is the number of data rows shown when no limit is given.
	DefaultRows  = 20
	maxCellWidth = 30
	separator    = " | "
)

// Render writes the header and up to maxRows data rows of t to w, followed by
// a footer with the total row count. maxRows <= 0 means DefaultRows.
func Render(w io.Writer, t *table.Table, maxRows int) error {
	if maxRows <= 0 {
		maxRows = DefaultRows
	}
	shown := t.NumRows()
	if shown > maxRows {
		shown = maxRows
	}

	grid := make([][]string, 0, shown+1)
	grid = append(grid, t.ColumnNames())
	for r := 0; r < shown; r++ {
		values := t.Row(r)
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = v.String()
		}
		grid = append(grid, cells)
	}

	widths := make([]int, t.NumCols())
	for _, row := range grid {
		for i, cell := range row {
			if cw := runewidth.StringWidth(clip(cell)); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	for n, row := range grid {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
		if n == 0 {
			rule := make([]string, len(widths))
			for i, width := range widths {
				rule[i] = strings.Repeat("-", width)
			}
			if _, err := fmt.Fprintln(w, strings.Join(rule, "-+-")); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "(showing %d of %d rows, %d columns)\n", shown, t.NumRows(), t.NumCols())
	return err
}

func writeRow(w io.Writer, row []string, widths []int) error {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = runewidth.FillRight(clip(cell), widths[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, separator), " "))
	return err
}

func clip(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, maxCellWidth, "…")
}
