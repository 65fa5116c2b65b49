package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/ryabkov82/sheet-merger/internal/table"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a sheet into a table, taking column names from headerRow
// (0-based). Rows above the header are dropped. Header names are trimmed;
// blank ones become "Unnamed: i" and repeated ones get ".1", ".2" suffixes.
func (b *Book) ReadSheet(sheet string, headerRow int) (*table.Table, error) {
	if headerRow < 0 {
		return nil, errors.Errorf("invalid header row %d", headerRow)
	}
	grid, err := b.readGrid(sheet)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 && headerRow == 0 {
		return table.New(0), nil
	}
	if headerRow >= len(grid) {
		return nil, errors.Errorf("header row %d is beyond the last row %d of sheet %s", headerRow+1, len(grid), sheet)
	}

	header := grid[headerRow]
	data := grid[headerRow+1:]
	width := len(header)
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}

	names := columnNames(header, width)
	t := table.New(len(data))
	for col, name := range names {
		values := make([]table.Value, len(data))
		for i, row := range data {
			if col < len(row) {
				values[i] = row[col]
			}
		}
		if err := t.AddColumn(name, values); err != nil {
			return nil, errors.WithMessagef(err, "sheet %s", sheet)
		}
	}
	return t, nil
}

// readGrid returns every row of the sheet as typed values. Missing rows in
// the middle of the sheet come back as empty rows.
func (b *Book) readGrid(sheet string) ([][]table.Value, error) {
	rows, err := b.file.Rows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rows of %s#%s", b.name, sheet)
	}
	defer rows.Close()

	var grid [][]table.Value
	rowNum := 0
	for rows.Next() {
		rowNum++
		cols, err := rows.Columns()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read row %d of %s#%s", rowNum, b.name, sheet)
		}
		row := make([]table.Value, len(cols))
		for i, text := range cols {
			if text == "" {
				continue
			}
			cellRef, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			row[i] = b.cellValue(sheet, cellRef, text)
		}
		grid = append(grid, row)
	}
	if err := rows.Error(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate rows of %s#%s", b.name, sheet)
	}
	return grid, nil
}

// cellValue types a non-empty cell. Numeric cells keep their raw number
// unless they are formatted as dates; everything else is text as displayed.
func (b *Book) cellValue(sheet, cellRef, text string) table.Value {
	valType, err := b.file.GetCellType(sheet, cellRef)
	if err != nil {
		return table.Str(text)
	}
	switch valType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	default:
		return table.Str(text)
	}

	styleID, err := b.file.GetCellStyle(sheet, cellRef)
	if err == nil && b.isDateStyle(styleID) {
		return table.Str(text)
	}
	raw, err := b.file.GetCellValue(sheet, cellRef, excelize.Options{RawCellValue: true})
	if err != nil {
		return table.Str(text)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return table.Str(text)
	}
	return table.Num(n)
}

func (b *Book) isDateStyle(styleID int) bool {
	if isDate, ok := b.styles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := b.file.GetStyle(styleID); err == nil && style != nil {
		isDate = isDateFormat(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isCustomDateFormat(*style.CustomNumFmt)
		}
	}
	b.styles[styleID] = isDate
	return isDate
}

func isDateFormat(fmtID int) bool {
	switch fmtID {
	case 14, 15, 16, 17, 18, 19, 20, 21, 22, 27, 30, 36, 45, 46, 47, 50, 57:
		return true
	}
	return false
}

// isCustomDateFormat reports whether a custom number format renders a date or
// time. Quoted literals, escaped characters, padding and bracketed sections
// such as colors and locales are ignored; bracketed elapsed time like [h]
// counts as time.
func isCustomDateFormat(format string) bool {
	var sb strings.Builder
	runes := []rune(strings.ToLower(format))
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '"':
			for i++; i < len(runes) && runes[i] != '"'; i++ {
			}
		case '\\', '_', '*':
			i++
		case '[':
			j := i + 1
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if section := string(runes[i+1 : j]); section != "" && strings.Trim(section, "hms") == "" {
				sb.WriteString(section)
			}
			i = j
		default:
			sb.WriteRune(r)
		}
	}
	return strings.ContainsAny(sb.String(), "ymdhs")
}

func columnNames(header []table.Value, width int) []string {
	names := make([]string, width)
	taken := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i].String())
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if taken[name] {
			for n := 1; ; n++ {
				candidate := fmt.Sprintf("%s.%d", name, n)
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		taken[name] = true
		names[i] = name
	}
	return names
}
