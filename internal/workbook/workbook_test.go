package workbook_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/ryabkov82/sheet-merger/internal/table"
	"github.com/ryabkov82/sheet-merger/internal/testutil"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBook(t *testing.T, u *workbook.Upload) *workbook.Book {
	t.Helper()
	b, err := workbook.Open(u)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSheetNames(t *testing.T) {
	u := testutil.Workbook(t, "book.xlsx",
		testutil.Sheet{Name: "二月"},
		testutil.Sheet{Name: "Jan"},
		testutil.Sheet{Name: "Mar"},
	)
	names, err := workbook.SheetNames(u)
	require.NoError(t, err)
	assert.Equal(t, []string{"二月", "Jan", "Mar"}, names)
}

func TestSheetNames_NotWorkbook(t *testing.T) {
	_, err := workbook.SheetNames(&workbook.Upload{Name: "notes.txt", Data: []byte("plain text")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes.txt")
}

func TestReadSheet_HeaderRow(t *testing.T) {
	u := testutil.Workbook(t, "report.xlsx", testutil.Sheet{
		Name: "Data",
		Rows: [][]interface{}{
			{"Quarterly report"},
			{nil},
			{" Name ", "Qty "},
			{"a", 1},
			{"b", 2.5},
		},
	})
	b := openBook(t, u)

	tests := []struct {
		name      string
		headerRow int
		wantCols  []string
		wantRows  int
	}{
		{name: "true-header", headerRow: 2, wantCols: []string{"Name", "Qty"}, wantRows: 2},
		{name: "first-row", headerRow: 0, wantCols: []string{"Quarterly report", "Unnamed: 1"}, wantRows: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := b.ReadSheet("Data", tt.headerRow)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, tbl.ColumnNames())
			assert.Equal(t, tt.wantRows, tbl.NumRows())
		})
	}

	tbl, err := b.ReadSheet("Data", 2)
	require.NoError(t, err)
	assert.Equal(t, []table.Value{table.Str("a"), table.Str("b")}, tbl.Column("Name").Values)
	assert.Equal(t, []table.Value{table.Num(1), table.Num(2.5)}, tbl.Column("Qty").Values)
}

func TestReadSheet_HeaderNames(t *testing.T) {
	u := testutil.Workbook(t, "names.xlsx", testutil.Sheet{
		Name: "S",
		Rows: [][]interface{}{
			{"A", nil, "A", " A ", "A.1"},
			{1, 2, 3, 4, 5, 6},
		},
	})
	tbl, err := openBook(t, u).ReadSheet("S", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Unnamed: 1", "A.1", "A.2", "A.1.1", "Unnamed: 5"}, tbl.ColumnNames())
}

func TestReadSheet_CellTypes(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	u := testutil.Workbook(t, "types.xlsx", testutil.Sheet{
		Name: "S",
		Rows: [][]interface{}{
			{"ID", "Code", "Day", "Note"},
			{7, "007", day, nil},
		},
	})
	tbl, err := openBook(t, u).ReadSheet("S", 0)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())

	row := tbl.Row(0)
	assert.Equal(t, table.Num(7), row[0])
	assert.Equal(t, table.Str("007"), row[1], "numeric-looking text stays text")
	assert.Equal(t, table.Text, row[2].Kind, "dates are kept as displayed text")
	assert.True(t, row[3].IsEmpty())
}

func TestReadSheet_FormattedNumbers(t *testing.T) {
	u := testutil.Workbook(t, "styled.xlsx", testutil.Sheet{
		Name: "S",
		Rows: [][]interface{}{
			{"Amount", "Due"},
			{1200, 45352},
			{nil, "later"},
		},
		Formats: map[string]string{
			"A2": "#,##0.00;[Red]-#,##0.00",
			"A3": "#,##0.00;[Red]-#,##0.00",
			"B2": "[$-409]yyyy-mm-dd",
		},
	})
	tbl, err := openBook(t, u).ReadSheet("S", 0)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())

	amount := tbl.Column("Amount")
	require.NotNil(t, amount)
	assert.Equal(t, table.Num(1200), amount.Values[0], "colored accounting format keeps the number")
	assert.True(t, amount.Values[1].IsEmpty())
	assert.True(t, amount.IsNumeric())
	assert.Equal(t, table.Text, tbl.Column("Due").Values[0].Kind, "locale-tagged date format stays a date")
}

func TestReadSheet_Errors(t *testing.T) {
	u := testutil.Workbook(t, "e.xlsx",
		testutil.Sheet{Name: "S", Rows: [][]interface{}{{"A"}, {1}}},
		testutil.Sheet{Name: "Empty"},
	)
	b := openBook(t, u)

	_, err := b.ReadSheet("S", 5)
	assert.Error(t, err, "header beyond the last row")

	_, err = b.ReadSheet("Missing", 0)
	assert.Error(t, err)

	tbl, err := b.ReadSheet("Empty", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumCols())
}

func TestWrite(t *testing.T) {
	tbl := table.New(2)
	require.NoError(t, tbl.AddColumn("科目", []table.Value{table.Str("現金"), table.Str("存款")}))
	require.NoError(t, tbl.AddColumn("金額", []table.Value{table.Num(100), table.Num(2.5)}))

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf, tbl))

	sheets, rows := testutil.ReadResult(t, buf.Bytes())
	assert.Equal(t, []string{workbook.ResultSheet}, sheets)
	assert.Equal(t, [][]string{
		{"科目", "金額"},
		{"現金", "100"},
		{"存款", "2.5"},
	}, rows)

	back, err := openBook(t, &workbook.Upload{Name: workbook.DefaultFileName, Data: buf.Bytes()}).ReadSheet(workbook.ResultSheet, 0)
	require.NoError(t, err)
	assert.Equal(t, []table.Value{table.Num(100), table.Num(2.5)}, back.Column("金額").Values, "numbers are written as numeric cells")
}
