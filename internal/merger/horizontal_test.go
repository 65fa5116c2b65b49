package merger

import (
	"strings"
	"testing"

	"github.com/ryabkov82/sheet-merger/internal/testutil"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountKey = "會計科目"

func horizontalUploads(t *testing.T) []*workbook.Upload {
	a := testutil.Workbook(t, "a.xlsx",
		testutil.Sheet{Name: "S1", Rows: [][]interface{}{
			{accountKey, "Amount", "Memo"},
			{"現金", 100, "petty"},
			{"存款", 200, nil},
		}},
	)
	b := testutil.Workbook(t, "b.xlsx",
		testutil.Sheet{Name: "S1", Rows: [][]interface{}{
			{accountKey + " ", "Amount"},
			{" 存款", 50},
			{"應收", 7},
		}},
		testutil.Sheet{Name: "NoKey", Rows: [][]interface{}{
			{"Other", "Amount"},
			{"x", 1},
		}},
	)
	return []*workbook.Upload{a, b}
}

func TestEngine_MergeHorizontal(t *testing.T) {
	req := &Request{
		Mode:    Horizontal,
		JoinKey: accountKey,
		Selections: []Selection{
			{File: "a.xlsx", Sheet: "S1"},
			{File: "b.xlsx", Sheet: "S1"},
		},
	}
	res, err := newTestEngine().Merge(horizontalUploads(t), req)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 2, res.Merged)

	tbl := res.Table
	assert.Equal(t, []string{
		accountKey,
		"Amount_a.xlsx_S1",
		"Memo_a.xlsx_S1",
		"Amount_b.xlsx_S1",
	}, tbl.ColumnNames())
	assert.Equal(t, strs("現金", "存款", "應收"), tbl.Column(accountKey).Values, "outer union of trimmed keys")
	assert.Equal(t, nums(100, 200, 0), tbl.Column("Amount_a.xlsx_S1").Values)
	assert.Equal(t, strs("petty", "N/A", "N/A"), tbl.Column("Memo_a.xlsx_S1").Values)
	assert.Equal(t, nums(0, 50, 7), tbl.Column("Amount_b.xlsx_S1").Values)
}

func TestEngine_MergeHorizontalMissingKey(t *testing.T) {
	req := &Request{
		Mode:    Horizontal,
		JoinKey: accountKey,
		Selections: []Selection{
			{File: "a.xlsx", Sheet: "S1"},
			{File: "b.xlsx", Sheet: "NoKey"},
		},
	}
	res, err := newTestEngine().Merge(horizontalUploads(t), req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Merged)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "b.xlsx", res.Warnings[0].File)
	assert.Equal(t, "NoKey", res.Warnings[0].Sheet)
	assert.Contains(t, res.Warnings[0].Reason, accountKey)
	for _, name := range res.Table.ColumnNames() {
		assert.False(t, strings.HasSuffix(name, "_b.xlsx_NoKey"), name)
	}
}

func TestEngine_MergeHorizontalNoResult(t *testing.T) {
	req := &Request{
		Mode:    Horizontal,
		JoinKey: "Absent",
		Selections: []Selection{
			{File: "a.xlsx", Sheet: "S1"},
			{File: "b.xlsx", Sheet: "S1"},
			{File: "b.xlsx", Sheet: "NoKey"},
		},
	}
	res, err := newTestEngine().Merge(horizontalUploads(t), req)
	assert.ErrorIs(t, err, ErrNoResult)
	require.NotNil(t, res)
	assert.Nil(t, res.Table)
	assert.Equal(t, 0, res.Merged)
	assert.Len(t, res.Warnings, 3)
}

func TestEngine_MergeHorizontalKeyCoercion(t *testing.T) {
	a := testutil.Workbook(t, "a.xlsx", testutil.Sheet{Name: "S", Rows: [][]interface{}{
		{"ID", "V"},
		{1, "one"},
		{nil, "blank"},
	}})
	b := testutil.Workbook(t, "b.xlsx", testutil.Sheet{Name: "S", Rows: [][]interface{}{
		{"ID", "V"},
		{"1 ", "uno"},
	}})
	res, err := newTestEngine().Merge([]*workbook.Upload{a, b}, &Request{
		Mode:       Horizontal,
		JoinKey:    "ID",
		Selections: []Selection{{File: "a.xlsx", Sheet: "S"}, {File: "b.xlsx", Sheet: "S"}},
	})
	require.NoError(t, err)
	assert.Equal(t, strs("1", "N/A"), res.Table.Column("ID").Values)
	assert.Equal(t, strs("one", "blank"), res.Table.Column("V_a.xlsx_S").Values)
	assert.Equal(t, strs("uno", "N/A"), res.Table.Column("V_b.xlsx_S").Values)
}

func TestEngine_MergeHorizontalDuplicateKey(t *testing.T) {
	a := testutil.Workbook(t, "a.xlsx", testutil.Sheet{Name: "S", Rows: [][]interface{}{
		{"ID", "V"},
		{"k", 1},
	}})
	dup := testutil.Workbook(t, "dup.xlsx", testutil.Sheet{Name: "S", Rows: [][]interface{}{
		{"ID", "V"},
		{"k", 2},
		{"k", 3},
	}})
	res, err := newTestEngine().Merge([]*workbook.Upload{a, dup}, &Request{
		Mode:       Horizontal,
		JoinKey:    "ID",
		Selections: []Selection{{File: "a.xlsx", Sheet: "S"}, {File: "dup.xlsx", Sheet: "S"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "dup.xlsx", res.Warnings[0].File)
	assert.Equal(t, []string{"ID", "V_a.xlsx_S"}, res.Table.ColumnNames())
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "Amount_a.xlsx_S1", Suffix("Amount", "a.xlsx", "S1"))
	assert.NotEqual(t, Suffix("Amount", "a.xlsx", "S1"), Suffix("Amount", "b.xlsx", "S1"))
}
