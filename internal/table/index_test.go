package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetIndex(t *testing.T) {
	tbl := newTestTable(t, 2, map[string][]Value{
		"ID":  {Num(1), Str("b")},
		"Qty": {Num(10), Num(20)},
	}, "ID", "Qty")

	x, err := SetIndex(tbl, "ID")
	require.NoError(t, err)
	assert.Equal(t, "ID", x.Name)
	assert.Equal(t, []string{"1", "b"}, x.Keys)
	assert.Equal(t, []string{"Qty"}, x.Table.ColumnNames())
}

func TestSetIndex_Errors(t *testing.T) {
	tbl := newTestTable(t, 2, map[string][]Value{
		"ID": {Str("a"), Str("a")},
	}, "ID")

	_, err := SetIndex(tbl, "missing")
	assert.Error(t, err)

	_, err = SetIndex(tbl, "ID")
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.True(t, tbl.HasColumn("ID"), "failed index keeps the column")
}

func TestJoinOuter(t *testing.T) {
	a := &Indexed{
		Name: "K",
		Keys: []string{"k1", "k2"},
		Table: newTestTable(t, 2, map[string][]Value{
			"A": {Num(1), Num(2)},
		}, "A"),
	}
	b := &Indexed{
		Name: "K",
		Keys: []string{"k3", "k1"},
		Table: newTestTable(t, 2, map[string][]Value{
			"B": {Str("x"), Str("y")},
		}, "B"),
	}

	out, err := JoinOuter(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2", "k3"}, out.Keys)
	assert.Equal(t, []string{"A", "B"}, out.Table.ColumnNames())
	assert.Equal(t, []Value{Num(1), Num(2), {}}, out.Table.Column("A").Values)
	assert.Equal(t, []Value{Str("y"), {}, Str("x")}, out.Table.Column("B").Values)
}

func TestJoinOuter_ColumnClash(t *testing.T) {
	a := &Indexed{Name: "K", Keys: []string{"k"}, Table: newTestTable(t, 1, nil, "A")}
	b := &Indexed{Name: "K", Keys: []string{"k"}, Table: newTestTable(t, 1, nil, "A")}
	_, err := JoinOuter(a, b)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestResetIndex(t *testing.T) {
	x := &Indexed{
		Name: "K",
		Keys: []string{"k1", "k2"},
		Table: newTestTable(t, 2, map[string][]Value{
			"A": {Num(1), Num(2)},
		}, "A"),
	}
	out, err := ResetIndex(x)
	require.NoError(t, err)
	assert.Equal(t, []string{"K", "A"}, out.ColumnNames())
	assert.Equal(t, []Value{Str("k1"), Str("k2")}, out.Column("K").Values)
}
