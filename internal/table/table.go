package table

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
)

// ErrDuplicateColumn is returned when a column name is already taken.
var ErrDuplicateColumn = errors.New("duplicate column")

// Column is a named sequence of values aligned by row index.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered set of uniquely named columns of equal length.
type Table struct {
	columns []*Column
	byName  map[string]int
	rows    int
}

// New creates an empty table with the given number of rows and no columns.
func New(rows int) *Table {
	return &Table{
		byName: make(map[string]int),
		rows:   rows,
	}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Columns returns the columns in order. The slice must not be modified.
func (t *Table) Columns() []*Column { return t.columns }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	return t.columns[i]
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// AddColumn appends a column. values is padded with empty cells or truncated
// to the table's row count.
func (t *Table) AddColumn(name string, values []Value) error {
	if _, ok := t.byName[name]; ok {
		return errors.Wrapf(ErrDuplicateColumn, "column %q", name)
	}
	vals := make([]Value, t.rows)
	copy(vals, values)
	t.byName[name] = len(t.columns)
	t.columns = append(t.columns, &Column{Name: name, Values: vals})
	return nil
}

// AddConst appends a column holding v in every row.
func (t *Table) AddConst(name string, v Value) error {
	values := make([]Value, t.rows)
	for i := range values {
		values[i] = v
	}
	return t.AddColumn(name, values)
}

// RemoveColumn removes and returns the named column, or nil if absent.
func (t *Table) RemoveColumn(name string) *Column {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	col := t.columns[i]
	t.columns = append(t.columns[:i], t.columns[i+1:]...)
	t.reindex()
	return col
}

// Rename renames every column with fn. It fails if two columns end up with
// the same name.
func (t *Table) Rename(fn func(string) string) error {
	byName := make(map[string]int, len(t.columns))
	for i, col := range t.columns {
		name := fn(col.Name)
		if _, ok := byName[name]; ok {
			return errors.Wrapf(ErrDuplicateColumn, "column %q", name)
		}
		byName[name] = i
	}
	for _, col := range t.columns {
		col.Name = fn(col.Name)
	}
	t.byName = byName
	return nil
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, col := range t.columns {
		row[j] = col.Values[i]
	}
	return row
}

func (t *Table) reindex() {
	t.byName = make(map[string]int, len(t.columns))
	for i, col := range t.columns {
		t.byName[col.Name] = i
	}
}

// Concat stacks tables row-wise. The result has the union of all columns in
// first-seen order; cells of columns a table lacks are empty. Row indices are
// renumbered 0..N-1.
func Concat(tables ...*Table) *Table {
	order := linkedhashmap.New()
	total := 0
	for _, t := range tables {
		total += t.rows
		for _, col := range t.columns {
			if _, ok := order.Get(col.Name); !ok {
				order.Put(col.Name, struct{}{})
			}
		}
	}

	out := New(total)
	for _, key := range order.Keys() {
		name := key.(string)
		values := make([]Value, 0, total)
		for _, t := range tables {
			if col := t.Column(name); col != nil {
				values = append(values, col.Values...)
			} else {
				values = append(values, make([]Value, t.rows)...)
			}
		}
		// names are unique by construction
		_ = out.AddColumn(name, values)
	}
	return out
}
