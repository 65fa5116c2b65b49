package table

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
)

// ErrDuplicateKey is returned when an index column holds a value twice.
var ErrDuplicateKey = errors.New("duplicate key")

// Indexed is a table whose rows are aligned by a unique text key. The key
// column is not part of Table's columns.
type Indexed struct {
	Name  string
	Keys  []string
	Table *Table
}

// SetIndex removes the named column from t and uses its text values as the
// row key. Keys must be unique.
func SetIndex(t *Table, name string) (*Indexed, error) {
	col := t.Column(name)
	if col == nil {
		return nil, errors.Errorf("column %q not found", name)
	}
	keys := make([]string, t.rows)
	seen := make(map[string]int, t.rows)
	for i, v := range col.Values {
		key := v.String()
		if prev, ok := seen[key]; ok {
			return nil, errors.Wrapf(ErrDuplicateKey, "%q in rows %d and %d", key, prev+1, i+1)
		}
		seen[key] = i
		keys[i] = key
	}
	t.RemoveColumn(name)
	return &Indexed{Name: name, Keys: keys, Table: t}, nil
}

// JoinOuter aligns two indexed tables side by side on their keys. The result
// holds every key of a followed by the keys only b has, each once; columns of a
// come before columns of b. Cells for keys a table lacks are empty.
func JoinOuter(a, b *Indexed) (*Indexed, error) {
	order := linkedhashmap.New()
	for i, key := range a.Keys {
		order.Put(key, [2]int{i, -1})
	}
	for i, key := range b.Keys {
		if v, ok := order.Get(key); ok {
			pos := v.([2]int)
			pos[1] = i
			order.Put(key, pos)
		} else {
			order.Put(key, [2]int{-1, i})
		}
	}

	keys := make([]string, 0, order.Size())
	positions := make([][2]int, 0, order.Size())
	it := order.Iterator()
	for it.Next() {
		keys = append(keys, it.Key().(string))
		positions = append(positions, it.Value().([2]int))
	}

	out := New(len(keys))
	for side, src := range []*Indexed{a, b} {
		for _, col := range src.Table.columns {
			values := make([]Value, len(keys))
			for row, pos := range positions {
				if pos[side] >= 0 {
					values[row] = col.Values[pos[side]]
				}
			}
			if err := out.AddColumn(col.Name, values); err != nil {
				return nil, err
			}
		}
	}
	return &Indexed{Name: a.Name, Keys: keys, Table: out}, nil
}

// ResetIndex turns the key back into an ordinary column placed first.
func ResetIndex(x *Indexed) (*Table, error) {
	out := New(len(x.Keys))
	keys := make([]Value, len(x.Keys))
	for i, key := range x.Keys {
		keys[i] = Str(key)
	}
	if err := out.AddColumn(x.Name, keys); err != nil {
		return nil, err
	}
	for _, col := range x.Table.columns {
		if err := out.AddColumn(col.Name, col.Values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
