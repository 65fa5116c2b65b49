package table

// Placeholder is written into empty cells of non-numeric columns.
const Placeholder = "N/A"

// IsNumeric reports whether every non-empty cell of the column is a number.
// A column with no values at all counts as numeric.
func (c *Column) IsNumeric() bool {
	for _, v := range c.Values {
		if v.Kind == Text {
			return false
		}
	}
	return true
}

// HasEmpty reports whether the column still has an empty cell.
func (c *Column) HasEmpty() bool {
	for _, v := range c.Values {
		if v.IsEmpty() {
			return true
		}
	}
	return false
}

// Fill replaces empty cells in place: numeric columns get 0, all other
// columns get Placeholder. Running it again changes nothing.
func (t *Table) Fill() {
	for _, col := range t.columns {
		fill := Str(Placeholder)
		if col.IsNumeric() {
			fill = Num(0)
		}
		for i, v := range col.Values {
			if v.IsEmpty() {
				col.Values[i] = fill
			}
		}
	}
}
