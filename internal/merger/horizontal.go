package merger

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/ryabkov82/sheet-merger/internal/table"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
)

// horizontalFold joins sheets side by side on a key column. Every non-key
// column is suffixed with its file and sheet so equal names never collide.
type horizontalFold struct {
	key string
	acc *table.Indexed
}

// Suffix returns the name a column of file#sheet gets in a horizontal merge.
func Suffix(column, file, sheet string) string {
	return fmt.Sprintf("%s_%s_%s", column, file, sheet)
}

func (h *horizontalFold) add(book *workbook.Book, sheet string) (int, error) {
	t, err := book.ReadSheet(sheet, 0)
	if err != nil {
		return 0, err
	}
	keys := t.Column(h.key)
	if keys == nil {
		return 0, errors.Errorf("missing join key column %q", h.key)
	}
	for i, v := range keys.Values {
		text := strings.TrimSpace(v.String())
		if v.IsEmpty() {
			text = table.Placeholder
		}
		keys.Values[i] = table.Str(text)
	}

	x, err := table.SetIndex(t, h.key)
	if err != nil {
		return 0, errors.WithMessagef(err, "join key column %q", h.key)
	}
	if err := x.Table.Rename(func(name string) string {
		return Suffix(name, book.Name(), sheet)
	}); err != nil {
		return 0, err
	}

	if h.acc == nil {
		h.acc = x
	} else {
		joined, err := table.JoinOuter(h.acc, x)
		if err != nil {
			return 0, err
		}
		h.acc = joined
	}
	return len(x.Keys), nil
}

// result fills the joined columns, then turns the key back into the leading
// column named as the join key.
func (h *horizontalFold) result() (*table.Table, error) {
	h.acc.Table.Fill()
	return table.ResetIndex(h.acc)
}
