package merger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/ryabkov82/sheet-merger/internal/log"
	"github.com/ryabkov82/sheet-merger/internal/table"
	"github.com/ryabkov82/sheet-merger/internal/workbook"
	"go.uber.org/zap"
)

var (
	// ErrNoResult is returned when no selected sheet could be merged.
	ErrNoResult = errors.New("no sheet was merged")
	// ErrInvalidRequest is returned for requests that cannot be executed.
	ErrInvalidRequest = errors.New("invalid merge request")
)

const (
	MinHeaderRow = 1
	MaxHeaderRow = 100
)

// Mode selects how sheets are combined.
type Mode int

const (
	// Vertical stacks rows of all sheets.
	Vertical Mode = iota + 1
	// Horizontal joins sheets side by side on a key column.
	Horizontal
)

func (m Mode) String() string {
	switch m {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v", "縱向":
		return Vertical, nil
	case "horizontal", "h", "橫向":
		return Horizontal, nil
	}
	return 0, errors.Wrapf(ErrInvalidRequest, "unknown mode %q", s)
}

// Selection names one sheet of one uploaded file.
type Selection struct {
	File  string `yaml:"file" json:"file"`
	Sheet string `yaml:"sheet" json:"sheet"`
}

func (s Selection) String() string {
	return s.File + "#" + s.Sheet
}

// Request describes one merge action.
type Request struct {
	Selections []Selection
	Mode       Mode
	// HeaderRow is the 1-based row holding column names. Vertical only.
	HeaderRow int
	// JoinKey is the column rows are aligned on. Horizontal only.
	JoinKey string
}

// Validate checks the parameters of the request's mode.
func (r *Request) Validate() error {
	switch r.Mode {
	case Vertical:
		if r.HeaderRow < MinHeaderRow || r.HeaderRow > MaxHeaderRow {
			return errors.Wrapf(ErrInvalidRequest, "header row %d out of range [%d, %d]", r.HeaderRow, MinHeaderRow, MaxHeaderRow)
		}
	case Horizontal:
		if r.JoinKey == "" {
			return errors.Wrap(ErrInvalidRequest, "horizontal merge needs a join key")
		}
	default:
		return errors.Wrapf(ErrInvalidRequest, "unknown mode %d", int(r.Mode))
	}
	return nil
}

// Warning reports a file or sheet that was skipped.
type Warning struct {
	File   string `json:"file"`
	Sheet  string `json:"sheet,omitempty"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	if w.Sheet == "" {
		return fmt.Sprintf("file %s: %s", w.File, w.Reason)
	}
	return fmt.Sprintf("file %s sheet %s: %s", w.File, w.Sheet, w.Reason)
}

// Result is the outcome of a merge. Table is nil when nothing was merged.
type Result struct {
	ID       string
	Table    *table.Table
	Warnings []Warning
	// Merged counts the sheets that contributed to Table.
	Merged int
}

// Merger combines selected sheets of uploaded workbooks.
type Merger interface {
	Merge(uploads []*workbook.Upload, req *Request) (*Result, error)
}

// fold accumulates the contributions of sheets one at a time.
type fold interface {
	// add merges one sheet into the accumulator. On error the accumulator is
	// left as it was.
	add(book *workbook.Book, sheet string) (rows int, err error)
	// result finishes the fold. It is only called when add succeeded at least once.
	result() (*table.Table, error)
}

// Engine is the Merger that reads sheets from memory and folds them with a
// vertical or horizontal strategy.
type Engine struct {
	logger *zap.SugaredLogger
}

type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewSugar("merger")
	}
	return e
}

// Merge runs req over uploads. Sheets that fail are skipped and reported in
// Result.Warnings. If no sheet is merged, or the merged sheets cannot be
// combined, the result is returned together with the error. A panic aborts
// the merge with a nil result.
func (e *Engine) Merge(uploads []*workbook.Upload, req *Request) (res *Result, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res = &Result{ID: uuid.NewString()}
	logger := e.logger.With("merge", res.ID, "mode", req.Mode.String())

	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("merge aborted", "panic", r)
			res, err = nil, errors.Errorf("merge aborted: %v", r)
		}
	}()

	var acc fold
	switch req.Mode {
	case Vertical:
		acc = &verticalFold{headerRow: req.HeaderRow - 1}
	case Horizontal:
		acc = &horizontalFold{key: req.JoinKey}
	}

	books := newBookSet(uploads)
	defer books.close()

	for _, sel := range req.Selections {
		book, err := books.open(sel.File)
		if err != nil {
			res.warn(logger, sel, err.Error())
			continue
		}
		rows, err := acc.add(book, sel.Sheet)
		if err != nil {
			res.warn(logger, sel, err.Error())
			continue
		}
		res.Merged++
		logger.Debugw("sheet merged", "file", sel.File, "sheet", sel.Sheet, "rows", rows)
	}

	if res.Merged == 0 {
		logger.Warnw("nothing merged", "selected", len(req.Selections), "warnings", len(res.Warnings))
		return res, errors.WithStack(ErrNoResult)
	}
	tbl, err := acc.result()
	if err != nil {
		return res, errors.WithMessage(err, "failed to finish merge")
	}
	res.Table = tbl
	logger.Infow("merge done", "sheets", res.Merged, "rows", tbl.NumRows(), "columns", tbl.NumCols(), "warnings", len(res.Warnings))
	return res, nil
}

func (r *Result) warn(logger *zap.SugaredLogger, sel Selection, reason string) {
	w := Warning{File: sel.File, Sheet: sel.Sheet, Reason: reason}
	r.Warnings = append(r.Warnings, w)
	logger.Warnw("sheet skipped", "file", sel.File, "sheet", sel.Sheet, "reason", reason)
}

// bookSet opens each upload at most once per merge.
type bookSet struct {
	uploads map[string]*workbook.Upload
	books   map[string]*workbook.Book
	failed  map[string]error
}

func newBookSet(uploads []*workbook.Upload) *bookSet {
	s := &bookSet{
		uploads: make(map[string]*workbook.Upload, len(uploads)),
		books:   make(map[string]*workbook.Book),
		failed:  make(map[string]error),
	}
	for _, u := range uploads {
		s.uploads[u.Name] = u
	}
	return s
}

func (s *bookSet) open(name string) (*workbook.Book, error) {
	if b, ok := s.books[name]; ok {
		return b, nil
	}
	if err, ok := s.failed[name]; ok {
		return nil, err
	}
	u, ok := s.uploads[name]
	if !ok {
		err := errors.Errorf("file %s was not uploaded", name)
		s.failed[name] = err
		return nil, err
	}
	b, err := workbook.Open(u)
	if err != nil {
		s.failed[name] = err
		return nil, err
	}
	s.books[name] = b
	return b, nil
}

func (s *bookSet) close() {
	for _, b := range s.books {
		_ = b.Close()
	}
}
