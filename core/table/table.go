// Package table is the tabular view engine shared by every list screen: it filters, sorts and
// paginates an arbitrary record list according to a per-table View State.
//
// The engine is synchronous and never mutates the records it is given.
package table

import (
	"sort"
	"strings"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 8

// Column describes how one field is labeled, read, sorted and rendered.
type Column[T any] struct {
	Key   string
	Label string
	// Unsortable disables sorting on this column (columns are sortable by default).
	Unsortable bool
	// Value returns the raw field value. It is used for filtering, sorting and, absent a renderer,
	// for display. Returning nil (or an invalid null type) means the value is missing.
	Value func(T) interface{}
	// Render is an optional display-only renderer.
	Render func(T) interface{}
}

func (c Column[T]) Sortable() bool { return !c.Unsortable }

// Page is one computed view of a record list.
type Page[T any] struct {
	Rows       []T
	Number     int // 0-based
	TotalPages int
	Filtered   int // records left after filtering
	Total      int // records before filtering
	PageSize   int
}

func (p Page[T]) HasPrev() bool { return p.Number > 0 }
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages-1 }
func (p Page[T]) Empty() bool   { return len(p.Rows) == 0 }

type options struct {
	pageSize int
	state    State
}

type Option func(*options)

// WithPageSize overrides DefaultPageSize.
func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// WithState seeds the View State (e.g. from a request's query string).
func WithState(s State) Option {
	return func(o *options) { o.state = s }
}

// Table is one table instance: immutable columns plus the View State it owns.
type Table[T any] struct {
	columns  []Column[T]
	index    map[string]int
	pageSize int
	state    State
}

// New validates the column set and returns a table with an empty View State.
func New[T any](columns []Column[T], opts ...Option) (*Table[T], error) {
	o := options{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}

	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(len(columns), 0, "columns"),
		vala.GreaterThan(o.pageSize, 0, "pageSize"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid table arguments")
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Key == "" {
			return nil, errors.Errorf("column %d: empty key", i)
		}
		if col.Value == nil {
			return nil, errors.Errorf("column %q: missing value accessor", col.Key)
		}
		if _, dup := index[col.Key]; dup {
			return nil, errors.Errorf("column %q: duplicate key", col.Key)
		}
		index[col.Key] = i
	}

	t := &Table[T]{
		columns:  append([]Column[T](nil), columns...),
		index:    index,
		pageSize: o.pageSize,
	}
	t.Restore(o.state)
	return t, nil
}

// MustNew is like New but panics on invalid columns; meant for package-level column sets.
func MustNew[T any](columns []Column[T], opts ...Option) *Table[T] {
	t, err := New(columns, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table[T]) Columns() []Column[T] { return t.columns }
func (t *Table[T]) PageSize() int        { return t.pageSize }
func (t *Table[T]) State() State         { return t.state }

// Column returns the column with the given key.
func (t *Table[T]) Column(key string) (Column[T], bool) {
	i, ok := t.index[key]
	if !ok {
		return Column[T]{}, false
	}
	return t.columns[i], true
}

// Restore replaces the View State, dropping a sort key that does not name a sortable column.
func (t *Table[T]) Restore(s State) {
	if s.Page < 0 {
		s.Page = 0
	}
	if s.SortKey != "" {
		if col, ok := t.Column(s.SortKey); !ok || !col.Sortable() {
			s.SortKey, s.SortDir = "", Ascending
		}
	}
	t.state = s
}

// Search sets the search query and always goes back to the first page.
func (t *Table[T]) Search(q string) {
	t.state = t.state.WithSearch(q)
}

// ToggleSort flips the direction when key is already the sort key, otherwise sorts ascending by key.
// Keys that do not name a sortable column are ignored.
func (t *Table[T]) ToggleSort(key string) {
	if col, ok := t.Column(key); !ok || !col.Sortable() {
		return
	}
	t.state = t.state.Toggle(key)
}

// GoTo moves to page p if it exists for the current filter; it reports whether the page changed.
func (t *Table[T]) GoTo(records []T, p int) bool {
	if p < 0 || p >= totalPages(len(t.filter(records)), t.pageSize) {
		return false
	}
	t.state.Page = p
	return true
}

// View computes the visible page. The current page is clamped into range first.
func (t *Table[T]) View(records []T) Page[T] {
	rows := t.sort(t.filter(records))

	total := totalPages(len(rows), t.pageSize)
	if t.state.Page >= total {
		t.state.Page = total - 1
	}
	if t.state.Page < 0 {
		t.state.Page = 0
	}

	start := t.state.Page * t.pageSize
	end := start + t.pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return Page[T]{
		Rows:       rows[start:end],
		Number:     t.state.Page,
		TotalPages: total,
		Filtered:   len(rows),
		Total:      len(records),
		PageSize:   t.pageSize,
	}
}

// Display returns what a cell shows: the renderer output if any, else the raw value as a string,
// with "—" for a missing value.
func (t *Table[T]) Display(col Column[T], row T) interface{} {
	if col.Render != nil {
		return col.Render(row)
	}
	v := Normalize(col.Value(row))
	if v == nil {
		return "—"
	}
	return String(v)
}

func (t *Table[T]) filter(records []T) []T {
	if t.state.Search == "" {
		return records
	}
	fold := cases.Fold()
	q := fold.String(t.state.Search)

	kept := make([]T, 0, len(records))
	for _, row := range records {
		for _, col := range t.columns {
			if strings.Contains(fold.String(String(col.Value(row))), q) {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

func (t *Table[T]) sort(records []T) []T {
	if t.state.SortKey == "" {
		return records
	}
	col, ok := t.Column(t.state.SortKey)
	if !ok {
		return records
	}

	sorted := append(make([]T, 0, len(records)), records...)
	desc := t.state.SortDir == Descending
	sort.SliceStable(sorted, func(i, j int) bool {
		c := Compare(col.Value(sorted[i]), col.Value(sorted[j]))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

func totalPages(n, pageSize int) int {
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
