package table

import (
	"net/url"
	"strconv"
	"strings"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Query string parameters carrying a View State between requests.
const (
	SearchParam   = "q"
	PageParam     = "page" // 1-based in URLs
	OrderingParam = "ordering"
)

// State is the View State of one table instance. The zero value is the initial state.
type State struct {
	Search  string
	Page    int // 0-based
	SortKey string
	SortDir Direction
}

// WithSearch returns the state for a new search query; the page always resets to 0.
func (s State) WithSearch(q string) State {
	s.Search = q
	s.Page = 0
	return s
}

// Toggle returns the state after toggling the sort on key. The page is kept.
func (s State) Toggle(key string) State {
	if s.SortKey == key {
		if s.SortDir == Ascending {
			s.SortDir = Descending
		} else {
			s.SortDir = Ascending
		}
		return s
	}
	s.SortKey = key
	s.SortDir = Ascending
	return s
}

// WithPage returns the state pointing at page p (no range check; see Table.GoTo).
func (s State) WithPage(p int) State {
	s.Page = p
	return s
}

// Ordering renders the sort as "key" (ascending) or "-key" (descending).
func (s State) Ordering() string {
	if s.SortKey == "" {
		return ""
	}
	if s.SortDir == Descending {
		return "-" + s.SortKey
	}
	return s.SortKey
}

// Values encodes the non-default parts of the state.
func (s State) Values() url.Values {
	v := make(url.Values)
	if s.Search != "" {
		v.Set(SearchParam, s.Search)
	}
	if s.Page > 0 {
		v.Set(PageParam, strconv.Itoa(s.Page+1))
	}
	if ord := s.Ordering(); ord != "" {
		v.Set(OrderingParam, ord)
	}
	return v
}

// Encode returns the state as a query string ("" for the initial state).
func (s State) Encode() string {
	return s.Values().Encode()
}

// ParseState reads a state from query values. Malformed pages fall back to the first page.
func ParseState(v url.Values) State {
	var s State
	s.Search = v.Get(SearchParam)

	if p, err := strconv.Atoi(v.Get(PageParam)); err == nil && p > 1 {
		s.Page = p - 1
	}

	ord := strings.TrimSpace(v.Get(OrderingParam))
	if strings.HasPrefix(ord, "-") {
		ord = ord[1:] // drop "-"
		s.SortDir = Descending
	}
	s.SortKey = ord
	if s.SortKey == "" {
		s.SortDir = Ascending
	}
	return s
}
