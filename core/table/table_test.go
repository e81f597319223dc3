package table

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

type row struct {
	ID    int
	Name  string
	Marks null.Float64
	Note  *string
}

func ids(rows []row) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

var testColumns = []Column[row]{
	{Key: "id", Label: "ID", Value: func(r row) interface{} { return r.ID }},
	{Key: "name", Label: "Name", Value: func(r row) interface{} { return r.Name }},
	{Key: "marks", Label: "Marks", Value: func(r row) interface{} { return r.Marks }},
	{
		Key: "note", Label: "Note", Unsortable: true,
		Value:  func(r row) interface{} { return r.Note },
		Render: func(r row) interface{} { return "rendered" },
	},
}

func newTable(t *testing.T, opts ...Option) *Table[row] {
	tbl, err := New(testColumns, opts...)
	require.NoError(t, err)
	return tbl
}

func TestNew(t *testing.T) {
	val := func(r row) interface{} { return r.ID }
	tests := []struct {
		name    string
		columns []Column[row]
		opts    []Option
		wantErr bool
	}{
		{name: "no columns", wantErr: true},
		{name: "duplicate keys", columns: []Column[row]{{Key: "a", Value: val}, {Key: "a", Value: val}}, wantErr: true},
		{name: "empty key", columns: []Column[row]{{Value: val}}, wantErr: true},
		{name: "missing accessor", columns: []Column[row]{{Key: "a"}}, wantErr: true},
		{name: "zero page size", columns: testColumns, opts: []Option{WithPageSize(0)}, wantErr: true},
		{name: "ok", columns: testColumns},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(tt.columns, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tbl.PageSize() != DefaultPageSize {
				t.Errorf("PageSize() = %d; want %d", tbl.PageSize(), DefaultPageSize)
			}
		})
	}
}

func TestTable_Search(t *testing.T) {
	records := []row{
		{ID: 1, Name: "Amy"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "amyx"},
		{ID: 4, Name: "ÅMY"}, // folds to "åmy", not "amy"
	}
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query keeps all", query: "", want: []int{1, 2, 3, 4}},
		{name: "case-insensitive substring", query: "amy", want: []int{1, 3}},
		{name: "upper query", query: "AMY", want: []int{1, 3}},
		{name: "unicode folding", query: "åmy", want: []int{4}},
		{name: "matches numeric column", query: "2", want: []int{2}},
		{name: "no match", query: "zed", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newTable(t)
			tbl.Search(tt.query)
			got := ids(tbl.View(records).Rows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("View() ids = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestTable_Search_propertiesHold(t *testing.T) {
	note := "Remark about amy"
	records := []row{
		{ID: 1, Name: "Amy", Marks: null.Float64From(70)},
		{ID: 2, Name: "Bob", Note: &note},
		{ID: 3, Name: "Carla", Marks: null.Float64From(12.5)},
		{ID: 4, Name: "dave"},
		{ID: 5, Name: "Ed", Marks: null.Float64From(125)},
	}
	for _, q := range []string{"a", "AMY", "12", "e", "2.5", "x"} {
		t.Run(q, func(t *testing.T) {
			tbl, err := New(testColumns, WithPageSize(100))
			require.NoError(t, err)
			tbl.Search(q)
			page := tbl.View(records)

			kept := make(map[int]bool)
			lastIdx := -1
			for _, r := range page.Rows {
				kept[r.ID] = true
				// filtering never reorders
				idx := r.ID - 1
				assert.Greater(t, idx, lastIdx, "filter reordered records")
				lastIdx = idx
			}
			for _, r := range records {
				matches := false
				for _, col := range testColumns {
					if strings.Contains(strings.ToLower(String(col.Value(r))), strings.ToLower(q)) {
						matches = true
					}
				}
				assert.Equal(t, matches, kept[r.ID], "record %d", r.ID)
			}
		})
	}
}

func TestTable_Search_rendererIgnored(t *testing.T) {
	tbl := newTable(t)
	tbl.Search("rendered")
	page := tbl.View([]row{{ID: 1, Name: "x"}})
	assert.Empty(t, page.Rows)
}

func TestTable_Search_resetsPage(t *testing.T) {
	records := make([]row, 20)
	for i := range records {
		records[i] = row{ID: i + 1, Name: fmt.Sprintf("n%d", i)}
	}
	for _, from := range []int{0, 1, 2} {
		tbl := newTable(t)
		require.True(t, tbl.GoTo(records, from))
		tbl.Search("n")
		assert.Equal(t, 0, tbl.State().Page, "from page %d", from)
	}
}

func TestTable_ToggleSort(t *testing.T) {
	records := []row{
		{ID: 1, Name: "b", Marks: null.Float64From(70)},
		{ID: 2, Name: "a", Marks: null.Float64From(40)},
		{ID: 3, Name: "c", Marks: null.Float64From(90)},
	}
	tbl := newTable(t)

	tbl.ToggleSort("marks")
	assert.Equal(t, []int{2, 1, 3}, ids(tbl.View(records).Rows)) // 40, 70, 90
	assert.Equal(t, Ascending, tbl.State().SortDir)

	tbl.ToggleSort("marks")
	assert.Equal(t, []int{3, 1, 2}, ids(tbl.View(records).Rows)) // 90, 70, 40
	assert.Equal(t, Descending, tbl.State().SortDir)

	tbl.ToggleSort("name")
	assert.Equal(t, State{SortKey: "name", SortDir: Ascending}, tbl.State())
	assert.Equal(t, []int{2, 1, 3}, ids(tbl.View(records).Rows))

	// unsortable & unknown keys are ignored
	tbl.ToggleSort("note")
	tbl.ToggleSort("lol")
	assert.Equal(t, "name", tbl.State().SortKey)
}

func TestTable_ToggleSort_keepsPage(t *testing.T) {
	records := make([]row, 10)
	for i := range records {
		records[i] = row{ID: i}
	}
	tbl := newTable(t)
	require.True(t, tbl.GoTo(records, 1))
	tbl.ToggleSort("id")
	assert.Equal(t, 1, tbl.State().Page)
}

func TestTable_sortIsStable(t *testing.T) {
	records := []row{
		{ID: 1, Name: "x", Marks: null.Float64From(2)},
		{ID: 2, Name: "y", Marks: null.Float64From(1)},
		{ID: 3, Name: "x", Marks: null.Float64From(1)},
		{ID: 4, Name: "y", Marks: null.Float64From(2)},
		{ID: 5, Name: "x"},
	}
	tbl := newTable(t)
	tbl.ToggleSort("name")
	assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(tbl.View(records).Rows))
	tbl.ToggleSort("name")
	assert.Equal(t, []int{2, 4, 1, 3, 5}, ids(tbl.View(records).Rows))

	// missing marks coerce to "" and are compared as strings: "" < "1" < "2"
	tbl.ToggleSort("marks")
	assert.Equal(t, []int{5, 2, 3, 1, 4}, ids(tbl.View(records).Rows))
}

func TestTable_sortTwiceRestoresOriginalOrder(t *testing.T) {
	records := []row{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	tbl := newTable(t)
	tbl.ToggleSort("name")
	asc := ids(tbl.View(records).Rows)
	tbl.ToggleSort("name")
	tbl.ToggleSort("name")
	assert.Equal(t, asc, ids(tbl.View(records).Rows))
	assert.Equal(t, []int{3, 1, 2}, ids(records), "input mutated")
}

func TestTable_View_pagination(t *testing.T) {
	mk := func(n int) []row {
		rs := make([]row, n)
		for i := range rs {
			rs[i] = row{ID: i}
		}
		return rs
	}
	tests := []struct {
		name      string
		n         int
		page      int
		wantPages int
		wantRows  []int
	}{
		{name: "empty", n: 0, wantPages: 1, wantRows: []int{}},
		{name: "10 records page 0", n: 10, page: 0, wantPages: 2, wantRows: []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{name: "10 records page 1", n: 10, page: 1, wantPages: 2, wantRows: []int{8, 9}},
		{name: "exact fit", n: 16, page: 1, wantPages: 2, wantRows: []int{8, 9, 10, 11, 12, 13, 14, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := mk(tt.n)
			tbl := newTable(t)
			if tt.page > 0 {
				require.True(t, tbl.GoTo(records, tt.page))
			}
			page := tbl.View(records)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantRows, ids(page.Rows))
			assert.Equal(t, tt.n, page.Filtered)
			if page.Number == page.TotalPages-1 {
				assert.Equal(t, tt.n-(page.TotalPages-1)*page.PageSize, len(page.Rows))
			}
		})
	}
}

func TestTable_GoTo(t *testing.T) {
	records := make([]row, 10)
	tbl := newTable(t)
	assert.False(t, tbl.GoTo(records, -1))
	assert.False(t, tbl.GoTo(records, 2))
	assert.Equal(t, 0, tbl.State().Page)
	assert.True(t, tbl.GoTo(records, 1))
	assert.Equal(t, 1, tbl.State().Page)
}

func TestTable_View_clampsPage(t *testing.T) {
	records := make([]row, 20)
	for i := range records {
		records[i] = row{ID: i, Name: "n"}
	}
	records[0].Name = "only"

	tbl := newTable(t, WithState(State{Page: 2}))
	assert.Equal(t, 2, tbl.View(records).Number)

	// filtering shrinks the result set under the current page
	tbl.Restore(State{Search: "only", Page: 2})
	page := tbl.View(records)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 0, tbl.State().Page)
	assert.Equal(t, []int{0}, ids(page.Rows))
}

func TestTable_Display(t *testing.T) {
	tbl := newTable(t)
	id, _ := tbl.Column("id")
	marks, _ := tbl.Column("marks")
	note, _ := tbl.Column("note")

	assert.Equal(t, "7", tbl.Display(id, row{ID: 7}))
	assert.Equal(t, "—", tbl.Display(marks, row{}))
	assert.Equal(t, "70.5", tbl.Display(marks, row{Marks: null.Float64From(70.5)}))
	assert.Equal(t, "rendered", tbl.Display(note, row{}))
}

func TestCompare(t *testing.T) {
	s := "x"
	tests := []struct {
		a, b interface{}
		want int
	}{
		{a: 40, b: 70, want: -1},
		{a: 9, b: 10, want: -1}, // numeric, not lexicographic
		{a: "9", b: "10", want: 1},
		{a: 2.5, b: 2, want: 1},
		{a: null.IntFrom(3), b: 3, want: 0},
		{a: null.Int{}, b: "", want: 0},
		{a: nil, b: "a", want: -1},
		{a: &s, b: "x", want: 0},
		{a: true, b: false, want: 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%v", tt.a, tt.b), func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	var nilPtr *int
	tests := []struct {
		v    interface{}
		want string
	}{
		{v: nil, want: ""},
		{v: nilPtr, want: ""},
		{v: 70, want: "70"},
		{v: 70.0, want: "70"},
		{v: 70.25, want: "70.25"},
		{v: true, want: "true"},
		{v: null.StringFrom("amy"), want: "amy"},
		{v: null.String{}, want: ""},
		{v: null.Float64From(1.5), want: "1.5"},
	}
	for _, tt := range tests {
		if got := String(tt.v); got != tt.want {
			t.Errorf("String(%#v) = %q; want %q", tt.v, got, tt.want)
		}
	}
}

func TestState_roundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state State
		query string
	}{
		{name: "initial", state: State{}, query: ""},
		{name: "search", state: State{Search: "amy"}, query: "q=amy"},
		{name: "page", state: State{Page: 1}, query: "page=2"},
		{name: "asc", state: State{SortKey: "name"}, query: "ordering=name"},
		{name: "desc", state: State{SortKey: "marks", SortDir: Descending, Page: 3}, query: "ordering=-marks&page=4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.query, tt.state.Encode())
			v, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.state, ParseState(v))
		})
	}
}

func TestParseState_malformed(t *testing.T) {
	v := url.Values{PageParam: {"lol"}, OrderingParam: {"-"}}
	assert.Equal(t, State{}, ParseState(v))

	v = url.Values{PageParam: {"-3"}}
	assert.Equal(t, 0, ParseState(v).Page)
}

func TestTable_Restore_dropsUnsortableKey(t *testing.T) {
	tbl := newTable(t, WithState(State{SortKey: "note", SortDir: Descending}))
	assert.Equal(t, State{}, tbl.State())
}
