package echoweb

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/spms/core"
	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/core/table"
	"github.com/trezcool/spms/storage/recordstore"
)

// screen is the list/create/edit/delete pattern shared by every record kind.
type screen[R record.Record, F record.Form[F, R]] struct {
	slug       string // URL path segment
	title      string
	heading    string // singular, capitalized: "Add <heading>"
	kind       record.Kind
	repo       record.Repository[R]
	columns    []table.Column[R]
	fields     []record.Field
	formOf     func(R) F
	pageSize   int
	validate   *validator.Validate
	translator ut.Translator
	log        core.Logger
}

type (
	screenInfo struct {
		Slug    string
		Title   string
		Heading string
		Noun    string
	}

	headerView struct {
		Label    string
		Href     string
		Sortable bool
		Dir      string
	}

	rowView struct {
		Cells      []interface{}
		EditHref   string
		DeleteHref string
	}

	listView struct {
		Screen     screenInfo
		Search     string
		Ordering   string
		Headers    []headerView
		Rows       []rowView
		Colspan    int
		Filtered   int
		PageNumber int // 1-based
		TotalPages int
		PrevHref   string
		NextHref   string
	}

	fieldView struct {
		record.Field
		Value    string
		Error    string
		Disabled bool
	}

	formView struct {
		Screen  screenInfo
		Editing bool
		Action  string
		Fields  []fieldView
	}

	confirmView struct {
		Screen screenInfo
		Key    string
		Action string
	}
)

func (sc *screen[R, F]) register(g *echo.Group) {
	base := "/" + sc.slug
	g.GET(base, sc.list)
	g.GET(base+"/new", sc.newForm)
	g.POST(base, sc.create)
	g.GET(base+"/edit/*", sc.edit)
	g.POST(base+"/edit/*", sc.update)
	g.GET(base+"/delete/*", sc.confirmDelete)
	g.POST(base+"/delete/*", sc.delete)
}

func (sc *screen[R, F]) info() screenInfo {
	return screenInfo{Slug: sc.slug, Title: sc.title, Heading: sc.heading, Noun: sc.kind.Noun()}
}

func (sc *screen[R, F]) path(parts ...string) string {
	return "/" + strings.Join(append([]string{sc.slug}, parts...), "/")
}

// Handlers

func (sc *screen[R, F]) list(ctx echo.Context) error {
	tbl, err := table.New(sc.columns,
		table.WithPageSize(sc.pageSize),
		table.WithState(table.ParseState(ctx.QueryParams())),
	)
	if err != nil {
		return errors.Wrapf(err, "building %s table", sc.kind)
	}

	recs, err := sc.repo.List(requestContext(ctx))
	if err != nil {
		sc.log.Error("listing "+string(sc.kind), err, getSession(ctx).Profile)
		flashNow(ctx, errorFlash("Failed to load "+sc.kind.Plural()))
		recs = nil
	}

	page := tbl.View(recs)
	return render(ctx, http.StatusOK, "list", sc.title, sc.listView(tbl, page))
}

func (sc *screen[R, F]) newForm(ctx echo.Context) error {
	var form F
	return sc.renderForm(ctx, http.StatusOK, form, nil, nil)
}

func (sc *screen[R, F]) create(ctx echo.Context) error {
	var form F
	if err := bindForm(ctx, &form); err != nil {
		return err
	}
	rec, err := sc.parse(form)
	if err != nil {
		return sc.invalidForm(ctx, form, nil, err)
	}

	if err := sc.repo.Create(requestContext(ctx), rec); err != nil {
		sc.log.Warn("creating "+string(sc.kind), err, getSession(ctx).Profile)
		flashNow(ctx, errorFlash(recordstore.Detail(err, "Operation failed")))
		return sc.renderForm(ctx, http.StatusBadGateway, form, nil, nil)
	}

	flashNext(ctx, successFlash("Created "+sc.kind.Noun()))
	return ctx.Redirect(http.StatusSeeOther, sc.path())
}

func (sc *screen[R, F]) edit(ctx echo.Context) error {
	key, err := sc.key(ctx)
	if err != nil {
		return err
	}

	rec, err := sc.repo.Get(requestContext(ctx), key...)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return errHttpNotFound
		}
		sc.log.Warn("getting "+string(sc.kind), err, getSession(ctx).Profile)
		flashNext(ctx, errorFlash(recordstore.Detail(err, "Failed to load "+sc.kind.Noun())))
		return ctx.Redirect(http.StatusSeeOther, sc.path())
	}
	return sc.renderForm(ctx, http.StatusOK, sc.formOf(rec), key, nil)
}

func (sc *screen[R, F]) update(ctx echo.Context) error {
	key, err := sc.key(ctx)
	if err != nil {
		return err
	}

	var form F
	if err := bindForm(ctx, &form); err != nil {
		return err
	}
	form = form.WithKey(key) // key inputs are disabled, hence not posted
	rec, err := sc.parse(form)
	if err != nil {
		return sc.invalidForm(ctx, form, key, err)
	}

	if err := sc.repo.Update(requestContext(ctx), key, rec); err != nil {
		sc.log.Warn("updating "+string(sc.kind), err, getSession(ctx).Profile)
		flashNow(ctx, errorFlash(recordstore.Detail(err, "Operation failed")))
		return sc.renderForm(ctx, http.StatusBadGateway, form, key, nil)
	}

	flashNext(ctx, successFlash("Updated "+sc.kind.Noun()))
	return ctx.Redirect(http.StatusSeeOther, sc.path())
}

func (sc *screen[R, F]) confirmDelete(ctx echo.Context) error {
	key, err := sc.key(ctx)
	if err != nil {
		return err
	}
	return render(ctx, http.StatusOK, "confirm", "Delete "+sc.kind.Noun(), confirmView{
		Screen: sc.info(),
		Key:    strings.Join(key, " / "),
		Action: sc.path("delete", keyPath(key)),
	})
}

// delete only reaches the Record Store when the operator confirmed.
func (sc *screen[R, F]) delete(ctx echo.Context) error {
	key, err := sc.key(ctx)
	if err != nil {
		return err
	}
	if ctx.FormValue("confirm") != "yes" {
		return ctx.Redirect(http.StatusSeeOther, sc.path())
	}

	if err := sc.repo.Delete(requestContext(ctx), key...); err != nil {
		sc.log.Warn("deleting "+string(sc.kind), err, getSession(ctx).Profile)
		flashNext(ctx, errorFlash("Failed to delete"))
	} else {
		flashNext(ctx, successFlash("Deleted "+sc.kind.Noun()))
	}
	return ctx.Redirect(http.StatusSeeOther, sc.path())
}

// Helpers

// key reads the natural key from the wildcard path, one segment per key field.
func (sc *screen[R, F]) key(ctx echo.Context) ([]string, error) {
	raw := strings.Trim(ctx.Param("*"), "/")
	if raw == "" {
		return nil, errHttpNotFound
	}
	key := strings.Split(raw, "/")
	if len(key) != len(sc.kind.KeyFields()) {
		return nil, errHttpNotFound
	}
	for i, seg := range key {
		if s, err := url.PathUnescape(seg); err == nil {
			key[i] = s
		}
		if key[i] == "" {
			return nil, errHttpNotFound
		}
	}
	return key, nil
}

// parse validates the buffer and coerces it into a record.
func (sc *screen[R, F]) parse(form F) (R, error) {
	if err := sc.validate.Struct(form); err != nil {
		var zero R
		return zero, core.TranslateValidationErrors(err, sc.translator)
	}
	return form.Record()
}

func (sc *screen[R, F]) invalidForm(ctx echo.Context, form F, key []string, err error) error {
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		return errors.Wrapf(err, "parsing %s form", sc.kind)
	}
	flashNow(ctx, errorFlash("Please correct the highlighted fields"))
	return sc.renderForm(ctx, http.StatusUnprocessableEntity, form, key, vErr.FieldMap())
}

func (sc *screen[R, F]) renderForm(ctx echo.Context, code int, form F, key []string, fieldErrs map[string]string) error {
	editing := key != nil
	vals := record.FormValues(form)
	fields := make([]fieldView, 0, len(sc.fields))
	for _, fld := range sc.fields {
		fields = append(fields, fieldView{
			Field:    fld,
			Value:    vals[fld.Name],
			Error:    fieldErrs[fld.Name],
			Disabled: editing && fld.Key,
		})
	}

	view := formView{Screen: sc.info(), Editing: editing, Action: sc.path(), Fields: fields}
	title := "Add " + sc.heading
	if editing {
		view.Action = sc.path("edit", keyPath(key))
		title = "Edit " + sc.heading
	}
	return render(ctx, code, "form", title, view)
}

func (sc *screen[R, F]) listView(tbl *table.Table[R], page table.Page[R]) listView {
	st := tbl.State()
	cols := tbl.Columns()
	v := listView{
		Screen:     sc.info(),
		Search:     st.Search,
		Ordering:   st.Ordering(),
		Headers:    make([]headerView, 0, len(cols)),
		Rows:       make([]rowView, 0, len(page.Rows)),
		Colspan:    len(cols) + 1,
		Filtered:   page.Filtered,
		PageNumber: page.Number + 1,
		TotalPages: page.TotalPages,
	}

	for _, col := range cols {
		h := headerView{Label: col.Label, Sortable: col.Sortable()}
		if h.Sortable {
			h.Href = withState(sc.path(), st.Toggle(col.Key))
			if st.SortKey == col.Key {
				h.Dir = st.SortDir.String()
			}
		}
		v.Headers = append(v.Headers, h)
	}

	for _, row := range page.Rows {
		cells := make([]interface{}, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, tbl.Display(col, row))
		}
		key := keyPath(row.Key())
		v.Rows = append(v.Rows, rowView{
			Cells:      cells,
			EditHref:   sc.path("edit", key),
			DeleteHref: sc.path("delete", key),
		})
	}

	if page.HasPrev() {
		v.PrevHref = withState(sc.path(), st.WithPage(page.Number-1))
	}
	if page.HasNext() {
		v.NextHref = withState(sc.path(), st.WithPage(page.Number+1))
	}
	return v
}

func withState(base string, st table.State) string {
	if q := st.Encode(); q != "" {
		return base + "?" + q
	}
	return base
}

func keyPath(key []string) string {
	segs := make([]string, len(key))
	for i, k := range key {
		segs[i] = url.PathEscape(k)
	}
	return strings.Join(segs, "/")
}

// requestContext carries the request's cancellation and ID to the Record Store.
func requestContext(ctx echo.Context) context.Context {
	return recordstore.WithRequestID(ctx.Request().Context(), ctx.Response().Header().Get(echo.HeaderXRequestID))
}
