// Package inmemstore is an in-memory Record Store speaking the same REST dialect as the
// remote one. It backs the tests and local demos.
package inmemstore

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/spms/core/record"
)

const placementResource = "placement"

type (
	Row map[string]interface{}

	// Call is one request received by the store.
	Call struct {
		Method string
		Path   string
		Body   []byte
	}

	failure struct {
		status int
		detail string
	}

	Store struct {
		mutex      sync.RWMutex
		tables     map[string][]Row
		rawLists   map[string]string
		placements map[string]string
		failures   map[string]failure
		calls      []Call
		e          *echo.Echo
	}
)

func New() *Store {
	s := &Store{
		tables:     make(map[string][]Row),
		rawLists:   make(map[string]string),
		placements: make(map[string]string),
		failures:   make(map[string]failure),
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(s.record)
	e.GET("/placement/:id", s.getPlacement)
	e.Any("/:resource/*", s.serve)
	s.e = e
	return s
}

func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Seed appends records (any JSON-encodable value) to a resource table.
func (s *Store) Seed(resource string, recs ...interface{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, rec := range recs {
		row, err := toRow(rec)
		if err != nil {
			panic(err)
		}
		s.tables[resource] = append(s.tables[resource], row)
	}
}

// SetRawList makes the list endpoint of resource answer body verbatim.
func (s *Store) SetRawList(resource, body string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.rawLists[resource] = body
}

// SetPlacement sets the raw readiness report served for regID.
func (s *Store) SetPlacement(regID int, body string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.placements[strconv.Itoa(regID)] = body
}

// Fail makes every request on resource answer status with {"detail": detail}.
func (s *Store) Fail(resource string, status int, detail string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.failures[resource] = failure{status: status, detail: detail}
}

func (s *Store) Rows(resource string) []Row {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Row(nil), s.tables[resource]...)
}

func (s *Store) Calls() []Call {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Call(nil), s.calls...)
}

// CallsWith filters the received calls by method.
func (s *Store) CallsWith(method string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) ResetCalls() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.calls = nil
}

func (s *Store) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(strings.NewReader(string(body)))
		}
		s.mutex.Lock()
		s.calls = append(s.calls, Call{Method: req.Method, Path: req.URL.Path, Body: body})
		f, failing := s.failures[strings.Split(strings.Trim(req.URL.Path, "/"), "/")[0]]
		s.mutex.Unlock()

		if failing {
			return ctx.JSON(f.status, echo.Map{"detail": f.detail})
		}
		return next(ctx)
	}
}

func (s *Store) getPlacement(ctx echo.Context) error {
	s.mutex.RLock()
	body, ok := s.placements[ctx.Param("id")]
	s.mutex.RUnlock()
	if !ok {
		return notFound(ctx)
	}
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(body))
}

func (s *Store) serve(ctx echo.Context) error {
	res := ctx.Param("resource")
	kind, err := record.ParseKind(res)
	if err != nil {
		return notFound(ctx)
	}
	key := splitKey(ctx.Param("*"))

	switch ctx.Request().Method {
	case http.MethodGet:
		if len(key) == 0 {
			return s.list(ctx, res)
		}
		return s.get(ctx, kind, key)
	case http.MethodPost:
		if len(key) != 0 {
			return ctx.JSON(http.StatusMethodNotAllowed, echo.Map{"detail": "Method Not Allowed"})
		}
		return s.create(ctx, kind)
	case http.MethodPatch:
		return s.update(ctx, kind, key)
	case http.MethodDelete:
		return s.delete(ctx, kind, key)
	}
	return ctx.JSON(http.StatusMethodNotAllowed, echo.Map{"detail": "Method Not Allowed"})
}

func (s *Store) list(ctx echo.Context, res string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if raw, ok := s.rawLists[res]; ok {
		return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(raw))
	}
	rows := s.tables[res]
	if rows == nil {
		rows = []Row{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (s *Store) get(ctx echo.Context, kind record.Kind, key []string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if i := s.find(kind, key); i >= 0 {
		return ctx.JSON(http.StatusOK, s.tables[string(kind)][i])
	}
	return notFound(ctx)
}

func (s *Store) create(ctx echo.Context, kind record.Kind) error {
	row := make(Row)
	if err := json.NewDecoder(ctx.Request().Body).Decode(&row); err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid JSON body"})
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	key := rowKey(kind, row)
	for _, k := range key {
		if k == "" || k == "0" {
			return ctx.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "missing key field"})
		}
	}
	if s.find(kind, key) >= 0 {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"detail": kind.Noun() + " already exists"})
	}
	s.tables[string(kind)] = append(s.tables[string(kind)], row)
	return ctx.JSON(http.StatusCreated, row)
}

func (s *Store) update(ctx echo.Context, kind record.Kind, key []string) error {
	patch := make(Row)
	if err := json.NewDecoder(ctx.Request().Body).Decode(&patch); err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid JSON body"})
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.find(kind, key)
	if i < 0 {
		return notFound(ctx)
	}
	row := s.tables[string(kind)][i]
	for k, v := range patch {
		if kind.IsKeyField(k) {
			continue
		}
		row[k] = v
	}
	return ctx.JSON(http.StatusOK, row)
}

func (s *Store) delete(ctx echo.Context, kind record.Kind, key []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	i := s.find(kind, key)
	if i < 0 {
		return notFound(ctx)
	}
	rows := s.tables[string(kind)]
	s.tables[string(kind)] = append(rows[:i:i], rows[i+1:]...)
	return ctx.JSON(http.StatusOK, echo.Map{"detail": "deleted"})
}

// find returns the index of the row with key, or -1. Callers hold the mutex.
func (s *Store) find(kind record.Kind, key []string) int {
	for i, row := range s.tables[string(kind)] {
		if equalKeys(rowKey(kind, row), key) {
			return i
		}
	}
	return -1
}

func rowKey(kind record.Kind, row Row) []string {
	fields := kind.KeyFields()
	key := make([]string, len(fields))
	for i, f := range fields {
		switch v := row[f].(type) {
		case string:
			key[i] = v
		case float64:
			key[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
		default:
			b, _ := json.Marshal(v)
			key[i] = string(b)
		}
	}
	return key
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func splitKey(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func notFound(ctx echo.Context) error {
	return ctx.JSON(http.StatusNotFound, echo.Map{"detail": "Not Found"})
}

func toRow(rec interface{}) (Row, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	row := make(Row)
	return row, json.Unmarshal(data, &row)
}
