package tests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/spms/apps/web/echo"
	"github.com/trezcool/spms/storage/recordstore"
	"github.com/trezcool/spms/storage/recordstore/inmem"
	"github.com/trezcool/spms/tests"
)

func setup(t *testing.T) (*Server, *inmemstore.Store) {
	store, conf := testutil.StartStore(t)
	validate, translator := testutil.NewValidator()
	logger := testutil.NewLogger(conf)

	client, err := recordstore.NewClient(conf, logger, validate)
	require.NoError(t, err)

	srv, err := NewServer(Deps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Store:      client,
		Options:    &Options{DisableReqLogs: true, DisableCSRF: true},
	})
	require.NoError(t, err)
	return srv, store
}

type httpTest struct {
	name         string
	method       string
	path         string
	form         url.Values
	wantCode     int
	wantLocation string
	wantBody     []string
	skipBody     []string
}

func newRequest(method, path string, form url.Values, cookies ...*http.Cookie) (*http.Request, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req, httptest.NewRecorder()
}

// login signs in through the login form and returns the session cookie.
func login(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	req, rec := newRequest(http.MethodPost, "/login", url.Values{"email": {"admin@spms.io"}, "password": {"x"}})
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	c := findCookie(rec, "spms_session")
	require.NotNil(t, c, "session cookie not set")
	return c
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func runHTTPTests(t *testing.T, srv *Server, tests []httpTest, cookies ...*http.Cookie) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.form, cookies...)
			srv.ServeHTTP(rec, req)
			checkResponse(t, tt, rec)
		})
	}
}

func checkResponse(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "code")
	if tt.wantLocation != "" {
		assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation), "location")
	}
	body := rec.Body.String()
	for _, want := range tt.wantBody {
		assert.Contains(t, body, want)
	}
	for _, skip := range tt.skipBody {
		assert.NotContains(t, body, skip)
	}
}
