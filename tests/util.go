package testutil

import (
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/spms/core"
	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/services/logger"
	"github.com/trezcool/spms/storage/recordstore"
	"github.com/trezcool/spms/storage/recordstore/inmem"
)

// NewConfig returns a test configuration pointing at baseURL.
func NewConfig(baseURL string) *core.Config {
	conf := &core.Config{
		Env:       "TEST",
		Build:     "test",
		AppName:   "SPMS",
		TestMode:  true,
		SecretKey: "test-secret",
		WorkDir:   core.Getwd(),
	}
	conf.Server.Host = "localhost"
	conf.Server.ShutdownTimeout = time.Second
	conf.RecordStore.BaseURL = baseURL
	conf.RecordStore.Timeout = 5 * time.Second
	conf.Table.PageSize = 8
	return conf
}

// NewLogger returns a logger that reports nowhere.
func NewLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

// StartStore serves a fresh in-memory Record Store for the duration of the test.
func StartStore(t *testing.T) (*inmemstore.Store, *core.Config) {
	t.Helper()
	store := inmemstore.New()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)
	return store, NewConfig(srv.URL)
}

// NewClient wires a Record Store client to a fresh in-memory store.
func NewClient(t *testing.T) (*recordstore.Client, *inmemstore.Store) {
	t.Helper()
	store, conf := StartStore(t)
	validate, _ := NewValidator()
	client, err := recordstore.NewClient(conf, NewLogger(conf), validate)
	if err != nil {
		t.Fatalf("recordstore.NewClient() failed: %v", err)
	}
	return client, store
}

// Fixtures

func Student(regID int, name string, fees float64) record.Student {
	return record.Student{
		RegistrationID: regID,
		Name:           null.StringFrom(name),
		Email:          null.StringFrom(name + "@example.com"),
		BatchID:        null.StringFrom("B1"),
		Fees:           null.Float64From(fees),
	}
}

func Assignment(regID, no int, marks float64, status string) record.Assignment {
	return record.Assignment{
		RegistrationID:  regID,
		AssignmentNo:    no,
		AssignmentTitle: null.StringFrom("Assignment " + string(rune('A'+no-1))),
		Status:          null.StringFrom(status),
		Marks:           null.Float64From(marks),
	}
}

func Contest(id string, regID int, score float64, rank int) record.Contest {
	return record.Contest{
		ContestID:      id,
		RegistrationID: regID,
		ContestName:    null.StringFrom("Contest " + id),
		Score:          null.Float64From(score),
		Rank:           null.IntFrom(rank),
	}
}

func Mock(id string, regID int, status string) record.Mock {
	return record.Mock{
		MockID:         id,
		RegistrationID: regID,
		Interviewer:    null.StringFrom("Ada"),
		Status:         null.StringFrom(status),
	}
}
