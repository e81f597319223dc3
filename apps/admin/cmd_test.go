package main

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/trezcool/spms/storage/recordstore"
	"github.com/trezcool/spms/storage/recordstore/inmem"
	"github.com/trezcool/spms/tests"
)

func setup(t *testing.T) (*commandLine, *inmemstore.Store, *bytes.Buffer) {
	client, store := testutil.NewClient(t)
	out := new(bytes.Buffer)

	// start CLI
	return &commandLine{
		store:    client,
		pageSize: 8,
		in:       strings.NewReader(""),
		out:      out,
	}, store, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
	extra      interface{}
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output does not contain %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, _, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{"Usage:", "students, batches, assignments, contests, mocks"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "help flag", args: []string{"list", "-h"}, wantErr: errHelp},
	})
}

func Test_commandLine_list(t *testing.T) {
	cli, store, out := setup(t)

	for i, name := range []string{"Amy", "Bob", "Cid", "Dee", "Eve", "Fay", "Gus", "Hal", "Ivy", "Jon"} {
		store.Seed("students", testutil.Student(i+1, name, 45000))
	}
	store.Fail("batches", http.StatusInternalServerError, "boom")

	runCLITests(t, cli, out, []cliTest{
		{name: "no resource", args: []string{"list"}, wantErr: errHelp},
		{name: "unknown resource", args: []string{"list", "-resource", "teachers"}, wantErr: errHelp},
		{
			name:    "first page",
			args:    []string{"list", "-resource", "students"},
			wantOut: []string{"Registration ID", "Amy", "Hal", "10 results  page 1 / 2"},
		},
		{
			name:    "second page",
			args:    []string{"list", "-resource", "Students", "-page", "2"},
			wantOut: []string{"Ivy", "Jon", "10 results  page 2 / 2"},
		},
		{
			name:    "page is clamped",
			args:    []string{"list", "-resource", "students", "-page", "7"},
			wantOut: []string{"page 2 / 2"},
		},
		{
			name:    "search",
			args:    []string{"list", "-resource", "students", "-search", "EVE"},
			wantOut: []string{"Eve", "1 results  page 1 / 1"},
		},
		{
			name:    "page size",
			args:    []string{"list", "-resource", "students", "-pagesize", "5"},
			wantOut: []string{"page 1 / 2"},
		},
		{name: "unknown sort key", args: []string{"list", "-resource", "students", "-sort", "shoe_size"}, wantErrStr: `unknown sort key "shoe_size"`},
		{name: "empty resource", args: []string{"list", "-resource", "mocks"}, wantOut: []string{"0 results  page 1 / 1"}},
		{name: "store failure", args: []string{"list", "-resource", "batches"}, wantErrStr: "listing batches: record store: 500: boom"},
	})

	t.Run("descending sort", func(t *testing.T) {
		out.Reset()
		if err := cli.run([]string{"admin", "list", "-resource", "students", "-sort", "name", "-desc"}); err != nil {
			t.Fatalf("cli.run() unexpected error = %v", err)
		}
		got := out.String()
		if strings.Index(got, "Jon") > strings.Index(got, "Cid") {
			t.Errorf("rows are not sorted by name descending:\n%s", got)
		}
		if strings.Contains(got, "Amy") {
			t.Errorf("Amy should be on the second page:\n%s", got)
		}
	})
}

func Test_commandLine_placement(t *testing.T) {
	cli, store, out := setup(t)
	store.SetPlacement(42, `{"registration_id": 42, "placement_ready": true, "assignments_done": 5}`)
	store.SetPlacement(7, `{"is_ready": 0}`)

	runCLITests(t, cli, out, []cliTest{
		{name: "no args", args: []string{"placement"}, wantErr: errHelp},
		{name: "negative id", args: []string{"placement", "-regid", "-3"}, wantErr: errHelp},
		{
			name:    "ready",
			args:    []string{"placement", "-regid", "42"},
			wantOut: []string{"Placement Ready! 🎉", "Student ID: 42", "Assignments Done", "✅ Yes"},
		},
		{
			name:    "not ready",
			args:    []string{"placement", "-regid", "7"},
			wantOut: []string{"Not Ready Yet", "Student ID: 7"},
		},
		{name: "not found", args: []string{"placement", "-regid", "8"}, wantErr: recordstore.ErrNotFound},
	})
}

func Test_commandLine_delete(t *testing.T) {
	cli, store, out := setup(t)
	store.Seed("contests",
		testutil.Contest("C1", 1, 80, 1),
		testutil.Contest("C1", 2, 70, 2),
		testutil.Contest("C2", 1, 60, 3),
	)

	type extra struct {
		terminal bool
		answer   string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"delete"}, wantErr: errHelp},
		{name: "no key", args: []string{"delete", "-resource", "contests"}, wantErr: errHelp},
		{
			name:       "short key",
			args:       []string{"delete", "-resource", "contests", "-key", "C1"},
			wantErrStr: "contests are keyed by contest_id, registration_id: got 1 key value(s), want 2",
		},
		{
			name:    "not a terminal",
			args:    []string{"delete", "-resource", "contests", "-key", "C1", "-key", "1"},
			wantErr: errNotAllowed,
		},
		{
			name:    "declined",
			args:    []string{"delete", "-resource", "contests", "-key", "C1", "-key", "1"},
			extra:   extra{terminal: true, answer: "n\n"},
			wantOut: []string{"Delete this contest entry (C1 / 1)? [y/N]", "Cancelled"},
		},
		{
			name:    "no answer",
			args:    []string{"delete", "-resource", "contests", "-key", "C1", "-key", "1"},
			extra:   extra{terminal: true},
			wantOut: []string{"Cancelled"},
		},
	}
	for _, tt := range tests {
		isTerminalFunc = func(fd int) bool {
			e, _ := tt.extra.(extra)
			return e.terminal
		}
		if e, ok := tt.extra.(extra); ok {
			cli.in = strings.NewReader(e.answer)
		}
		runCLITests(t, cli, out, []cliTest{tt})
	}

	if calls := store.CallsWith(http.MethodDelete); len(calls) != 0 {
		t.Fatalf("unconfirmed deletes reached the store: %+v", calls)
	}

	isTerminalFunc = func(int) bool { return true }
	cli.in = strings.NewReader("yes\n")
	runCLITests(t, cli, out, []cliTest{
		{name: "confirmed", args: []string{"delete", "-resource", "contests", "-key", "C1", "-key", "1"}, wantOut: []string{"Deleted contest entry"}},
	})

	isTerminalFunc = func(int) bool { return false }
	runCLITests(t, cli, out, []cliTest{
		{name: "forced", args: []string{"delete", "-resource", "contests", "-key", "C2", "-key", "1", "-yes"}, wantOut: []string{"Deleted contest entry"}},
		{name: "missing record", args: []string{"delete", "-resource", "contests", "-key", "C9", "-key", "1", "-yes"}, wantErr: recordstore.ErrNotFound},
	})

	deletes := store.CallsWith(http.MethodDelete)
	if len(deletes) != 3 || deletes[0].Path != "/contests/C1/1" || deletes[1].Path != "/contests/C2/1" {
		t.Errorf("unexpected delete calls: %+v", deletes)
	}
	if rows := store.Rows("contests"); len(rows) != 1 {
		t.Errorf("want 1 contest left, got %d", len(rows))
	}
}
