// Package record holds the schema of every resource kind served by the Remote Record Store:
// one tagged struct per kind, its natural key, and the string form buffer used to edit it.
package record

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownKind is returned by ParseKind.
var ErrUnknownKind = errors.New("unknown resource kind")

// Kind is a resource kind; its value is the resource's path segment on the Record Store.
type Kind string

const (
	Students    Kind = "students"
	Batches     Kind = "batches"
	Assignments Kind = "assignments"
	Contests    Kind = "contests"
	Mocks       Kind = "mocks"
)

type kindInfo struct {
	noun   string
	plural string
	keys   []string
}

var kinds = map[Kind]kindInfo{
	Students:    {noun: "student", plural: "students", keys: []string{"registration_id"}},
	Batches:     {noun: "batch", plural: "batches", keys: []string{"batch_id"}},
	Assignments: {noun: "assignment", plural: "assignments", keys: []string{"registration_id", "assignment_no"}},
	Contests:    {noun: "contest entry", plural: "contests", keys: []string{"contest_id", "registration_id"}},
	Mocks:       {noun: "mock interview", plural: "mock interviews", keys: []string{"mock_id", "registration_id"}},
}

// AllKinds lists the editable kinds in menu order.
var AllKinds = []Kind{Students, Batches, Assignments, Contests, Mocks}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kinds[k]; !ok {
		return "", errors.Wrapf(ErrUnknownKind, "%q", s)
	}
	return k, nil
}

// Noun is the singular display name ("student", "contest entry", ...).
func (k Kind) Noun() string { return kinds[k].noun }

// Plural is the plural display name.
func (k Kind) Plural() string { return kinds[k].plural }

// KeyFields names the fields forming the natural key, in path order.
func (k Kind) KeyFields() []string { return kinds[k].keys }

// IsKeyField reports whether name is part of the natural key.
func (k Kind) IsKeyField(name string) bool {
	for _, f := range kinds[k].keys {
		if f == name {
			return true
		}
	}
	return false
}

// Record is one row of domain data.
type Record interface {
	Kind() Kind
	// Key returns the natural key as path segments.
	Key() []string
}

// Repository is the set of operations the Record Store offers for one resource kind.
type Repository[R Record] interface {
	List(ctx context.Context) ([]R, error)
	Get(ctx context.Context, key ...string) (R, error)
	Create(ctx context.Context, rec R) error
	Update(ctx context.Context, key []string, rec R) error
	Delete(ctx context.Context, key ...string) error
}

// Form is the editable string buffer of a record kind.
type Form[F any, R Record] interface {
	// WithKey returns the buffer with its key fields replaced by key (the record being edited).
	WithKey(key []string) F
	// Record coerces the buffer into a typed record.
	Record() (R, error)
}

// Field describes one input of a form.
type Field struct {
	Name        string
	Label       string
	Type        string // text, number, date, email
	Key         bool
	Placeholder string
}
