package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/core/table"
)

// row is a record flattened to its JSON fields, so one column set fits every kind.
type row map[string]interface{}

type resource interface {
	rows(ctx context.Context) ([]row, error)
	Delete(ctx context.Context, key ...string) error
}

type repoResource[R record.Record] struct {
	repo record.Repository[R]
}

func (r repoResource[R]) rows(ctx context.Context) ([]row, error) {
	recs, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(recs))
	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, errors.Wrap(err, "encoding record")
		}
		var rw row
		if err := json.Unmarshal(data, &rw); err != nil {
			return nil, errors.Wrap(err, "decoding record")
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func (r repoResource[R]) Delete(ctx context.Context, key ...string) error {
	return r.repo.Delete(ctx, key...)
}

func (cli *commandLine) resource(kind record.Kind) (resource, []record.Field, error) {
	switch kind {
	case record.Students:
		return repoResource[record.Student]{cli.store.Students()}, record.StudentFields, nil
	case record.Batches:
		return repoResource[record.Batch]{cli.store.Batches()}, record.BatchFields, nil
	case record.Assignments:
		return repoResource[record.Assignment]{cli.store.Assignments()}, record.AssignmentFields, nil
	case record.Contests:
		return repoResource[record.Contest]{cli.store.Contests()}, record.ContestFields, nil
	case record.Mocks:
		return repoResource[record.Mock]{cli.store.Mocks()}, record.MockFields, nil
	}
	return nil, nil, record.ErrUnknownKind
}

func columnsOf(fields []record.Field) []table.Column[row] {
	cols := make([]table.Column[row], 0, len(fields))
	for _, f := range fields {
		name := f.Name
		cols = append(cols, table.Column[row]{
			Key:   name,
			Label: f.Label,
			Value: func(r row) interface{} { return r[name] },
		})
	}
	return cols
}
