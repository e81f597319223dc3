package recordstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/spms/core/record"
)

// Resource is the Repository of one record kind.
type Resource[R record.Record] struct {
	c    *Client
	kind record.Kind
}

var (
	_ record.Repository[record.Student]    = (*Resource[record.Student])(nil)
	_ record.Repository[record.Batch]      = (*Resource[record.Batch])(nil)
	_ record.Repository[record.Assignment] = (*Resource[record.Assignment])(nil)
	_ record.Repository[record.Contest]    = (*Resource[record.Contest])(nil)
	_ record.Repository[record.Mock]       = (*Resource[record.Mock])(nil)
)

func NewResource[R record.Record](c *Client) *Resource[R] {
	var zero R
	return &Resource[R]{c: c, kind: zero.Kind()}
}

func (r *Resource[R]) Kind() record.Kind { return r.kind }

// List returns every record of the kind. A body that is not a JSON array is an empty list;
// elements that do not decode or fail validation are dropped.
func (r *Resource[R]) List(ctx context.Context) ([]R, error) {
	resp, err := r.c.do(ctx, string(r.kind), rest.Get, r.c.url(string(r.kind)), nil)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	body := strings.TrimSpace(resp.Body)
	if !strings.HasPrefix(body, "[") {
		r.c.log.Warn("record store list is not an array", map[string]interface{}{"resource": r.kind})
		return []R{}, nil
	}
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, errors.Wrapf(err, "decoding %s list", r.kind)
	}

	recs := make([]R, 0, len(items))
	for i, item := range items {
		var rec R
		if err := json.Unmarshal(item, &rec); err != nil {
			r.c.log.Warn("dropping undecodable record", errors.Wrapf(err, "%s[%d]", r.kind, i))
			continue
		}
		if err := r.c.validate.Struct(rec); err != nil {
			r.c.log.Warn("dropping invalid record", errors.Wrapf(err, "%s[%d]", r.kind, i))
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *Resource[R]) Get(ctx context.Context, key ...string) (R, error) {
	var rec R
	resp, err := r.c.do(ctx, string(r.kind), rest.Get, r.c.url(string(r.kind), key...), nil)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal([]byte(resp.Body), &rec)
	return rec, errors.Wrapf(err, "decoding %s", r.kind)
}

func (r *Resource[R]) Create(ctx context.Context, rec R) error {
	_, err := r.c.do(ctx, string(r.kind), rest.Post, r.c.url(string(r.kind)), rec)
	return err
}

// Update patches the record stored under key with every field of rec.
func (r *Resource[R]) Update(ctx context.Context, key []string, rec R) error {
	if len(key) == 0 {
		return errors.Errorf("updating %s: empty key", r.kind)
	}
	_, err := r.c.do(ctx, string(r.kind), rest.Patch, r.c.url(string(r.kind), key...), rec)
	return err
}

func (r *Resource[R]) Delete(ctx context.Context, key ...string) error {
	if len(key) == 0 {
		return errors.Errorf("deleting %s: empty key", r.kind)
	}
	_, err := r.c.do(ctx, string(r.kind), rest.Delete, r.c.url(string(r.kind), key...), nil)
	return err
}
