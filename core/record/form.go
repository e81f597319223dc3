package record

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/spms/core"
)

var (
	decoder = newDecoder()
	encoder = schema.NewEncoder()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

// DecodeForm fills dst (a pointer to a form buffer) from posted form values.
func DecodeForm(dst interface{}, src url.Values) error {
	return errors.Wrap(decoder.Decode(dst, src), "decoding form")
}

// FormValues flattens a form buffer into name → value, for rendering inputs.
func FormValues(form interface{}) map[string]string {
	vals := url.Values{}
	if err := encoder.Encode(form, vals); err != nil {
		return map[string]string{}
	}
	m := make(map[string]string, len(vals))
	for k := range vals {
		m[k] = vals.Get(k)
	}
	return m
}

// coercer converts form strings to typed values, collecting a field error per bad input.
type coercer struct {
	errs []core.FieldError
}

func (c *coercer) fail(field, msg string) {
	c.errs = append(c.errs, core.FieldError{Field: field, Error: msg})
}

func (c *coercer) number(field, s string) null.Float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Float64{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.fail(field, "must be a number")
		return null.Float64{}
	}
	return null.Float64From(f)
}

func (c *coercer) integer(field, s string) null.Int {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Int{}
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		c.fail(field, "must be a whole number")
		return null.Int{}
	}
	return null.IntFrom(i)
}

// id parses a required positive integer key.
func (c *coercer) id(field, s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		c.fail(field, "this field is required")
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		c.fail(field, "must be a positive number")
		return 0
	}
	return i
}

// key checks a required string key.
func (c *coercer) key(field, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		c.fail(field, "this field is required")
	} else if strings.ContainsAny(s, "/?#") {
		c.fail(field, "must not contain '/', '?' or '#'")
	}
	return s
}

func (c *coercer) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return core.NewValidationError(nil, c.errs...)
}

// text leaves blank input null, like c.number does for empty numbers.
func text(s string) null.String {
	if strings.TrimSpace(s) == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func idString(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}

func numberString(f null.Float64) string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}

func intString(i null.Int) string {
	if !i.Valid {
		return ""
	}
	return strconv.Itoa(i.Int)
}

// keyAt returns key[i], or "" when the key is too short.
func keyAt(key []string, i int) string {
	if i < len(key) {
		return key[i]
	}
	return ""
}

var (
	_ Form[StudentForm, Student]       = StudentForm{}
	_ Form[BatchForm, Batch]           = BatchForm{}
	_ Form[AssignmentForm, Assignment] = AssignmentForm{}
	_ Form[ContestForm, Contest]       = ContestForm{}
	_ Form[MockForm, Mock]             = MockForm{}
)
