// Package placement decodes the placement readiness report of a student.
//
// The report has no fixed schema: every field the Record Store returns is kept, in
// response order, and rendered generically.
package placement

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotObject is returned when the report is not a JSON object.
var ErrNotObject = errors.New("placement report is not a JSON object")

// readyKeys are checked in order; the first truthy one marks the student ready.
var readyKeys = []string{"placement_ready", "is_ready", "ready"}

type Field struct {
	Key   string
	Value interface{} // nil, bool, json.Number, string, or compact JSON text for objects/arrays
	raw   json.RawMessage
}

// Label is the key with underscores turned to spaces, each word capitalized.
func (f Field) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(f.Key, "_", " "))
}

// Display formats the value for humans.
func (f Field) Display() string {
	switch v := f.Value.(type) {
	case bool:
		if v {
			return "✅ Yes"
		}
		return "❌ No"
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return formatNumber(v)
	}
	return string(f.raw)
}

func (f Field) isObject() bool {
	return len(f.raw) > 0 && (f.raw[0] == '{' || f.raw[0] == '[')
}

type Status struct {
	Fields []Field
}

// Decode parses a report, keeping the order of its top-level keys. A repeated key keeps its
// first position and takes the last value, as JavaScript object parsing does.
func Decode(data []byte) (*Status, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "reading placement report")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	st := &Status{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "reading placement key")
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, "reading placement field %q", key)
		}
		fld := Field{Key: key, raw: compact(raw)}
		if !fld.isObject() {
			var v interface{}
			d := json.NewDecoder(bytes.NewReader(raw))
			d.UseNumber()
			if err := d.Decode(&v); err != nil {
				return nil, errors.Wrapf(err, "decoding placement field %q", key)
			}
			fld.Value = v
		} else {
			fld.Value = string(fld.raw)
		}
		if i, dup := seen[key]; dup {
			st.Fields[i] = fld
			continue
		}
		seen[key] = len(st.Fields)
		st.Fields = append(st.Fields, fld)
	}
	return st, nil
}

// Get returns the field named key.
func (s *Status) Get(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Ready reports whether any readiness flag is truthy.
func (s *Status) Ready() bool {
	for _, k := range readyKeys {
		if f, ok := s.Get(k); ok && truthy(f) {
			return true
		}
	}
	return false
}

// RegistrationID is the id reported by the Record Store, or fallback when absent.
func (s *Status) RegistrationID(fallback string) string {
	if f, ok := s.Get("registration_id"); ok && f.Value != nil {
		return f.Display()
	}
	return fallback
}

func truthy(f Field) bool {
	switch v := f.Value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if f.isObject() {
			return true
		}
		return v != ""
	case json.Number:
		n, err := v.Float64()
		return err == nil && n != 0
	}
	return true
}

func formatNumber(n json.Number) string {
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
