package record

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"strings"
)

// Scalar is a loosely typed JSON scalar (string, number, bool or null) for fields whose
// type the Record Store does not pin down. Objects and arrays are kept as compact JSON text.
type Scalar struct {
	v interface{}
}

func ScalarFrom(v interface{}) Scalar { return Scalar{v: v} }

// scalarText is the Scalar of a form value; blank input is null.
func scalarText(s string) Scalar {
	if strings.TrimSpace(s) == "" {
		return Scalar{}
	}
	return ScalarFrom(s)
}

func (s Scalar) IsNull() bool { return s.v == nil }
func (s Scalar) Interface() interface{} { return s.v }

func (s *Scalar) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		v = buf.String()
	}
	s.v = v
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.v)
}

// Value implements driver.Valuer so generic code can unwrap the scalar.
func (s Scalar) Value() (driver.Value, error) {
	return s.v, nil
}

func (s Scalar) String() string {
	switch v := s.v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	b, _ := json.Marshal(s.v)
	return string(b)
}
