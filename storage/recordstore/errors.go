package recordstore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound matches any APIError with a 404 status (errors.Is).
var ErrNotFound = errors.New("record not found")

// APIError is a non-2xx answer of the Record Store.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("record store: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("record store: %d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Detail is the server-provided detail of err, or fallback when there is none.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func newAPIError(status int, body string) *APIError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		apiErr.Detail = parseDetail(payload.Detail)
	}
	return apiErr
}

// parseDetail reads {"detail": "..."} or the list form of validation failures
// ({"detail": [{"msg": "..."}, ...]}).
func parseDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string        `json:"msg"`
		Loc []interface{} `json:"loc"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if n := len(it.Loc); n > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", it.Loc[n-1], it.Msg))
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
