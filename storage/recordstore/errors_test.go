package recordstore

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{"string detail", `{"detail": "Student not found"}`, "Student not found"},
		{"validation list", `{"detail": [{"loc": ["body", "fees"], "msg": "value is not a valid float"}, {"msg": "bad"}]}`,
			"fees: value is not a valid float; bad"},
		{"no detail", `{"error": "x"}`, ""},
		{"not json", `<html>502</html>`, ""},
		{"numeric detail", `{"detail": 3}`, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := newAPIError(http.StatusBadRequest, tc.body)
			assert.Equal(t, tc.wantDetail, err.Detail)
			assert.Equal(t, http.StatusBadRequest, err.Status)
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	var err error = errors.Wrap(&APIError{Status: http.StatusNotFound}, "getting student")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(&APIError{Status: http.StatusBadRequest}, ErrNotFound))
	assert.Equal(t, "record store: 404 Not Found", (&APIError{Status: 404}).Error())
	assert.Equal(t, "Operation failed", Detail(errors.New("boom"), "Operation failed"))
}
