package handling

import (
	"burnshop_server/lib"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"field validation", lib.NewValidationError("name", "is required"), http.StatusBadRequest},
		{"plain validation", fmt.Errorf("rating: %w", lib.ErrValidation), http.StatusBadRequest},
		{"reference", fmt.Errorf("category: %w", lib.ErrReference), http.StatusBadRequest},
		{"not found", fmt.Errorf("product: %w", lib.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("username: %w", lib.ErrConflict), http.StatusConflict},
		{"forbidden", fmt.Errorf("order: %w", lib.ErrForbidden), http.StatusForbidden},
		{"credentials", lib.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", lib.ErrExpiredToken, http.StatusUnauthorized},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			returned := HandleError(tc.err, "test", logger, rec)

			require.ErrorIs(t, returned, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestHandleErrorHidesDriverMessages(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(errors.New(`pq: relation "secret_table" does not exist`), "test", gecho.NewDefaultLogger(), rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret_table")
}
