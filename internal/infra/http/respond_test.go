package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/mkandie/rentroll/internal/domain/tenancies"
)

func TestWriteRepoError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"occupied unit is a conflict", tenancies.ErrUnitOccupied, http.StatusConflict},
		{"ending a non-active tenancy is a conflict", tenancies.ErrNotActive, http.StatusConflict},
		{"fk violation is the caller's fault", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest},
		{"duplicate unit number is a conflict", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"check violation is the caller's fault", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest},
		{"wrapped sentinel still maps", fmt.Errorf("create: %w", tenancies.ErrUnitOccupied), http.StatusConflict},
		{"anything else is a store failure", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeRepoError(rec, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-05-03")
	assert.NoError(t, err)
	assert.Equal(t, 2024, got.Year())

	for _, bad := range []string{"", "03/05/2024", "2024-5-3", "2024-05-03T00:00:00Z"} {
		_, err := parseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}
