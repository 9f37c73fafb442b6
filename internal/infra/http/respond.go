package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkandie/rentroll/internal/domain/tenancies"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRepoError maps store errors onto HTTP statuses. Constraint
// violations (bad foreign key, duplicate unit number, CHECK failures) are
// the caller's fault and come back as 400/409; anything else is a 500.
func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tenancies.ErrUnitOccupied), errors.Is(err, tenancies.ErrNotActive):
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			writeError(w, http.StatusBadRequest, "referenced record does not exist or still has dependants")
			return
		case "23505": // unique_violation
			writeError(w, http.StatusConflict, "record already exists")
			return
		case "23514": // check_violation
			writeError(w, http.StatusBadRequest, "value rejected by a store constraint")
			return
		}
	}

	writeError(w, http.StatusInternalServerError, "store access failed")
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func parseQueryID(w http.ResponseWriter, s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// parseDate accepts calendar dates only (YYYY-MM-DD).
func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
