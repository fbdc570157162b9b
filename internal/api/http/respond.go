package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/repository"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func respondError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// errorStatus maps engine errors onto HTTP statuses: transition and
// concurrency violations conflict, missing rows 404, everything else is a
// caller-correctable 400.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, repository.ErrStaleLease):
		return http.StatusConflict
	case errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case err.Error() == "unauthorized":
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// actorID identifies the acting user. Authentication lives in front of
// this service; the gateway injects the verified user id.
func actorID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
