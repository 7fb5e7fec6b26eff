// Package handler exposes the HTTP JSON API. Handlers stay thin: decode,
// delegate to a service, map the error kind to a status.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mychoreapp/choretribe/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP statuses. Anything outside the
// apperr taxonomy is an internal error and gets logged instead of leaked.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case apperr.IsInvalid(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func parsePathInt(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

const dateLayout = "2006-01-02"

// parseDateRange reads the start and end query parameters as calendar dates.
func parseDateRange(r *http.Request) (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		return
	}
	end, err = time.Parse(dateLayout, r.URL.Query().Get("end"))
	return
}
