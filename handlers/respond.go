package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondInternalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	respondError(w, http.StatusInternalServerError, msg)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

const dateLayout = "2006-01-02"

// parseDateRange reads inclusive start/end calendar dates from query
// parameters. An inverted range is a validation error: the aggregator
// downstream assumes ordering and never re-checks it.
func parseDateRange(r *http.Request) (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		return start, end, fmt.Errorf("invalid start date, expected YYYY-MM-DD")
	}
	end, err = time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		return start, end, fmt.Errorf("invalid end date, expected YYYY-MM-DD")
	}
	if start.After(end) {
		return start, end, fmt.Errorf("start date must not be after end date")
	}
	return start, end, nil
}
