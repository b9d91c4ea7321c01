package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"kindler_server/services"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// WriteError maps a service error onto the HTTP response. Known
// *services.APIError values keep their code and status; anything else
// becomes an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		WriteJSON(w, apiErr.Status, map[string]string{
			"error": apiErr.Code,
			"message": apiErr.Message,
		})
		return
	}

	log.Printf("❌ Internal error: %v", err)
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "INTERNAL",
		"message": "something went wrong, please retry",
	})
}

// RequesterID extracts the authenticated caller's id. Authentication
// itself happens upstream; the gateway injects the header.
func RequesterID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// ParsePagination reads page and limit query parameters with sane
// defaults and an upper bound on the page size.
func ParsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 20

	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
