// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/filmorate/internal/logging"
	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/validation"
)

// Error codes for API responses.
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// sanitizeLogValue replaces control characters so client-supplied text
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes response with the given status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData writes a success envelope around data. Slices also report
// their length in metadata.count.
func respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}, count ...int) {
	meta := models.Metadata{Timestamp: time.Now().UTC()}
	if start, ok := r.Context().Value(startTimeKey).(time.Time); ok {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}
	if len(count) > 0 {
		n := count[0]
		meta.Count = &n
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondErrorDetails(w, r, status, code, message, nil)
}

func respondErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "error",
		Data:     nil,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondValidation reports field violations as INVALID_INPUT.
func respondValidation(w http.ResponseWriter, r *http.Request, violations validation.Violations) {
	respondErrorDetails(w, r, http.StatusBadRequest, ErrCodeInvalidInput, violations.Error(),
		map[string]interface{}{"violations": violations})
}

// respondServiceError maps an error kind to its HTTP status and code.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.Ctx(r.Context())

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		logger.Debug().Str("error", sanitizeLogValue(err.Error())).Msg("Rejected request")
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
	case errors.Is(err, models.ErrNotFound):
		details := map[string]interface{}{}
		if kind, ok := models.NotFoundKind(err); ok {
			details["kind"] = kind
		}
		respondErrorDetails(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), details)
	case errors.Is(err, models.ErrStorageUnavailable):
		logger.Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Storage unavailable")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeStorageUnavailable, "storage is unavailable, retry later")
	default:
		logger.Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Unhandled API error")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}

// decodeJSON reads one JSON document from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var invalid *models.InvalidInputError
		switch {
		case errors.As(err, &invalid):
			return invalid
		case errors.Is(err, io.EOF):
			return models.InvalidInput("request body is empty")
		default:
			return models.InvalidInput("malformed JSON body: %v", err)
		}
	}
	return nil
}

// pathID parses the named chi URL parameter as a positive id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.InvalidInput("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

// pathIDs parses several chi URL parameters, stopping at the first bad one.
func pathIDs(r *http.Request, names ...string) ([]int64, error) {
	ids := make([]int64, len(names))
	for i, name := range names {
		id, err := pathID(r, name)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// getIntParam extracts an integer query parameter, or defaultValue when absent.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, models.InvalidInput("%s must be an integer, got %q", key, value)
	}
	return n, nil
}
