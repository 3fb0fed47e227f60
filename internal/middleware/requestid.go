// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package middleware

import (
	"net/http"

	"github.com/tomtom215/filmorate/internal/logging"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds ids accepted from upstream proxies.
const maxRequestIDLength = 128

// RequestID assigns every request an id, reusing one sent by an upstream
// proxy. The id is echoed in the response and bound to the request
// context together with a request logger that logging.Ctx returns.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)

		logger := logging.With().Str("request_id", requestID).Logger()
		ctx := logging.ContextWithLogger(r.Context(), logger)
		ctx = logging.ContextWithRequestID(ctx, requestID)
		next(w, r.WithContext(ctx))
	}
}
