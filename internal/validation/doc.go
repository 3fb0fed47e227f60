// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

// Package validation checks request payloads before they reach the service
// layer, using go-playground/validator v10.
//
// # Overview
//
// Rules live as `validate` struct tags on models.Film and models.User.
// ValidateFilm and ValidateUser return the failed rules as Violations, an
// empty result meaning the payload is well formed. The ValidateNew variants
// also reject a preset identifier.
//
// These are input-shape checks only. The service and stores still enforce
// their own invariants (preset ids, catalog references, self-friendship).
//
// # Custom Tags
//
//   - notblank: string has a non-space character
//   - nowhitespace: string contains no whitespace
//   - releasedate: time.Time strictly after 1895-12-28
//   - notfuture: time.Time not after today
//
// # Usage
//
//	if v := validation.ValidateNewFilm(film); len(v) > 0 {
//	    respondError(w, http.StatusBadRequest, "INVALID_INPUT", v.Error(), nil)
//	    return
//	}
//
// Field names in violations are the JSON names (releaseDate, not ReleaseDate).
package validation
