// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package logging provides structured logging for Filmorate on top of zerolog.

A single global logger is configured once at startup:

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})

Package-level helpers start events on it:

	logging.Info().Str("backend", "sqlite").Msg("Storage ready")
	logging.Err(err).Int64("film_id", id).Msg("Like failed")

Request-scoped logging picks up the request id set by the middleware:

	logging.Ctx(r.Context()).Warn().Msg("Rejected film with preset id")

Components keep a tagged child logger:

	logger := logging.WithComponent("database")

SlogHandler bridges zerolog into log/slog for libraries that only accept an
*slog.Logger, such as the supervisor tree.
*/
package logging
