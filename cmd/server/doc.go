// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package main is the entry point for the Filmorate server.

Filmorate stores films and users, the likes users give films, a symmetric
friendship graph between users, and the fixed genre and MPA rating catalogs.
It serves them over a JSON REST API.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("filmorate")
	├── StorageSupervisor ("storage-layer")
	│   └── Storage monitor (duckdb and sqlite backends only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Initialization order:

 1. Configuration: Koanf v2 with defaults, an optional YAML file and
    environment variables
 2. Logging: zerolog with JSON or console output
 3. Storage: in-memory maps, DuckDB or SQLite
 4. Service: the rating workflow over the selected stores
 5. HTTP Server: chi router with CORS, rate limiting and Prometheus metrics
 6. Supervisor Tree: runs until SIGINT or SIGTERM

# Configuration

Common environment variables:

	STORAGE_BACKEND=memory|duckdb|sqlite
	STORAGE_PATH=/data/filmorate.db
	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

On SIGINT or SIGTERM the supervisor cancels every service. The HTTP server
stops accepting connections and drains in-flight requests within
SHUTDOWN_TIMEOUT, then the storage backend is closed.

# Example Usage

	STORAGE_BACKEND=sqlite STORAGE_PATH=./filmorate.db ./filmorate
*/
package main
