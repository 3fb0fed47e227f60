// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package config loads and validates Filmorate configuration.

Configuration is layered with koanf: struct defaults, then an optional YAML
file, then environment variables. Later layers win.

Example config.yaml:

	storage:
	  backend: sqlite
	  path: /data/filmorate.db
	  breaker:
	    max_failures: 5
	    timeout: 30s
	server:
	  port: 8080
	api:
	  default_popular_count: 10
	logging:
	  level: info
	  format: json

Common environment variables:

	STORAGE_BACKEND   memory | duckdb | sqlite
	STORAGE_PATH      database file (":memory:" for an in-process database)
	HTTP_PORT         listen port
	LOG_LEVEL         trace | debug | info | warn | error
	CORS_ORIGINS      comma-separated allowed origins
*/
package config
