// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package metrics registers the Prometheus metrics exported on /metrics.

Metric families:

  - filmorate_store_operation_*: latency and outcome of every storage call,
    labeled by backend (memory, duckdb, sqlite) and operation
  - filmorate_catalog_cache_*: genre and rating cache effectiveness
  - filmorate_api_*: request count, latency and in-flight gauge
  - filmorate_circuit_breaker_*: relational backend breaker state

All metrics are registered on the default registry via promauto.
*/
package metrics
