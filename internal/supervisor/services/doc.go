// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

// Package services adapts Filmorate components to suture.Service.
//
//   - HTTPServerService: ListenAndServe plus graceful Shutdown on cancel
//   - StorageMonitorService: periodic database probe feeding the
//     filmorate_storage_up gauge
//
// Each Serve returns ctx.Err() after a clean stop and a non-nil error on
// failure, which tells the supervisor to restart it.
package services
