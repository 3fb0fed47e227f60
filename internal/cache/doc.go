// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package cache provides a generic in-memory cache with per-entry TTL.

The relational backends keep the genre and MPA catalogs here so that film
reads do not query the catalog tables on every request. Entries expire after
the configured TTL and a background goroutine evicts them until Close.

Usage:

	genres := cache.New[[]models.Genre](10 * time.Minute)
	defer genres.Close()

	if list, ok := genres.Get("all"); ok {
		return list, nil
	}
	genres.Set("all", loaded)

Thread Safety:

All methods are safe for concurrent use.
*/
package cache
