// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

// Package service implements the rating workflow over the storage
// interfaces.
//
// Stores own single-entity invariants. The Service adds the rules that
// need more than one of them:
//   - a like requires an existing film and user, and a missing film is
//     reported before a missing user
//   - genre and rating tags must name catalog rows; they are checked
//     before any write, so a rejected request changes nothing
//   - returned films carry genre and rating names resolved from the catalogs
//
// AddFilm and UpdateFilm issue several store calls. A storage failure
// part way through can leave the scalar write applied without its tags;
// the caller sees StorageUnavailable and may retry the update.
package service
