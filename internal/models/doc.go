// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

/*
Package models defines the entities, reference records, error kinds and
response envelopes shared by every layer of Filmorate.

# Entities

Film and User are the two owned entities. Both carry an int64 identifier
assigned by the store on creation; the zero value means "not yet stored".
Relation sets (Film.Likes, Film.Genres, User.Friends) are snapshots built on
read. Mutating them never changes stored state.

# Reference Records

Genre and Rating are small lookup records fixed at deployment time. Stores
return them carrying only their identifiers; the service layer resolves the
names before handing entities to callers.

# Errors

Three error kinds cross package boundaries:

  - ErrInvalidInput: malformed or policy-violating input
  - ErrNotFound: a referenced entity does not exist
  - ErrStorageUnavailable: the backing store could not be reached or committed

Each has a typed counterpart (InvalidInputError, NotFoundError, StorageError)
that matches the sentinel via errors.Is.
*/
package models
