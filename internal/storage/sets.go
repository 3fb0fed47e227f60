// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package storage

import (
	"cmp"
	"slices"

	"github.com/tomtom215/filmorate/internal/models"
)

// SortedKeys returns the keys of set in ascending order.
func SortedKeys[K cmp.Ordered](set map[K]struct{}) []K {
	keys := make([]K, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Dedupe returns ids sorted ascending with duplicates removed.
func Dedupe[K cmp.Ordered](ids []K) []K {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// Intersect returns the ids present in both sorted slices, ascending.
func Intersect(a, b []int64) []int64 {
	out := make([]int64, 0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// RankByLikes orders films by like count descending, then id ascending,
// and truncates to n. n <= 0 yields an empty slice.
func RankByLikes(films []models.Film, n int) []models.Film {
	if n <= 0 {
		return []models.Film{}
	}
	ranked := slices.Clone(films)
	slices.SortStableFunc(ranked, func(a, b models.Film) int {
		if c := cmp.Compare(len(b.Likes), len(a.Likes)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// GenreRefs converts identifiers into id-only genre references.
func GenreRefs(ids []int) []models.Genre {
	refs := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, models.Genre{ID: id})
	}
	return refs
}

// RatingRef converts an optional identifier into an id-only rating reference.
func RatingRef(id *int) *models.Rating {
	if id == nil {
		return nil
	}
	return &models.Rating{ID: *id}
}
