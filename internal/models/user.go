// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package models

import (
	"slices"
	"strings"
	"time"
)

// User is a catalog member. Friends holds the ids of befriended users,
// sorted ascending.
type User struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email" validate:"required,containsrune=@"`
	Login    string    `json:"login" validate:"notblank,nowhitespace"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday" validate:"required,notfuture"`
	Friends  []int64   `json:"friends"`
}

// WithDefaultName returns a copy whose blank display name is replaced by the login.
func (u User) WithDefaultName() User {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	return u
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	out := u
	out.Friends = slices.Clone(u.Friends)
	if out.Friends == nil {
		out.Friends = []int64{}
	}
	return out
}
