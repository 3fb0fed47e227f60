// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package memory

import (
	"context"
	"sync"

	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// UserStore is the in-memory storage.UserStore.
type UserStore struct {
	mu      sync.RWMutex
	seq     storage.Sequence
	users   map[int64]models.User
	friends map[int64]map[int64]struct{}
}

var _ storage.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[int64]models.User),
		friends: make(map[int64]map[int64]struct{}),
	}
}

// CreateUser stores a new user, defaulting a blank name to the login.
func (s *UserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	if user.ID != 0 {
		return models.User{}, models.InvalidInput("user id %d must not be set on create", user.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user = user.WithDefaultName()
	user.ID = s.seq.Next()
	user.Friends = nil
	s.users[user.ID] = user
	return s.snapshot(user.ID), nil
}

// UpdateUser overwrites an existing user's fields. Friendships are kept.
func (s *UserStore) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return models.User{}, models.NotFound(models.KindUser, user.ID)
	}
	user = user.WithDefaultName()
	user.Friends = nil
	s.users[user.ID] = user
	return s.snapshot(user.ID), nil
}

// GetUser returns one user with its friend ids.
func (s *UserStore) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[id]; !ok {
		return models.User{}, models.NotFound(models.KindUser, id)
	}
	return s.snapshot(id), nil
}

// GetUsers returns every user ordered by identifier.
func (s *UserStore) GetUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[int64]struct{}, len(s.users))
	for id := range s.users {
		ids[id] = struct{}{}
	}
	return s.snapshots(storage.SortedKeys(ids)), nil
}

// Exists reports whether a user with id is stored.
func (s *UserStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

// AddFriend makes id and friendID mutual friends.
func (s *UserStore) AddFriend(_ context.Context, id, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPair(id, friendID); err != nil {
		return err
	}
	if id == friendID {
		return models.InvalidInput("user %d cannot befriend themselves", id)
	}
	s.link(id, friendID)
	s.link(friendID, id)
	return nil
}

// RemoveFriend deletes both directions of a friendship.
func (s *UserStore) RemoveFriend(_ context.Context, id, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPair(id, friendID); err != nil {
		return err
	}
	s.unlink(id, friendID)
	s.unlink(friendID, id)
	return nil
}

// FriendsOf returns the friends of id ordered by identifier.
func (s *UserStore) FriendsOf(_ context.Context, id int64) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[id]; !ok {
		return nil, models.NotFound(models.KindUser, id)
	}
	return s.snapshots(storage.SortedKeys(s.friends[id])), nil
}

// CommonFriends returns users befriended by both id and otherID.
func (s *UserStore) CommonFriends(_ context.Context, id, otherID int64) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkPair(id, otherID); err != nil {
		return nil, err
	}
	common := storage.Intersect(
		storage.SortedKeys(s.friends[id]),
		storage.SortedKeys(s.friends[otherID]),
	)
	return s.snapshots(common), nil
}

func (s *UserStore) checkPair(a, b int64) error {
	if _, ok := s.users[a]; !ok {
		return models.NotFound(models.KindUser, a)
	}
	if _, ok := s.users[b]; !ok {
		return models.NotFound(models.KindUser, b)
	}
	return nil
}

func (s *UserStore) link(from, to int64) {
	set, ok := s.friends[from]
	if !ok {
		set = make(map[int64]struct{})
		s.friends[from] = set
	}
	set[to] = struct{}{}
}

func (s *UserStore) unlink(from, to int64) {
	if set, ok := s.friends[from]; ok {
		delete(set, to)
		if len(set) == 0 {
			delete(s.friends, from)
		}
	}
}

func (s *UserStore) snapshot(id int64) models.User {
	u := s.users[id]
	u.Friends = storage.SortedKeys(s.friends[id])
	return u
}

func (s *UserStore) snapshots(ids []int64) []models.User {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.snapshot(id))
	}
	return out
}
