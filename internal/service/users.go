// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package service

import (
	"context"

	"github.com/tomtom215/filmorate/internal/logging"
	"github.com/tomtom215/filmorate/internal/models"
)

// CreateUser stores a new user. A blank name defaults to the login.
func (s *Service) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	logging.Ctx(ctx).Info().Int64("user_id", created.ID).Str("login", created.Login).Msg("User created")
	return created, nil
}

// UpdateUser overwrites an existing user. Friendships are kept.
func (s *Service) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	updated, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	logging.Ctx(ctx).Info().Int64("user_id", updated.ID).Msg("User updated")
	return updated, nil
}

// GetUser returns one user.
func (s *Service) GetUser(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetUser(ctx, id)
}

// GetUsers returns every user ordered by id.
func (s *Service) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.users.GetUsers(ctx)
}

// AddFriend makes id and friendID mutual friends.
func (s *Service) AddFriend(ctx context.Context, id, friendID int64) error {
	if err := s.users.AddFriend(ctx, id, friendID); err != nil {
		return err
	}
	logging.Ctx(ctx).Debug().Int64("user_id", id).Int64("friend_id", friendID).Msg("Friendship added")
	return nil
}

// RemoveFriend ends the friendship between id and friendID.
func (s *Service) RemoveFriend(ctx context.Context, id, friendID int64) error {
	if err := s.users.RemoveFriend(ctx, id, friendID); err != nil {
		return err
	}
	logging.Ctx(ctx).Debug().Int64("user_id", id).Int64("friend_id", friendID).Msg("Friendship removed")
	return nil
}

// Friends returns the friends of id ordered by id.
func (s *Service) Friends(ctx context.Context, id int64) ([]models.User, error) {
	return s.users.FriendsOf(ctx, id)
}

// CommonFriends returns the users befriended by both id and otherID.
func (s *Service) CommonFriends(ctx context.Context, id, otherID int64) ([]models.User, error) {
	return s.users.CommonFriends(ctx, id, otherID)
}
