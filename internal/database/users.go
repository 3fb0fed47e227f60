// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/filmorate/internal/models"
	"github.com/tomtom215/filmorate/internal/storage"
)

// UserStore is the relational storage.UserStore. Each friendship is stored
// as two directed rows that are always written and removed together.
type UserStore struct {
	db *DB
}

var _ storage.UserStore = (*UserStore)(nil)

// CreateUser inserts a new user, defaulting a blank name to the login.
func (s *UserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID != 0 {
		return models.User{}, models.InvalidInput("user id %d must not be set on create", user.ID)
	}
	user = user.WithDefaultName()

	var out models.User
	err := s.db.update(ctx, "create_user", func(q querier) error {
		id, err := nextID(ctx, q, "users")
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO users (id, email, login, name, birthday) VALUES (?, ?, ?, ?, ?)`,
			id, user.Email, user.Login, user.Name, s.db.dateArg(user.Birthday)); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		out, err = s.db.loadUser(ctx, q, id)
		return err
	})
	return out, err
}

// UpdateUser overwrites an existing user's fields. Friendships are kept.
func (s *UserStore) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	user = user.WithDefaultName()

	var out models.User
	err := s.db.update(ctx, "update_user", func(q querier) error {
		if err := requireRow(ctx, q, "users", models.KindUser, user.ID); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE id = ?`,
			user.Email, user.Login, user.Name, s.db.dateArg(user.Birthday), user.ID); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		var err error
		out, err = s.db.loadUser(ctx, q, user.ID)
		return err
	})
	return out, err
}

// GetUser returns one user with its friend ids.
func (s *UserStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	var out models.User
	err := s.db.view(ctx, "get_user", func(q querier) error {
		var err error
		out, err = s.db.loadUser(ctx, q, id)
		return err
	})
	return out, err
}

// GetUsers returns every user ordered by identifier.
func (s *UserStore) GetUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.db.view(ctx, "get_users", func(q querier) error {
		var err error
		out, err = s.db.queryUsers(ctx, q, nil)
		return err
	})
	return out, err
}

// Exists reports whether a user with id is stored.
func (s *UserStore) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.db.run(ctx, "user_exists", func() error {
		var err error
		ok, err = exists(ctx, s.db.conn, "users", id)
		return err
	})
	return ok, err
}

// AddFriend makes id and friendID mutual friends.
func (s *UserStore) AddFriend(ctx context.Context, id, friendID int64) error {
	return s.db.update(ctx, "add_friend", func(q querier) error {
		if err := requirePair(ctx, q, id, friendID); err != nil {
			return err
		}
		if id == friendID {
			return models.InvalidInput("user %d cannot befriend themselves", id)
		}
		for _, edge := range [][2]int64{{id, friendID}, {friendID, id}} {
			if _, err := q.ExecContext(ctx,
				`INSERT INTO friendships (user_id, friend_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				edge[0], edge[1]); err != nil {
				return fmt.Errorf("insert friendship: %w", err)
			}
		}
		return nil
	})
}

// RemoveFriend deletes both directions of a friendship.
func (s *UserStore) RemoveFriend(ctx context.Context, id, friendID int64) error {
	return s.db.update(ctx, "remove_friend", func(q querier) error {
		if err := requirePair(ctx, q, id, friendID); err != nil {
			return err
		}
		_, err := q.ExecContext(ctx,
			`DELETE FROM friendships
			 WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)`,
			id, friendID, friendID, id)
		return err
	})
}

// FriendsOf returns the friends of id ordered by identifier.
func (s *UserStore) FriendsOf(ctx context.Context, id int64) ([]models.User, error) {
	var out []models.User
	err := s.db.view(ctx, "friends_of", func(q querier) error {
		if err := requireRow(ctx, q, "users", models.KindUser, id); err != nil {
			return err
		}
		rows, err := q.QueryContext(ctx,
			`SELECT friend_id FROM friendships WHERE user_id = ? ORDER BY friend_id`, id)
		if err != nil {
			return err
		}
		ids, err := scanIDs(rows)
		if err != nil {
			return err
		}
		out, err = s.db.usersByID(ctx, q, ids)
		return err
	})
	return out, err
}

// CommonFriends returns users befriended by both id and otherID.
func (s *UserStore) CommonFriends(ctx context.Context, id, otherID int64) ([]models.User, error) {
	var out []models.User
	err := s.db.view(ctx, "common_friends", func(q querier) error {
		if err := requirePair(ctx, q, id, otherID); err != nil {
			return err
		}
		rows, err := q.QueryContext(ctx,
			`SELECT a.friend_id
			 FROM friendships a
			 JOIN friendships b ON b.friend_id = a.friend_id
			 WHERE a.user_id = ? AND b.user_id = ?
			 ORDER BY a.friend_id`, id, otherID)
		if err != nil {
			return err
		}
		ids, err := scanIDs(rows)
		if err != nil {
			return err
		}
		out, err = s.db.usersByID(ctx, q, ids)
		return err
	})
	return out, err
}

func requirePair(ctx context.Context, q querier, a, b int64) error {
	if err := requireRow(ctx, q, "users", models.KindUser, a); err != nil {
		return err
	}
	return requireRow(ctx, q, "users", models.KindUser, b)
}

// loadUser reads one user or returns NotFound.
func (db *DB) loadUser(ctx context.Context, q querier, id int64) (models.User, error) {
	users, err := db.queryUsers(ctx, q, []int64{id})
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, models.NotFound(models.KindUser, id)
	}
	return users[0], nil
}

// usersByID is queryUsers for an explicit, possibly empty, id list.
func (db *DB) usersByID(ctx context.Context, q querier, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return db.queryUsers(ctx, q, ids)
}

// queryUsers loads users with their friend ids, ordered by id.
// A nil ids slice selects every user.
func (db *DB) queryUsers(ctx context.Context, q querier, ids []int64) ([]models.User, error) {
	userWhere, friendWhere := "", ""
	var args []any
	if ids != nil {
		var clause string
		clause, args = inClause("id", ids)
		userWhere = " WHERE " + clause
		clause, _ = inClause("user_id", ids)
		friendWhere = " WHERE " + clause
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, email, login, name, birthday FROM users`+userWhere+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	users := make([]models.User, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			u        models.User
			birthday dateValue
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &birthday); err != nil {
			closeQuietly(rows)
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Birthday = birthday.Time
		u.Friends = []int64{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		closeQuietly(rows)
		return nil, err
	}
	closeWithLog(ctx, rows, "user rows")
	if len(users) == 0 {
		return users, nil
	}

	friendRows, err := q.QueryContext(ctx,
		`SELECT user_id, friend_id FROM friendships`+friendWhere+` ORDER BY user_id, friend_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query friendships: %w", err)
	}
	if err := scanPairs(friendRows, func(userID, friendID int64) {
		if i, ok := index[userID]; ok {
			users[i].Friends = append(users[i].Friends, friendID)
		}
	}); err != nil {
		return nil, fmt.Errorf("scan friendships: %w", err)
	}
	return users, nil
}
