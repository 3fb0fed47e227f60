// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/filmorate/internal/models"
)

// DateLayout is the wire format of release dates and birthdays.
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD". A JSON null or an
// absent field decodes to the zero Date, which validation rejects.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return models.InvalidInput("date must be a %s string", DateLayout)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return models.InvalidInput("date %q is not in %s format", s, DateLayout)
	}
	d.Time = t
	return nil
}

// FilmRequest is the body of POST and PUT /films.
type FilmRequest struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReleaseDate Date           `json:"releaseDate"`
	Duration    int            `json:"duration"`
	MPA         *models.Rating `json:"mpa"`
	Genres      []models.Genre `json:"genres"`
}

// Film converts the request to the domain model.
func (req FilmRequest) Film() models.Film {
	return models.Film{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate.Time,
		Duration:    req.Duration,
		Rating:      req.MPA,
		Genres:      req.Genres,
	}
}

// FilmResponse is a film as returned by the API.
type FilmResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReleaseDate Date           `json:"releaseDate"`
	Duration    int            `json:"duration"`
	MPA         *models.Rating `json:"mpa"`
	Genres      []models.Genre `json:"genres"`
	Likes       []int64        `json:"likes"`
}

func newFilmResponse(f models.Film) FilmResponse {
	f = f.Clone()
	return FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: NewDate(f.ReleaseDate),
		Duration:    f.Duration,
		MPA:         f.Rating,
		Genres:      f.Genres,
		Likes:       f.Likes,
	}
}

func newFilmResponses(films []models.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, newFilmResponse(f))
	}
	return out
}

// UserRequest is the body of POST and PUT /users.
type UserRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

// User converts the request to the domain model.
func (req UserRequest) User() models.User {
	return models.User{
		ID:       req.ID,
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: req.Birthday.Time,
	}
}

// UserResponse is a user as returned by the API.
type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday Date    `json:"birthday"`
	Friends  []int64 `json:"friends"`
}

func newUserResponse(u models.User) UserResponse {
	u = u.Clone()
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: NewDate(u.Birthday),
		Friends:  u.Friends,
	}
}

func newUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}
