// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/filmorate/internal/models"
)

func validFilm() models.Film {
	return models.Film{
		Name:        "The Matrix",
		Description: "A hacker learns the truth.",
		ReleaseDate: time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC),
		Duration:    136,
	}
}

func validUser() models.User {
	return models.User{
		Email:    "neo@example.com",
		Login:    "neo",
		Birthday: time.Date(1964, time.September, 2, 0, 0, 0, 0, time.UTC),
	}
}

// fixClock pins the notfuture reference date for the duration of a test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func hasViolation(v Violations, field, tag string) bool {
	for _, violation := range v {
		if violation.Field == field && violation.Tag == tag {
			return true
		}
	}
	return false
}

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// Film Tests
// ===================================================================================================

func TestValidateFilm(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *models.Film)
		wantField string
		wantTag   string
	}{
		{
			name:   "valid film",
			mutate: func(f *models.Film) {},
		},
		{
			name:      "empty name",
			mutate:    func(f *models.Film) { f.Name = "" },
			wantField: "name",
			wantTag:   "notblank",
		},
		{
			name:      "blank name",
			mutate:    func(f *models.Film) { f.Name = "   " },
			wantField: "name",
			wantTag:   "notblank",
		},
		{
			name:   "description at limit",
			mutate: func(f *models.Film) { f.Description = strings.Repeat("a", 200) },
		},
		{
			name:   "multibyte description at limit",
			mutate: func(f *models.Film) { f.Description = strings.Repeat("é", 200) },
		},
		{
			name:      "description over limit",
			mutate:    func(f *models.Film) { f.Description = strings.Repeat("a", 201) },
			wantField: "description",
			wantTag:   "max",
		},
		{
			name:      "release on cinema birthday",
			mutate:    func(f *models.Film) { f.ReleaseDate = models.CinemaBirthday },
			wantField: "releaseDate",
			wantTag:   "releasedate",
		},
		{
			name: "release the day after cinema birthday",
			mutate: func(f *models.Film) {
				f.ReleaseDate = time.Date(1895, time.December, 29, 0, 0, 0, 0, time.UTC)
			},
		},
		{
			name:      "missing release date",
			mutate:    func(f *models.Film) { f.ReleaseDate = time.Time{} },
			wantField: "releaseDate",
			wantTag:   "releasedate",
		},
		{
			name:      "zero duration",
			mutate:    func(f *models.Film) { f.Duration = 0 },
			wantField: "duration",
			wantTag:   "gt",
		},
		{
			name:      "negative duration",
			mutate:    func(f *models.Film) { f.Duration = -5 },
			wantField: "duration",
			wantTag:   "gt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFilm()
			tt.mutate(&f)

			got := ValidateFilm(f)
			if tt.wantField == "" {
				if len(got) != 0 {
					t.Errorf("ValidateFilm() = %v, want no violations", got)
				}
				return
			}
			if !hasViolation(got, tt.wantField, tt.wantTag) {
				t.Errorf("ValidateFilm() = %v, want %s/%s", got, tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateNewFilm_PresetID(t *testing.T) {
	f := validFilm()
	f.ID = 7

	got := ValidateNewFilm(f)
	if !hasViolation(got, "id", "unset") {
		t.Errorf("ValidateNewFilm() = %v, want id violation", got)
	}
	if len(ValidateFilm(f)) != 0 {
		t.Error("ValidateFilm() should accept an id for updates")
	}
}

// ===================================================================================================
// User Tests
// ===================================================================================================

func TestValidateUser(t *testing.T) {
	fixClock(t, time.Date(2026, time.October, 16, 15, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		mutate    func(u *models.User)
		wantField string
		wantTag   string
	}{
		{
			name:   "valid user",
			mutate: func(u *models.User) {},
		},
		{
			name:   "blank display name is allowed",
			mutate: func(u *models.User) { u.Name = "  " },
		},
		{
			name:      "empty email",
			mutate:    func(u *models.User) { u.Email = "" },
			wantField: "email",
			wantTag:   "required",
		},
		{
			name:      "email without at sign",
			mutate:    func(u *models.User) { u.Email = "neo.example.com" },
			wantField: "email",
			wantTag:   "containsrune",
		},
		{
			name:      "empty login",
			mutate:    func(u *models.User) { u.Login = "" },
			wantField: "login",
			wantTag:   "notblank",
		},
		{
			name:      "login with space",
			mutate:    func(u *models.User) { u.Login = "the one" },
			wantField: "login",
			wantTag:   "nowhitespace",
		},
		{
			name:      "login with tab",
			mutate:    func(u *models.User) { u.Login = "the\tone" },
			wantField: "login",
			wantTag:   "nowhitespace",
		},
		{
			name:   "born today",
			mutate: func(u *models.User) { u.Birthday = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC) },
		},
		{
			name:      "born tomorrow",
			mutate:    func(u *models.User) { u.Birthday = time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC) },
			wantField: "birthday",
			wantTag:   "notfuture",
		},
		{
			name:      "missing birthday",
			mutate:    func(u *models.User) { u.Birthday = time.Time{} },
			wantField: "birthday",
			wantTag:   "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)

			got := ValidateUser(u)
			if tt.wantField == "" {
				if len(got) != 0 {
					t.Errorf("ValidateUser() = %v, want no violations", got)
				}
				return
			}
			if !hasViolation(got, tt.wantField, tt.wantTag) {
				t.Errorf("ValidateUser() = %v, want %s/%s", got, tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateNewUser_PresetID(t *testing.T) {
	u := validUser()
	u.ID = 3

	if got := ValidateNewUser(u); !hasViolation(got, "id", "unset") {
		t.Errorf("ValidateNewUser() = %v, want id violation", got)
	}
}

// ===================================================================================================
// Violations Tests
// ===================================================================================================

func TestViolations_Err(t *testing.T) {
	if err := Violations(nil).Err(); err != nil {
		t.Errorf("empty Violations.Err() = %v, want nil", err)
	}

	f := validFilm()
	f.Name = ""
	f.Duration = 0
	v := ValidateFilm(f)
	if len(v) != 2 {
		t.Fatalf("ValidateFilm() = %v, want 2 violations", v)
	}

	err := v.Err()
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Err() = %v, want ErrInvalidInput", err)
	}
	for _, want := range []string{"name must not be blank", "duration must be greater than 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Err() = %q, missing %q", err.Error(), want)
		}
	}
}

func TestTranslateError_Fallback(t *testing.T) {
	type sample struct {
		Code string `json:"code" validate:"len=3"`
	}
	v := ValidateStruct(sample{Code: "ab"})
	if len(v) != 1 {
		t.Fatalf("ValidateStruct() = %v, want 1 violation", v)
	}
	if v[0].Message != "code failed len validation" {
		t.Errorf("Message = %q", v[0].Message)
	}
}
