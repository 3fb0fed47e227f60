// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package api

import (
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/filmorate/internal/models"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"calendar date", `"2001-03-04"`, time.Date(2001, time.March, 4, 0, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"timestamp rejected", `"2001-03-04T10:00:00Z"`, time.Time{}, true},
		{"day first rejected", `"04-03-2001"`, time.Time{}, true},
		{"number rejected", `20010304`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("UnmarshalJSON(%s) error = %v, want InvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalJSON(%s) error = %v", tt.input, err)
			}
			if !d.Equal(tt.want) {
				t.Errorf("UnmarshalJSON(%s) = %v, want %v", tt.input, d.Time, tt.want)
			}
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	local := time.FixedZone("UTC+3", 3*60*60)

	tests := []struct {
		name string
		date Date
		want string
	}{
		{"zero is null", Date{}, `null`},
		{"utc date", NewDate(time.Date(1922, time.March, 4, 0, 0, 0, 0, time.UTC)), `"1922-03-04"`},
		{"time of day dropped", NewDate(time.Date(1999, time.December, 31, 23, 59, 0, 0, local)), `"1999-12-31"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.date)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFilmRequest_Film(t *testing.T) {
	var req FilmRequest
	body := `{"id":3,"name":"Sunrise","releaseDate":"1927-09-23","duration":94,"mpa":{"id":2},"genres":[{"id":1}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	film := req.Film()
	if film.ID != 3 || film.Name != "Sunrise" || film.Duration != 94 {
		t.Errorf("Film() = %+v", film)
	}
	if id := film.RatingID(); id == nil || *id != 2 {
		t.Errorf("RatingID() = %v, want 2", id)
	}
	if ids := film.GenreIDs(); len(ids) != 1 || ids[0] != 1 {
		t.Errorf("GenreIDs() = %v, want [1]", ids)
	}
	if !film.ReleaseDate.Equal(time.Date(1927, time.September, 23, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ReleaseDate = %v", film.ReleaseDate)
	}
}

func TestNewFilmResponse_EmptySlices(t *testing.T) {
	resp := newFilmResponse(models.Film{ID: 1, Name: "Bare"})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"genres", "likes"} {
		if v, ok := decoded[key].([]interface{}); !ok || len(v) != 0 {
			t.Errorf("%s = %v, want empty array", key, decoded[key])
		}
	}
	if decoded["mpa"] != nil {
		t.Errorf("mpa = %v, want null", decoded["mpa"])
	}
}
