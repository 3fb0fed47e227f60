// Filmorate - Film Catalog and Social Graph Storage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmorate

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/filmorate/internal/models"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// now is the clock used by the notfuture rule.
var now = time.Now

// Violation describes one field that failed validation.
type Violation struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Violations is a non-empty list of validation failures.
type Violations []Violation

// Error joins the violation messages.
func (v Violations) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(v))
	for i, violation := range v {
		messages[i] = violation.Message
	}
	return strings.Join(messages, "; ")
}

// Err returns v as an InvalidInput error, or nil when v is empty.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return models.InvalidInput("%s", v.Error())
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names so violations match the request body.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister("notblank", validateNotBlank)
		mustRegister("nowhitespace", validateNoWhitespace)
		mustRegister("releasedate", validateReleaseDate)
		mustRegister("notfuture", validateNotFuture)
	})

	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// ValidateFilm checks the shape of a film received at the boundary.
func ValidateFilm(film models.Film) Violations {
	return ValidateStruct(film)
}

// ValidateNewFilm is ValidateFilm plus the rule that creates carry no id.
func ValidateNewFilm(film models.Film) Violations {
	return append(presetID(film.ID), ValidateFilm(film)...)
}

// ValidateUser checks the shape of a user received at the boundary.
func ValidateUser(user models.User) Violations {
	return ValidateStruct(user)
}

// ValidateNewUser is ValidateUser plus the rule that creates carry no id.
func ValidateNewUser(user models.User) Violations {
	return append(presetID(user.ID), ValidateUser(user)...)
}

func presetID(id int64) Violations {
	if id == 0 {
		return nil
	}
	return Violations{{Field: "id", Tag: "unset", Message: "id must not be set on create"}}
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes.
func ValidateStruct(s interface{}) Violations {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Violations{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Violations, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = Violation{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translateError(fe),
		}
	}
	return out
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":     "%s is required",
	"email":        "%s must be a valid email address",
	"notblank":     "%s must not be blank",
	"nowhitespace": "%s must not contain whitespace",
	"releasedate":  "%s must be after 1895-12-28",
	"notfuture":    "%s must not be in the future",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"gt":           "%s must be greater than %s",
	"gte":          "%s must be greater than or equal to %s",
	"containsrune": "%s must contain %q",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	if tag == "max" {
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateNoWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

func validateReleaseDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && dateOf(t).After(models.CinemaBirthday)
}

func validateNotFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && !dateOf(t).After(dateOf(now()))
}

// dateOf drops the time of day, keeping the calendar date in t's zone.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
