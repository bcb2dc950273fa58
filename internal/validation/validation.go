// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package validation checks form submissions against the rule table that is
// declared in the "validate" struct tags of the submission types.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout of all date fields of a submission
const DateLayout = "2006-01-02"

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+\d{1,4}\d{6,14}$`)

	phoneCleaner = strings.NewReplacer(" ", "", "-", "")

	ErrValidationFailed = errors.New("submission validation failed")
)

var validate = newValidator()

// Errors maps the key of each invalid field to a human-readable message. An
// empty map means the submission is valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Err returns nil for a valid result or an error that lists every invalid
// field in key order.
func (e Errors) Err() error {
	if e.Valid() {
		return nil
	}
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	errList := []error{ErrValidationFailed}
	for _, key := range keys {
		errList = append(errList, fmt.Errorf("%s: %s", key, e[key]))
	}
	return errors.Join(errList...)
}

// Validate runs all rules of the given submission and returns a fresh Errors
// map. Only the first failing rule of a field is reported.
func Validate(submission any) Errors {
	errs := make(Errors)
	err := validate.Struct(submission)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs[""] = err.Error()
		return errs
	}
	for _, fieldErr := range fieldErrs {
		if _, ok := errs[fieldErr.Field()]; ok {
			continue
		}
		errs[fieldErr.Field()] = message(submission, fieldErr)
	}
	return errs
}

// IsEmail reports whether s has the basic text@text.text shape.
func IsEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// IsPhone reports whether s is an international phone number: a leading "+",
// a 1-4 digit country code and 6-14 subscriber digits. Spaces and hyphens are
// ignored.
func IsPhone(s string) bool {
	return phoneRegex.MatchString(phoneCleaner.Replace(strings.TrimSpace(s)))
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"notblank":         notBlank,
		"notblank_without": notBlankWithout,
		"minlen":           minLen,
		"contactemail":     func(fl validator.FieldLevel) bool { return IsEmail(fl.Field().String()) },
		"intlphone":        func(fl validator.FieldLevel) bool { return IsPhone(fl.Field().String()) },
		"count":            count,
		"positive":         positive,
		"isodate":          isoDate,
		"after":            dateOrder(true),
		"notbefore":        dateOrder(false),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register validation rule %q: %s", tag, err))
		}
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	default:
		return !field.IsZero()
	}
}

// notBlankWithout requires a non-blank value unless the sibling field named by
// the tag parameter is non-blank.
func notBlankWithout(fl validator.FieldLevel) bool {
	if strings.TrimSpace(fl.Field().String()) != "" {
		return true
	}
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return false
	}
	other := parent.FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(other.String()) != ""
}

// minLen counts the characters of the trimmed value, as stored in the record.
func minLen(fl validator.FieldLevel) bool {
	minimum, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minimum
}

func count(fl validator.FieldLevel) bool {
	minimum, err := strconv.ParseInt(fl.Param(), 10, 64)
	if err != nil {
		return false
	}
	value, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 64)
	if err != nil {
		return false
	}
	return value >= minimum
}

func positive(fl validator.FieldLevel) bool {
	value, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return false
	}
	return value > 0
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// dateOrder compares the date field against the sibling field named by the
// tag parameter. Unparsable dates are left to the isodate rule.
func dateOrder(strict bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		end, err := time.Parse(DateLayout, strings.TrimSpace(fl.Field().String()))
		if err != nil {
			return true
		}
		parent := reflect.Indirect(fl.Parent())
		if parent.Kind() != reflect.Struct {
			return false
		}
		other := parent.FieldByName(fl.Param())
		if !other.IsValid() || other.Kind() != reflect.String {
			return false
		}
		start, err := time.Parse(DateLayout, strings.TrimSpace(other.String()))
		if err != nil {
			return true
		}
		if strict {
			return end.After(start)
		}
		return !end.Before(start)
	}
}
