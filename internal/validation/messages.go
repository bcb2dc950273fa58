// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package validation

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

func message(submission any, fieldErr validator.FieldError) string {
	label := fieldLabel(submission, fieldErr.StructField())
	switch fieldErr.Tag() {
	case "notblank", "notblank_without", "required", "required_without":
		return fmt.Sprintf("%s is required.", label)
	case "contactemail":
		return "Please enter a valid email address."
	case "intlphone":
		return "Please enter a valid phone number including the country code, e.g. +250788123456."
	case "count":
		return fmt.Sprintf("%s must be at least %s.", label, fieldErr.Param())
	case "positive":
		return fmt.Sprintf("%s must be a number greater than 0.", label)
	case "min", "minlen":
		return fmt.Sprintf("%s must be at least %s characters long.", label, fieldErr.Param())
	case "isodate":
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD).", label)
	case "after":
		return fmt.Sprintf("%s must be after the %s.", label, lower(fieldLabel(submission, fieldErr.Param())))
	case "notbefore":
		return fmt.Sprintf("%s cannot be before the %s.", label, lower(fieldLabel(submission, fieldErr.Param())))
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// fieldLabel returns the "label" tag of the named struct field, falling back
// to the field name.
func fieldLabel(submission any, name string) string {
	typ := reflect.TypeOf(submission)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return name
	}
	field, ok := typ.FieldByName(name)
	if !ok {
		return name
	}
	if label := field.Tag.Get("label"); label != "" {
		return label
	}
	return name
}

func lower(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}
