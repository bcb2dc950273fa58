// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var ErrUnknownField = errors.New("unknown form field")

// Input describes how a submission field is presented on an HTML form.
type Input struct {
	Key      string
	Label    string
	Type     string
	Required bool
}

var numberType = reflect.TypeFor[Number]()

// Inputs returns the input descriptions of all fields of a submission in
// declaration order.
func Inputs(sub Submission) []Input {
	rt := reflect.TypeOf(sub)
	if rt == nil {
		return nil
	}
	rt = rt.Elem()

	inputs := make([]Input, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		key := field.Tag.Get("form")
		if key == "" || key == "-" {
			continue
		}
		rules := field.Tag.Get("validate")
		inputs = append(inputs, Input{
			Key:      key,
			Label:    field.Tag.Get("label"),
			Type:     inputType(field, rules),
			Required: rules == "notblank" || strings.HasPrefix(rules, "notblank,"),
		})
	}
	return inputs
}

// Set assigns the raw form value to the field with the given form key.
func Set(sub Submission, key, value string) error {
	rv := reflect.ValueOf(sub)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	rv = rv.Elem()
	for i := 0; i < rv.NumField(); i++ {
		if rv.Type().Field(i).Tag.Get("form") != key {
			continue
		}
		field := rv.Field(i)
		switch field.Kind() {
		case reflect.Bool:
			checked := value != ""
			if parsed, err := strconv.ParseBool(value); err == nil {
				checked = parsed
			}
			field.SetBool(checked)
		case reflect.String:
			field.SetString(value)
		default:
			return fmt.Errorf("unsupported field type %s for %s", field.Kind(), key)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, key)
}

func inputType(field reflect.StructField, rules string) string {
	if tag := field.Tag.Get("input"); tag != "" {
		return tag
	}
	switch {
	case field.Type.Kind() == reflect.Bool:
		return "checkbox"
	case field.Type == numberType:
		return "number"
	case strings.Contains(rules, "contactemail"):
		return "email"
	case strings.Contains(rules, "intlphone"):
		return "tel"
	case strings.Contains(rules, "isodate"):
		return "date"
	default:
		return "text"
	}
}
