// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forms

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrUnknownKind = errors.New("unknown form kind")

// Kind identifies one of the submission flows of the website
type Kind string

const (
	KindContact            Kind = "contact"
	KindTripPlan           Kind = "trip-plan"
	KindTourBooking        Kind = "tour-booking"
	KindTourQuote          Kind = "tour-quote"
	KindCarRental          Kind = "car-rental"
	KindAccommodationQuote Kind = "accommodation-quote"
	KindEventQuote         Kind = "event-quote"
)

var kinds = []Kind{
	KindContact,
	KindTripPlan,
	KindTourBooking,
	KindTourQuote,
	KindCarRental,
	KindAccommodationQuote,
	KindEventQuote,
}

var labels = map[Kind]string{
	KindContact:            "Contact Form",
	KindTripPlan:           "Trip Planning Request",
	KindTourBooking:        "Tour Booking",
	KindTourQuote:          "Tour Quote Request",
	KindCarRental:          "Car Rental Booking",
	KindAccommodationQuote: "Accommodation Quote Request",
	KindEventQuote:         "Event Quote Request",
}

// Label returns the form type label that is used in email subjects and copy.
func (k Kind) Label() string {
	if label, ok := labels[k]; ok {
		return label
	}
	return string(k)
}

// Kinds returns all known form kinds in a stable order.
func Kinds() []Kind {
	return append([]Kind{}, kinds...)
}

// Contact holds the submitter information every form carries.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Field is a single key/value pair of a submission record.
type Field struct {
	Key   string
	Value string
}

// Submission is the typed record of one form submission attempt.
type Submission interface {
	Kind() Kind
	Contact() Contact
	// Details returns every field except the contact fields, in declaration
	// order. Empty optional fields are not part of the record.
	Details() []Field
	Reset()
}

// EntityRef is implemented by submissions that refer to a catalog entity.
type EntityRef interface {
	Entity() (kind, id string)
	SetEntityName(name string)
}

// New returns an empty submission for the given form kind.
func New(kind Kind) (Submission, error) {
	switch kind {
	case KindContact:
		return new(ContactForm), nil
	case KindTripPlan:
		return new(TripPlan), nil
	case KindTourBooking:
		return new(TourBooking), nil
	case KindTourQuote:
		return new(TourQuote), nil
	case KindCarRental:
		return new(CarRental), nil
	case KindAccommodationQuote:
		return new(AccommodationQuote), nil
	case KindEventQuote:
		return new(EventQuote), nil
	default:
		return nil, ErrUnknownKind
	}
}

// Number is a numeric form value. It accepts JSON numbers as well as strings,
// since HTML inputs always transmit strings.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Number(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f.String())
	return nil
}

func (n Number) Int() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
}

func (n Number) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
}

type record []Field

func (r *record) add(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	*r = append(*r, Field{Key: key, Value: value})
}

func (r *record) addBool(key string, value bool) {
	*r = append(*r, Field{Key: key, Value: strconv.FormatBool(value)})
}
