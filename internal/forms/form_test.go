// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forms

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("every kind returns an empty submission", func(t *testing.T) {
		for _, kind := range Kinds() {
			t.Run(string(kind), func(t *testing.T) {
				sub, err := New(kind)
				if err != nil {
					t.Fatalf("failed to create submission: %s", err)
				}
				if sub.Kind() != kind {
					t.Errorf("expected kind to be %s, got %s", kind, sub.Kind())
				}
				if sub.Contact() != (Contact{}) {
					t.Errorf("expected empty contact, got %+v", sub.Contact())
				}
			})
		}
	})
	t.Run("unknown kind fails", func(t *testing.T) {
		_, err := New("newsletter")
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("expected error to be %s, got %s", ErrUnknownKind, err)
		}
	})
}

func TestKind_Label(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindContact, "Contact Form"},
		{KindTourBooking, "Tour Booking"},
		{KindCarRental, "Car Rental Booking"},
		{"custom", "custom"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Label(); got != tt.want {
				t.Errorf("expected label to be %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSubmission_Details(t *testing.T) {
	t.Run("details keep declaration order and skip empty optionals", func(t *testing.T) {
		sub := &TourBooking{
			TourName:   "Gorilla Trekking",
			Name:       "Jane Doe",
			Email:      "jane@x.com",
			Phone:      "+250788123456",
			TravelDate: "2026-11-02",
			People:     "2",
		}
		want := []Field{
			{"tour_name", "Gorilla Trekking"},
			{"travel_date", "2026-11-02"},
			{"people", "2"},
		}
		got := sub.Details()
		if len(got) != len(want) {
			t.Fatalf("expected %d fields, got %d: %+v", len(want), len(got), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("expected field %d to be %+v, got %+v", i, want[i], got[i])
			}
		}
	})
	t.Run("free-text details are recorded under the details key", func(t *testing.T) {
		tests := []struct {
			name string
			sub  Submission
		}{
			{"trip plan", new(TripPlan)},
			{"event quote", new(EventQuote)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				payload := `{"name":"Jane Doe","details":"Gorillas and Lake Kivu"}`
				if err := json.Unmarshal([]byte(payload), tt.sub); err != nil {
					t.Fatalf("failed to decode submission: %s", err)
				}
				if err := Set(tt.sub, "details", "  Gorillas, Lake Kivu and Kigali "); err != nil {
					t.Fatalf("failed to set details: %s", err)
				}
				fields := tt.sub.Details()
				last := fields[len(fields)-1]
				if last.Key != "details" || last.Value != "Gorillas, Lake Kivu and Kigali" {
					t.Errorf("expected trimmed details as last field, got %+v", last)
				}
			})
		}
	})
	t.Run("boolean fields are always part of the record", func(t *testing.T) {
		sub := &CarRental{CarName: "Land Cruiser"}
		found := false
		for _, field := range sub.Details() {
			if field.Key == "with_driver" {
				found = true
				if field.Value != "false" {
					t.Errorf("expected with_driver to be false, got %s", field.Value)
				}
			}
		}
		if !found {
			t.Error("expected with_driver to be part of the record")
		}
	})
}

func TestSubmission_Reset(t *testing.T) {
	sub := &ContactForm{Name: "Jane Doe", Email: "jane@x.com", Message: "Hello there"}
	sub.Reset()
	if *sub != (ContactForm{}) {
		t.Errorf("expected submission to be empty after reset, got %+v", sub)
	}
}

func TestEntityRef(t *testing.T) {
	tests := []struct {
		name   string
		sub    Submission
		entity string
	}{
		{"tour booking", &TourBooking{TourID: "1"}, EntityTour},
		{"tour quote", &TourQuote{TourID: "1"}, EntityTour},
		{"car rental", &CarRental{CarID: "1"}, EntityCar},
		{"accommodation quote", &AccommodationQuote{AccommodationID: "1"}, EntityAccommodation},
		{"event quote", &EventQuote{EventID: "1"}, EntityEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := tt.sub.(EntityRef)
			if !ok {
				t.Fatal("expected submission to implement EntityRef")
			}
			kind, id := ref.Entity()
			if kind != tt.entity {
				t.Errorf("expected entity kind %s, got %s", tt.entity, kind)
			}
			if id != "1" {
				t.Errorf("expected entity id 1, got %s", id)
			}
			ref.SetEntityName("Resolved")
			if tt.sub.Details()[1].Value != "Resolved" {
				t.Errorf("expected entity name to be set, got %+v", tt.sub.Details())
			}
		})
	}
	if _, ok := Submission(new(ContactForm)).(EntityRef); ok {
		t.Error("contact form is not expected to reference an entity")
	}
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Number
		fails bool
	}{
		{"number", `{"people": 3}`, "3", false},
		{"string", `{"people": "4"}`, "4", false},
		{"float", `{"people": 2.5}`, "2.5", false},
		{"null", `{"people": null}`, "", false},
		{"object", `{"people": {}}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub TourBooking
			err := json.Unmarshal([]byte(tt.input), &sub)
			if tt.fails {
				if err == nil {
					t.Fatal("expected unmarshal to fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to unmarshal: %s", err)
			}
			if sub.People != tt.want {
				t.Errorf("expected people to be %q, got %q", tt.want, sub.People)
			}
		})
	}
}
