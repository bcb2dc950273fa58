// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forms

// Catalog entity kinds referenced by booking forms
const (
	EntityTour          = "tour"
	EntityCar           = "car"
	EntityAccommodation = "accommodation"
	EntityEvent         = "event"
)

// ContactForm is the general contact form of the website.
type ContactForm struct {
	Name    string `json:"name" form:"name" label:"Full name" validate:"notblank"`
	Email   string `json:"email" form:"email" label:"Email address" validate:"notblank,contactemail"`
	Phone   string `json:"phone" form:"phone" label:"Phone number" validate:"omitempty,intlphone"`
	Subject string `json:"subject" form:"subject" label:"Subject"`
	Message string `json:"message" form:"message" input:"textarea" label:"Message" validate:"notblank,minlen=10"`
}

func (f *ContactForm) Kind() Kind { return KindContact }

func (f *ContactForm) Contact() Contact {
	return Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

func (f *ContactForm) Details() []Field {
	var r record
	r.add("subject", f.Subject)
	r.add("message", f.Message)
	return r
}

func (f *ContactForm) Reset() { *f = ContactForm{} }

// TripPlan is the "plan your trip" request form.
type TripPlan struct {
	Name              string `json:"name" form:"name" label:"Full name" validate:"notblank"`
	Email             string `json:"email" form:"email" label:"Email address" validate:"notblank,contactemail"`
	Phone             string `json:"phone" form:"phone" label:"Phone number" validate:"notblank,intlphone"`
	Country           string `json:"country" form:"country" label:"Country of residence"`
	ArrivalDate       string `json:"arrival_date" form:"arrival_date" label:"Arrival date" validate:"notblank,isodate"`
	DepartureDate     string `json:"departure_date" form:"departure_date" label:"Departure date" validate:"notblank,isodate,notbefore=ArrivalDate"`
	FlexibleDates     bool   `json:"flexible_dates" form:"flexible_dates" label:"Flexible dates"`
	Travelers         Number `json:"travelers" form:"travelers" label:"Number of travelers" validate:"notblank,count=1"`
	Budget            Number `json:"budget" form:"budget" label:"Budget (USD)" validate:"notblank,positive"`
	AccommodationType string `json:"accommodation_type" form:"accommodation_type" label:"Accommodation type"`
	Interests         string `json:"interests" form:"interests" input:"textarea" label:"Interests"`
	TripDetails       string `json:"details" form:"details" input:"textarea" label:"Trip details" validate:"notblank,minlen=10"`
}

func (f *TripPlan) Kind() Kind { return KindTripPlan }

func (f *TripPlan) Contact() Contact {
	return Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

func (f *TripPlan) Details() []Field {
	var r record
	r.add("country", f.Country)
	r.add("arrival_date", f.ArrivalDate)
	r.add("departure_date", f.DepartureDate)
	r.addBool("flexible_dates", f.FlexibleDates)
	r.add("travelers", string(f.Travelers))
	r.add("budget", string(f.Budget))
	r.add("accommodation_type", f.AccommodationType)
	r.add("interests", f.Interests)
	r.add("details", f.TripDetails)
	return r
}

func (f *TripPlan) Reset() { *f = TripPlan{} }

// TourBooking is the booking request for a specific tour.
type TourBooking struct {
	TourID          string `json:"tour_id" form:"tour_id" label:"Tour"`
	TourName        string `json:"tour_name" form:"tour_name" label:"Tour" validate:"notblank_without=TourID"`
	Name            string `json:"name" form:"name" label:"Full name" validate:"notblank"`
	Email           string `json:"email" form:"email" label:"Email address" validate:"notblank,contactemail"`
	Phone           string `json:"phone" form:"phone" label:"Phone number" validate:"notblank,intlphone"`
	TravelDate      string `json:"travel_date" form:"travel_date" label:"Travel date" validate:"notblank,isodate"`
	People          Number `json:"people" form:"people" label:"Number of people" validate:"notblank,count=1"`
	SpecialRequests string `json:"special_requests" form:"special_requests" input:"textarea" label:"Special requests"`
}

func (f *TourBooking) Kind() Kind { return KindTourBooking }

func (f *TourBooking) Contact() Contact {
	return Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

func (f *TourBooking) Details() []Field {
	var r record
	r.add("tour_id", f.TourID)
	r.add("tour_name", f.TourName)
	r.add("travel_date", f.TravelDate)
	r.add("people", string(f.People))
	r.add("special_requests", f.SpecialRequests)
	return r
}

func (f *TourBooking) Reset() { *f = TourBooking{} }

func (f *TourBooking) Entity() (string, string) { return EntityTour, f.TourID }

func (f *TourBooking) SetEntityName(name string) { f.TourName = name }

// TourQuote asks for a price quote for a tour.
type TourQuote struct {
	TourID        string `json:"tour_id" form:"tour_id" label:"Tour"`
	TourName      string `json:"tour_name" form:"tour_name" label:"Tour" validate:"notblank_without=TourID"`
	Name          string `json:"name" form:"name" label:"Full name" validate:"notblank"`
	Email         string `json:"email" form:"email" label:"Email address" validate:"notblank,contactemail"`
	Phone         string `json:"phone" form:"phone" label:"Phone number" validate:"notblank,intlphone"`
	PreferredDate string `json:"preferred_date" form:"preferred_date" label:"Preferred date" validate:"notblank,isodate"`
	People        Number `json:"people" form:"people" label:"Number of people" validate:"notblank,count=1"`
	Budget        Number `json:"budget" form:"budget" label:"Budget (USD)" validate:"omitempty,positive"`
	Message       string `json:"message" form:"message" input:"textarea" label:"Message"`
}

func (f *TourQuote) Kind() Kind { return KindTourQuote }

func (f *TourQuote) Contact() Contact {
	return Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

func (f *TourQuote) Details() []Field {
	var r record
	r.add("tour_id", f.TourID)
	r.add("tour_name", f.TourName)
	r.add("preferred_date", f.PreferredDate)
	r.add("people", string(f.People))
	r.add("budget", string(f.Budget))
	r.add("message", f.Message)
	return r
}

func (f *TourQuote) Reset() { *f = TourQuote{} }

func (f *TourQuote) Entity() (string, string) { return EntityTour, f.TourID }

func (f *TourQuote) SetEntityName(name string) { f.TourName = name }

// CarRental is the booking request for a rental car.
type CarRental struct {
	CarID          string `json:"car_id" form:"car_id" label:"Car"`
	CarName        string `json:"car_name" form:"car_name" label:"Car" validate:"notblank_without=CarID"`
	Name           string `json:"name" form:"name" label:"Full name" validate:"notblank"`
	Email          string `json:"email" form:"email" label:"Email address" validate:"notblank,contactemail"`
	Phone          string `json:"phone" form:"phone" label:"Phone number" validate:"notblank,intlphone"`
	PickupDate     string `json:"pickup_date" form:"pickup_date" label:"Pickup date" validate:"notblank,isodate"`
	ReturnDate     string `json:"return_date" form:"return_date" label:"Return date" validate:"notblank,isodate,notbefore=PickupDate"`
	PickupLocation string `json:"pickup_location" form:"pickup_location" label:"Pickup location" validate:"notblank"`
	WithDriver     bool   `json:"with_driver" form:"with_driver" label:"With driver"`
	Message        string `json:"message" form:"message" input:"textarea" label:"Message"`
}

func (f *CarRental) Kind() Kind { return KindCarRental }

func (f *CarRental) Contact() Contact {
	return Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

func (f *CarRental) Details() []Field {
	var r record
	r.add("car_id", f.CarID)
	r.add("car_name", f.CarName)
	r.add("pickup_date", f.PickupDate)
	r.add("return_date", f.ReturnDate)
	r.add("pickup_location", f.PickupLocation)
	r.addBool("with_driver", f.WithDriver)
	r.add("message", f.Message)
	return r
}

func (f *CarRental) Reset() { *f = CarRental{} }

func (f *CarRental) Entity() (string, string) { return EntityCar, f.CarID }

func (f *CarRental) SetEntityName(name string) { f.CarName = name }

// AccommodationQuote asks for availability and price of an accommodation.
type AccommodationQuote struct {
	AccommodationID   string `json:"accommodation_id" form:"accommodation_id" label:"Accommodation"`
	AccommodationName string `json:"accommodation_name" form:"accommodation_name" label:"Accommodation" validate:"notblank_without=AccommodationID"`
	Name              string `json:"name" form:"name" label:"Full name" validate:"notblank"`
	Email             string `json:"email" form:"email" label:"Email address" validate:"notblank,contactemail"`
	Phone             string `json:"phone" form:"phone" label:"Phone number" validate:"notblank,intlphone"`
	CheckIn           string `json:"check_in" form:"check_in" label:"Check-in date" validate:"notblank,isodate"`
	CheckOut          string `json:"check_out" form:"check_out" label:"Check-out date" validate:"notblank,isodate,after=CheckIn"`
	Guests            Number `json:"guests" form:"guests" label:"Number of guests" validate:"notblank,count=1"`
	Rooms             Number `json:"rooms" form:"rooms" label:"Number of rooms" validate:"omitempty,count=1"`
	RoomType          string `json:"room_type" form:"room_type" label:"Room type"`
	SpecialRequests   string `json:"special_requests" form:"special_requests" input:"textarea" label:"Special requests"`
}

func (f *AccommodationQuote) Kind() Kind { return KindAccommodationQuote }

func (f *AccommodationQuote) Contact() Contact {
	return Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

func (f *AccommodationQuote) Details() []Field {
	var r record
	r.add("accommodation_id", f.AccommodationID)
	r.add("accommodation_name", f.AccommodationName)
	r.add("check_in", f.CheckIn)
	r.add("check_out", f.CheckOut)
	r.add("guests", string(f.Guests))
	r.add("rooms", string(f.Rooms))
	r.add("room_type", f.RoomType)
	r.add("special_requests", f.SpecialRequests)
	return r
}

func (f *AccommodationQuote) Reset() { *f = AccommodationQuote{} }

func (f *AccommodationQuote) Entity() (string, string) {
	return EntityAccommodation, f.AccommodationID
}

func (f *AccommodationQuote) SetEntityName(name string) { f.AccommodationName = name }

// EventQuote asks for a quote to attend or organize an event.
type EventQuote struct {
	EventID      string `json:"event_id" form:"event_id" label:"Event"`
	EventName    string `json:"event_name" form:"event_name" label:"Event" validate:"notblank_without=EventID"`
	Name         string `json:"name" form:"name" label:"Full name" validate:"notblank"`
	Email        string `json:"email" form:"email" label:"Email address" validate:"notblank,contactemail"`
	Phone        string `json:"phone" form:"phone" label:"Phone number" validate:"notblank,intlphone"`
	EventDate    string `json:"event_date" form:"event_date" label:"Event date" validate:"notblank,isodate"`
	Attendees    Number `json:"attendees" form:"attendees" label:"Number of attendees" validate:"notblank,count=1"`
	Budget       Number `json:"budget" form:"budget" label:"Budget (USD)" validate:"notblank,positive"`
	EventDetails string `json:"details" form:"details" input:"textarea" label:"Event details" validate:"notblank,minlen=10"`
}

func (f *EventQuote) Kind() Kind { return KindEventQuote }

func (f *EventQuote) Contact() Contact {
	return Contact{Name: f.Name, Email: f.Email, Phone: f.Phone}
}

func (f *EventQuote) Details() []Field {
	var r record
	r.add("event_id", f.EventID)
	r.add("event_name", f.EventName)
	r.add("event_date", f.EventDate)
	r.add("attendees", string(f.Attendees))
	r.add("budget", string(f.Budget))
	r.add("details", f.EventDetails)
	return r
}

func (f *EventQuote) Reset() { *f = EventQuote{} }

func (f *EventQuote) Entity() (string, string) { return EntityEvent, f.EventID }

func (f *EventQuote) SetEntityName(name string) { f.EventName = name }
