package models

import (
	"errors"
	"math"
	"time"

	"github.com/lib/pq"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// PaymentMethod records how a booking was settled
type PaymentMethod string

const (
	PaymentMethodPaystack PaymentMethod = "paystack"
	PaymentMethodManual   PaymentMethod = "manual"
)

// Passenger holds the identity details captured for each traveller.
// The first passenger in a booking is the lead passenger and must carry
// contact details.
type Passenger struct {
	Title        string `json:"title,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	DocumentType string `json:"documentType,omitempty"`
	IDNumber     string `json:"idNumber,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	Gender       string `json:"gender,omitempty"`
}

// BookedSegment is the origin/destination pair of a leg the customer
// actually purchased, snapshotted at booking time.
type BookedSegment struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// BookedAddOn is a priced add-on snapshot taken at booking time so later
// catalogue edits cannot change what the customer owes.
type BookedAddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Booking represents a reservation against a trip. Pricing fields are
// denormalized snapshots; the live catalogue is never consulted after
// booking creation.
type Booking struct {
	ID             string            `json:"id" db:"id"`
	BookingID      string            `json:"bookingId" db:"booking_id"`
	TripID         string            `json:"tripId" db:"trip_id"`
	RouteName      string            `json:"routeName" db:"route_name"`
	DepartureTime  time.Time         `json:"departureTime" db:"departure_time"`
	Passengers     PassengerList     `json:"passengers" db:"passengers"`
	BookedSegments BookedSegmentList `json:"bookedSegments" db:"booked_segments"`
	SeatNumbers    pq.StringArray    `json:"seatNumbers" db:"seat_numbers"`
	BookedAddOns   BookedAddOnList   `json:"bookedAddOns" db:"booked_add_ons"`
	TotalCost      float64           `json:"totalCost" db:"total_cost"`
	PaymentStatus  PaymentStatus     `json:"paymentStatus" db:"payment_status"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod" db:"payment_method"`
	PaymentRef     *string           `json:"paymentRef,omitempty" db:"payment_ref"`
	MarkedAsPaidBy *string           `json:"markedAsPaidBy,omitempty" db:"marked_as_paid_by"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}

// LeadPassenger returns the first passenger, who carries the booking's
// contact details
func (b *Booking) LeadPassenger() *Passenger {
	if len(b.Passengers) == 0 {
		return nil
	}
	return &b.Passengers[0]
}

// ExpectedAmountMinor converts the booked total into the gateway's minor
// currency unit. Settlement amounts must match this exactly.
func (b *Booking) ExpectedAmountMinor() int64 {
	return int64(math.Round(b.TotalCost * 100))
}

// IsPending reports whether the booking still awaits settlement
func (b *Booking) IsPending() bool {
	return b.PaymentStatus == PaymentStatusPending
}

// CreateBookingRequest represents the public booking intake payload.
// TotalCost is the client's quoted price and is verified server-side
// before any money moves.
type CreateBookingRequest struct {
	TripID         string          `json:"tripId" binding:"required"`
	Passengers     []Passenger     `json:"passengers" binding:"required"`
	BookedSegments []BookedSegment `json:"bookedSegments" binding:"required"`
	SeatNumbers    []string        `json:"seatNumbers"`
	AddOnIDs       []string        `json:"addOnIds"`
	TotalCost      float64         `json:"totalCost" binding:"required"`
}

// Validate validates the booking intake payload
func (r *CreateBookingRequest) Validate() error {
	if len(r.Passengers) == 0 {
		return errors.New("at least one passenger is required")
	}
	lead := r.Passengers[0]
	if lead.FirstName == "" || lead.LastName == "" {
		return errors.New("lead passenger requires a first and last name")
	}
	if lead.Email == "" {
		return errors.New("lead passenger email is required")
	}
	if lead.PhoneNumber == "" {
		return errors.New("lead passenger phone number is required")
	}
	if len(r.BookedSegments) == 0 {
		return errors.New("at least one booked segment is required")
	}
	if len(r.SeatNumbers) != 0 && len(r.SeatNumbers) != len(r.Passengers) {
		return errors.New("seat selection must cover every passenger or be omitted")
	}
	return nil
}

// FindBookingRequest is the public ticket-lookup payload. Identifier may be
// a booking reference, a lead passenger email or a phone number.
type FindBookingRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// UpdateBookingStatusRequest is the admin payload for manual settlement or
// cancellation of a booking.
type UpdateBookingStatusRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" binding:"required"`
}
