package services

import "errors"

// Sentinel errors surfaced by the booking and payment services. Handlers
// map these onto HTTP status codes.
var (
	ErrTripNotFound         = errors.New("trip not found")
	ErrTripGone             = errors.New("trip is no longer bookable")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidSegments      = errors.New("booked segments do not match the route")
	ErrPriceMismatch        = errors.New("quoted total does not match the server-computed price")
	ErrInvalidTotal         = errors.New("computed total must be positive")
	ErrInsufficientCapacity = errors.New("not enough seats left on this trip")
	ErrSeatTaken            = errors.New("one or more selected seats are already booked")
	ErrAmountMismatch       = errors.New("settled amount does not match the booked total")
	ErrInvalidSignature     = errors.New("webhook signature verification failed")
	ErrInvalidStatus        = errors.New("booking is not in a state that allows this transition")
	ErrPaymentGateway       = errors.New("payment provider request failed")
	ErrTripHasBookings      = errors.New("trip has booked seats and cannot be structurally modified")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
