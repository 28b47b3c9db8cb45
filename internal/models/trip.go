package models

import (
	"time"

	"github.com/lib/pq"
)

// TripStatus represents the lifecycle status of a trip
type TripStatus string

const (
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusDeparted  TripStatus = "departed"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip is a scheduled instance of a route bound to a vehicle and driver.
// BookedSeats is the single source of truth for seat occupancy; it is only
// ever appended to by the payment-confirmation path.
type Trip struct {
	ID            string         `json:"id" db:"id"`
	RouteID       string         `json:"routeId" db:"route_id"`
	VehicleID     string         `json:"vehicleId" db:"vehicle_id"`
	DriverID      string         `json:"driverId" db:"driver_id"`
	DepartureTime time.Time      `json:"departureTime" db:"departure_time"`
	BookedSeats   pq.StringArray `json:"bookedSeats" db:"booked_seats"`
	Status        TripStatus     `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

// IsBookable reports whether the trip can still accept new bookings
func (t *Trip) IsBookable(now time.Time) bool {
	return t.Status == TripStatusScheduled && t.DepartureTime.After(now)
}

// TripDetails is a trip joined with the reference data needed by the
// search, booking and ticketing flows.
type TripDetails struct {
	Trip
	RouteName        string         `json:"routeName" db:"route_name"`
	RouteSegments    SegmentList    `json:"routeSegments" db:"route_segments"`
	RouteImageURL    string         `json:"routeImageUrl" db:"route_image_url"`
	VehicleName      string         `json:"vehicleName" db:"vehicle_name"`
	VehiclePlate     string         `json:"vehiclePlate" db:"vehicle_plate"`
	VehicleCapacity  int            `json:"vehicleCapacity" db:"vehicle_capacity"`
	VehicleAmenities pq.StringArray `json:"vehicleAmenities" db:"vehicle_amenities"`
	DriverFirstName  string         `json:"driverFirstName" db:"driver_first_name"`
	DriverLastName   string         `json:"driverLastName" db:"driver_last_name"`
}

// AvailableCapacity returns the number of passengers the trip can still take
func (t *TripDetails) AvailableCapacity() int {
	return t.VehicleCapacity - len(t.BookedSeats)
}

// CreateTripRequest represents the request to create a trip
type CreateTripRequest struct {
	RouteID       string     `json:"routeId" binding:"required"`
	VehicleID     string     `json:"vehicleId" binding:"required"`
	DriverID      string     `json:"driverId" binding:"required"`
	DepartureTime time.Time  `json:"departureTime" binding:"required"`
	Status        TripStatus `json:"status"`
}

// UpdateTripRequest represents the request to update a trip. Structural
// fields (route, vehicle, departure time) are rejected for trips that
// already carry booked seats.
type UpdateTripRequest struct {
	RouteID       string     `json:"routeId" binding:"required"`
	VehicleID     string     `json:"vehicleId" binding:"required"`
	DriverID      string     `json:"driverId" binding:"required"`
	DepartureTime time.Time  `json:"departureTime" binding:"required"`
	Status        TripStatus `json:"status" binding:"required"`
}

// ValidTripStatus reports whether s is a known trip status
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripStatusScheduled, TripStatusDeparted, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}
