package models

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Vehicle represents a vehicle in the fleet. Capacity is the hard ceiling
// for simultaneous passengers on any trip using this vehicle.
type Vehicle struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	PlateNumber string         `json:"plateNumber" db:"plate_number"`
	Capacity    int            `json:"capacity" db:"capacity"`
	CarType     string         `json:"carType" db:"car_type"`
	Amenities   pq.StringArray `json:"amenities" db:"amenities"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// CreateVehicleRequest represents the request to create or update a vehicle
type CreateVehicleRequest struct {
	Name        string   `json:"name" binding:"required"`
	PlateNumber string   `json:"plateNumber" binding:"required"`
	Capacity    int      `json:"capacity" binding:"required"`
	CarType     string   `json:"carType"`
	Amenities   []string `json:"amenities"`
}

// Validate validates the create vehicle request
func (r *CreateVehicleRequest) Validate() error {
	if r.Capacity < 1 {
		return errors.New("capacity must be at least 1")
	}
	return nil
}
