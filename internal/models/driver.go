package models

import "time"

// Driver represents a driver assignable to trips
type Driver struct {
	ID            string    `json:"id" db:"id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	PhoneNumber   string    `json:"phoneNumber" db:"phone_number"`
	LicenseNumber string    `json:"licenseNumber" db:"license_number"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateDriverRequest represents the request to create or update a driver
type CreateDriverRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
}
