package models

import (
	"errors"
	"time"
)

// AddOnPricingType determines how an add-on contributes to a booking total
type AddOnPricingType string

const (
	AddOnPerPassenger AddOnPricingType = "per-passenger"
	AddOnPerBooking   AddOnPricingType = "per-booking"
)

// AddOn represents an optional extra offered during booking
type AddOn struct {
	ID          string           `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	Price       float64          `json:"price" db:"price"`
	PricingType AddOnPricingType `json:"pricingType" db:"pricing_type"`
	IsActive    bool             `json:"isActive" db:"is_active"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// CreateAddOnRequest represents the request to create or update an add-on
type CreateAddOnRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Price       float64          `json:"price" binding:"required"`
	PricingType AddOnPricingType `json:"pricingType" binding:"required"`
	IsActive    *bool            `json:"isActive"`
}

// Validate validates the create add-on request
func (r *CreateAddOnRequest) Validate() error {
	if r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if r.PricingType != AddOnPerPassenger && r.PricingType != AddOnPerBooking {
		return errors.New("pricingType must be 'per-passenger' or 'per-booking'")
	}
	return nil
}
