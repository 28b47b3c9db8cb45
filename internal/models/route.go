package models

import (
	"errors"
	"time"
)

// SegmentMode represents the transport mode of a route segment
type SegmentMode string

const (
	SegmentModeRoad SegmentMode = "road"
	SegmentModeAir  SegmentMode = "air"
)

// Segment is one directed leg of a route
type Segment struct {
	Origin           string      `json:"origin"`
	Destination      string      `json:"destination"`
	Cost             float64     `json:"cost"`
	Mode             SegmentMode `json:"mode"`
	DurationEstimate string      `json:"durationEstimate,omitempty"`
}

// Route represents a named, ordered list of segments
type Route struct {
	ID         string      `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Segments   SegmentList `json:"segments" db:"segments"`
	IsFeatured bool        `json:"isFeatured" db:"is_featured"`
	ImageURL   string      `json:"imageUrl" db:"image_url"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
}

// CreateRouteRequest represents the request to create or replace a route
type CreateRouteRequest struct {
	Name       string    `json:"name" binding:"required"`
	Segments   []Segment `json:"segments" binding:"required"`
	IsFeatured bool      `json:"isFeatured"`
	ImageURL   string    `json:"imageUrl" binding:"required"`
}

// Validate validates the create route request
func (r *CreateRouteRequest) Validate() error {
	if len(r.Segments) == 0 {
		return errors.New("route must have at least one segment")
	}
	for _, seg := range r.Segments {
		if seg.Origin == "" || seg.Destination == "" {
			return errors.New("every segment requires an origin and a destination")
		}
		if seg.Cost < 0 {
			return errors.New("segment cost cannot be negative")
		}
		if seg.Mode != SegmentModeRoad && seg.Mode != SegmentModeAir {
			return errors.New("segment mode must be 'road' or 'air'")
		}
	}
	return nil
}
