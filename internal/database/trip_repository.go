package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// TripRepository handles database operations for the trips table
type TripRepository struct {
	db DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create creates a new trip
func (r *TripRepository) Create(trip *models.Trip) error {
	query := `
		INSERT INTO trips (id, route_id, vehicle_id, driver_id, departure_time, booked_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.Status == "" {
		trip.Status = models.TripStatusScheduled
	}
	if trip.BookedSeats == nil {
		trip.BookedSeats = []string{}
	}

	return r.db.QueryRow(
		query,
		trip.ID, trip.RouteID, trip.VehicleID, trip.DriverID,
		trip.DepartureTime, trip.BookedSeats, trip.Status,
	).Scan(&trip.CreatedAt, &trip.UpdatedAt)
}

// GetByID retrieves a trip by ID
func (r *TripRepository) GetByID(id string) (*models.Trip, error) {
	query := `
		SELECT id, route_id, vehicle_id, driver_id, departure_time,
			   booked_seats, status, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	var trip models.Trip
	if err := r.db.Get(&trip, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

const tripDetailsColumns = `
	t.id, t.route_id, t.vehicle_id, t.driver_id, t.departure_time,
	t.booked_seats, t.status, t.created_at, t.updated_at,
	r.name AS route_name, r.segments AS route_segments, r.image_url AS route_image_url,
	v.name AS vehicle_name, v.plate_number AS vehicle_plate,
	v.capacity AS vehicle_capacity, v.amenities AS vehicle_amenities,
	d.first_name AS driver_first_name, d.last_name AS driver_last_name
`

const tripDetailsJoins = `
	FROM trips t
	JOIN routes r ON r.id = t.route_id
	JOIN vehicles v ON v.id = t.vehicle_id
	JOIN drivers d ON d.id = t.driver_id
`

// GetDetails retrieves a trip joined with its route, vehicle and driver
func (r *TripRepository) GetDetails(id string) (*models.TripDetails, error) {
	query := `SELECT ` + tripDetailsColumns + tripDetailsJoins + ` WHERE t.id = $1`

	var details models.TripDetails
	if err := r.db.Get(&details, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &details, nil
}

// ListUpcoming retrieves scheduled trips departing at or after the cutoff
func (r *TripRepository) ListUpcoming(cutoff time.Time) ([]models.TripDetails, error) {
	query := `SELECT ` + tripDetailsColumns + tripDetailsJoins + `
		WHERE t.status = 'scheduled' AND t.departure_time >= $1
		ORDER BY t.departure_time`

	trips := []models.TripDetails{}
	if err := r.db.Select(&trips, query, cutoff); err != nil {
		return nil, err
	}
	return trips, nil
}

// List retrieves trips joined with reference data, newest departures first
func (r *TripRepository) List(limit, offset int) ([]models.TripDetails, error) {
	query := `SELECT ` + tripDetailsColumns + tripDetailsJoins + `
		ORDER BY t.departure_time DESC
		LIMIT $1 OFFSET $2`

	trips := []models.TripDetails{}
	if err := r.db.Select(&trips, query, limit, offset); err != nil {
		return nil, err
	}
	return trips, nil
}

// Count returns the total number of trips
func (r *TripRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM trips`)
	return count, err
}

// CountScheduled returns the number of trips still in scheduled status
func (r *TripRepository) CountScheduled() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM trips WHERE status = 'scheduled'`)
	return count, err
}

// Update replaces a trip's editable fields. Booked seats are never written
// here; they change only through CommitSeat.
func (r *TripRepository) Update(trip *models.Trip) error {
	query := `
		UPDATE trips
		SET route_id = $2, vehicle_id = $3, driver_id = $4,
			departure_time = $5, status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	return r.db.QueryRow(
		query,
		trip.ID, trip.RouteID, trip.VehicleID, trip.DriverID,
		trip.DepartureTime, trip.Status,
	).Scan(&trip.UpdatedAt)
}

// CommitSeat appends a seat to the trip's booked set if and only if it is
// not already present. Returns true when this call claimed the seat.
func (r *TripRepository) CommitSeat(tripID, seat string) (bool, error) {
	query := `
		UPDATE trips
		SET booked_seats = array_append(booked_seats, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(booked_seats))
	`

	result, err := r.db.Exec(query, tripID, seat)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Delete removes a trip
func (r *TripRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
