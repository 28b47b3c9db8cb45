package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// ErrDuplicateBookingID is returned when a generated booking reference
// collides with an existing one.
var ErrDuplicateBookingID = errors.New("booking reference already exists")

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, booking_id, trip_id, route_name, departure_time, passengers,
	booked_segments, seat_numbers, booked_add_ons, total_cost,
	payment_status, payment_method, payment_ref, marked_as_paid_by,
	created_at, updated_at
`

// Create inserts a new booking. A unique index on booking_id guards the
// customer-facing reference; collisions surface as ErrDuplicateBookingID.
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, booking_id, trip_id, route_name, departure_time, passengers,
			booked_segments, seat_numbers, booked_add_ons, total_cost,
			payment_status, payment_method, payment_ref
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.SeatNumbers == nil {
		booking.SeatNumbers = []string{}
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.BookingID, booking.TripID, booking.RouteName,
		booking.DepartureTime, booking.Passengers, booking.BookedSegments,
		booking.SeatNumbers, booking.BookedAddOns, booking.TotalCost,
		booking.PaymentStatus, booking.PaymentMethod, booking.PaymentRef,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateBookingID
	}
	return err
}

// GetByID retrieves a booking by internal ID
func (r *BookingRepository) GetByID(id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking models.Booking
	if err := r.db.Get(&booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByBookingID retrieves a booking by customer-facing reference
func (r *BookingRepository) GetByBookingID(bookingID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	var booking models.Booking
	if err := r.db.Get(&booking, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByPaymentRef retrieves a booking by payment provider reference
func (r *BookingRepository) GetByPaymentRef(reference string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_ref = $1`

	var booking models.Booking
	if err := r.db.Get(&booking, query, reference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// List retrieves bookings newest first with limit/offset pagination
func (r *BookingRepository) List(limit, offset int) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, limit, offset); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Count returns the total number of bookings
func (r *BookingRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings`)
	return count, err
}

// FindPaidByIdentifier retrieves paid bookings matching a booking reference,
// a lead passenger email or a phone number. Capped at limit rows.
func (r *BookingRepository) FindPaidByIdentifier(identifier string, limit int) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE payment_status = 'paid'
		  AND (
			booking_id = $1
			OR passengers->0->>'email' = $1
			OR passengers->0->>'phoneNumber' = $1
		  )
		ORDER BY created_at DESC
		LIMIT $2`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, identifier, limit); err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkPaidIfPending atomically flips a pending booking to paid. Returns true
// only for the caller that performed the transition, so settlement side
// effects run exactly once.
func (r *BookingRepository) MarkPaidIfPending(id string, method models.PaymentMethod) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', payment_method = $2, updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending'
	`

	result, err := r.db.Exec(query, id, method)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// MarkPaidManually flips a pending booking to paid and records the operator
// who settled it. Returns true only when the booking was still pending.
func (r *BookingRepository) MarkPaidManually(id, adminID string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', payment_method = 'manual',
			marked_as_paid_by = $2, updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending'
	`

	result, err := r.db.Exec(query, id, adminID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// MarkFailedIfPending flips a pending booking to failed. Bookings already
// settled are left untouched.
func (r *BookingRepository) MarkFailedIfPending(id string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'failed', updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending'
	`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Cancel marks a booking cancelled regardless of prior state
func (r *BookingRepository) Cancel(id string) error {
	query := `
		UPDATE bookings
		SET payment_status = 'cancelled', updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id)
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

// Delete removes a booking. Used to compensate when payment initialization
// fails after the pending row was created.
func (r *BookingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
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

// TotalRevenue sums the totals of all paid bookings
func (r *BookingRepository) TotalRevenue() (float64, error) {
	var revenue float64
	err := r.db.Get(&revenue,
		`SELECT COALESCE(SUM(total_cost), 0) FROM bookings WHERE payment_status = 'paid'`)
	return revenue, err
}

// CountToday returns the number of bookings created since local midnight
func (r *BookingRepository) CountToday() (int, error) {
	var count int
	err := r.db.Get(&count,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= date_trunc('day', NOW())`)
	return count, err
}

// CountPending returns the number of bookings awaiting settlement
func (r *BookingRepository) CountPending() (int, error) {
	var count int
	err := r.db.Get(&count,
		`SELECT COUNT(*) FROM bookings WHERE payment_status = 'pending'`)
	return count, err
}
