package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		BookingID:     "8SLT-ABC123",
		TripID:        "trip-1",
		RouteName:     "Lagos Express",
		DepartureTime: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Passengers: models.PassengerList{
			{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", PhoneNumber: "+2348012345678"},
		},
		BookedSegments: models.BookedSegmentList{{Origin: "Lagos", Destination: "Ibadan"}},
		SeatNumbers:    []string{"A1"},
		TotalCost:      150.00,
		PaymentStatus:  models.PaymentStatusPending,
		PaymentMethod:  models.PaymentMethodPaystack,
	}
}

func TestCreateBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		booking := sampleBooking()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Reference", func(t *testing.T) {
		booking := sampleBooking()

		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(booking)
		assert.ErrorIs(t, err, ErrDuplicateBookingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByBookingID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs("8SLT-ABC123").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "booking_id", "trip_id", "route_name", "departure_time",
				"passengers", "booked_segments", "seat_numbers", "booked_add_ons",
				"total_cost", "payment_status", "payment_method", "payment_ref",
				"marked_as_paid_by", "created_at", "updated_at",
			}).AddRow(
				"id-1", "8SLT-ABC123", "trip-1", "Lagos Express", now,
				[]byte(`[{"firstName":"Ada","lastName":"Obi","email":"ada@example.com"}]`),
				[]byte(`[{"origin":"Lagos","destination":"Ibadan"}]`),
				[]byte(`{A1}`), []byte(`[]`),
				150.00, "pending", "paystack", "8SLT-ABC123",
				nil, now, now,
			))

		booking, err := repo.GetByBookingID("8SLT-ABC123")
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, "Lagos Express", booking.RouteName)
		assert.Len(t, booking.Passengers, 1)
		assert.Equal(t, "Ada", booking.Passengers[0].FirstName)
		assert.Equal(t, []string{"A1"}, []string(booking.SeatNumbers))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE booking_id`).
			WithArgs("8SLT-NOPE").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		booking, err := repo.GetByBookingID("8SLT-NOPE")
		require.NoError(t, err)
		assert.Nil(t, booking)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkPaidIfPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	t.Run("Transition Won", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("id-1", models.PaymentMethodPaystack).
			WillReturnResult(sqlmock.NewResult(0, 1))

		won, err := repo.MarkPaidIfPending("id-1", models.PaymentMethodPaystack)
		require.NoError(t, err)
		assert.True(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Settled", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("id-1", models.PaymentMethodPaystack).
			WillReturnResult(sqlmock.NewResult(0, 0))

		won, err := repo.MarkPaidIfPending("id-1", models.PaymentMethodPaystack)
		require.NoError(t, err)
		assert.False(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnError(fmt.Errorf("database error"))

		won, err := repo.MarkPaidIfPending("id-1", models.PaymentMethodPaystack)
		assert.Error(t, err)
		assert.False(t, won)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkFailedIfPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec(`UPDATE bookings`).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	moved, err := repo.MarkFailedIfPending("id-1")
	require.NoError(t, err)
	assert.True(t, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPaidByIdentifier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE payment_status = 'paid'`).
		WithArgs("ada@example.com", 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "trip_id", "route_name", "departure_time",
			"passengers", "booked_segments", "seat_numbers", "booked_add_ons",
			"total_cost", "payment_status", "payment_method", "payment_ref",
			"marked_as_paid_by", "created_at", "updated_at",
		}).AddRow(
			"id-1", "8SLT-ABC123", "trip-1", "Lagos Express", now,
			[]byte(`[{"firstName":"Ada","lastName":"Obi","email":"ada@example.com"}]`),
			[]byte(`[{"origin":"Lagos","destination":"Ibadan"}]`),
			[]byte(`{A1}`), []byte(`[]`),
			150.00, "paid", "paystack", "8SLT-ABC123",
			nil, now, now,
		))

	bookings, err := repo.FindPaidByIdentifier("ada@example.com", 10)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.PaymentStatusPaid, bookings[0].PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTotalRevenue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_cost\), 0\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1250.50))

	revenue, err := repo.TotalRevenue()
	require.NoError(t, err)
	assert.Equal(t, 1250.50, revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
