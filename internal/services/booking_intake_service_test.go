package services

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
)

func tripDetailsColumnsForTest() []string {
	return []string{
		"id", "route_id", "vehicle_id", "driver_id", "departure_time",
		"booked_seats", "status", "created_at", "updated_at",
		"route_name", "route_segments", "route_image_url",
		"vehicle_name", "vehicle_plate", "vehicle_capacity", "vehicle_amenities",
		"driver_first_name", "driver_last_name",
	}
}

func tripDetailsRow(capacity int, bookedSeats string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		"trip-1", "route-1", "vehicle-1", "driver-1", now.Add(48 * time.Hour),
		[]byte(bookedSeats), "scheduled", now, now,
		"Lagos Express",
		[]byte(`[{"origin":"Lagos","destination":"Ibadan","cost":100,"mode":"road"},{"origin":"Ibadan","destination":"Ilorin","cost":150,"mode":"road"}]`),
		"https://img.example.com/lagos.jpg",
		"Mercedes Sprinter", "LAG-123-XY", capacity, []byte(`{WiFi}`),
		"John", "Doe",
	}
}

func validIntakeRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		TripID: "trip-1",
		Passengers: []models.Passenger{
			{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", PhoneNumber: "+2348012345678"},
		},
		BookedSegments: []models.BookedSegment{
			{Origin: "Lagos", Destination: "Ibadan"},
			{Origin: "Ibadan", Destination: "Ilorin"},
		},
		SeatNumbers: []string{"A2"},
		TotalCost:   250.00,
	}
}

func newIntake(t *testing.T, gatewayURL string) (*BookingIntakeService, sqlmock.Sqlmock) {
	db, mock := newServiceMockDB(t)
	svc := NewBookingIntakeService(
		database.NewBookingRepository(db),
		database.NewTripRepository(db),
		database.NewAddOnRepository(db),
		newTestPaystack(gatewayURL),
		testLogger(),
	)
	return svc, mock
}

func TestCreateBookingIntake(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		gatewayHits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gatewayHits++
			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			// server-computed total in minor units, never the client's number
			assert.Equal(t, float64(25000), req["amount"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": true,
				"data":   map[string]interface{}{"authorization_url": "https://checkout.paystack.com/xyz"},
			})
		}))
		defer server.Close()

		svc, mock := newIntake(t, server.URL)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).AddRow(tripDetailsRow(10, `{A1}`)...))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		result, err := svc.CreateBooking(validIntakeRequest())
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/xyz", result.AuthorizationURL)
		assert.Equal(t, models.PaymentStatusPending, result.Booking.PaymentStatus)
		assert.Contains(t, result.Booking.BookingID, "8SLT-")
		assert.Equal(t, 250.00, result.Booking.TotalCost)
		assert.Equal(t, 1, gatewayHits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient Capacity", func(t *testing.T) {
		svc, mock := newIntake(t, "http://unused")

		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).AddRow(tripDetailsRow(1, `{A1}`)...))

		_, err := svc.CreateBooking(validIntakeRequest())
		assert.ErrorIs(t, err, ErrInsufficientCapacity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Already Taken", func(t *testing.T) {
		svc, mock := newIntake(t, "http://unused")

		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).AddRow(tripDetailsRow(10, `{A2}`)...))

		_, err := svc.CreateBooking(validIntakeRequest())
		assert.ErrorIs(t, err, ErrSeatTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Price Mismatch Never Reaches Gateway", func(t *testing.T) {
		gatewayHits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gatewayHits++
		}))
		defer server.Close()

		svc, mock := newIntake(t, server.URL)

		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).AddRow(tripDetailsRow(10, `{}`)...))

		req := validIntakeRequest()
		req.TotalCost = 199.99

		_, err := svc.CreateBooking(req)
		assert.ErrorIs(t, err, ErrPriceMismatch)
		assert.Zero(t, gatewayHits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Price Mismatch Reported Before Capacity", func(t *testing.T) {
		svc, mock := newIntake(t, "http://unused")

		// full trip AND tampered quote: the price error must win
		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).AddRow(tripDetailsRow(1, `{A1}`)...))

		req := validIntakeRequest()
		req.TotalCost = 199.99

		_, err := svc.CreateBooking(req)
		assert.ErrorIs(t, err, ErrPriceMismatch)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Segments", func(t *testing.T) {
		svc, mock := newIntake(t, "http://unused")

		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).AddRow(tripDetailsRow(10, `{}`)...))

		req := validIntakeRequest()
		req.BookedSegments = []models.BookedSegment{{Origin: "Kano", Destination: "Ilorin"}}

		_, err := svc.CreateBooking(req)
		assert.ErrorIs(t, err, ErrInvalidSegments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Trip Not Found", func(t *testing.T) {
		svc, mock := newIntake(t, "http://unused")

		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()))

		_, err := svc.CreateBooking(validIntakeRequest())
		assert.ErrorIs(t, err, ErrTripNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Gateway Failure Removes Pending Booking", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]interface{}{"status": false, "message": "down"})
		}))
		defer server.Close()

		svc, mock := newIntake(t, server.URL)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trips t`).
			WithArgs("trip-1").
			WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).AddRow(tripDetailsRow(10, `{}`)...))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`DELETE FROM bookings`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := svc.CreateBooking(validIntakeRequest())
		assert.ErrorIs(t, err, ErrPaymentGateway)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Selection Must Cover Passengers", func(t *testing.T) {
		svc, _ := newIntake(t, "http://unused")

		req := validIntakeRequest()
		req.SeatNumbers = []string{"A2", "A3"}

		_, err := svc.CreateBooking(req)
		assert.Error(t, err)
	})
}
