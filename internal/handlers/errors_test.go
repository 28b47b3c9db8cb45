package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eightstarluxury/transit-backend/internal/services"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Trip Not Found", services.ErrTripNotFound, http.StatusNotFound},
		{"Booking Not Found", services.ErrBookingNotFound, http.StatusNotFound},
		{"Trip Gone", services.ErrTripGone, http.StatusGone},
		{"Insufficient Capacity", services.ErrInsufficientCapacity, http.StatusConflict},
		{"Seat Taken", services.ErrSeatTaken, http.StatusConflict},
		{"Price Mismatch", services.ErrPriceMismatch, http.StatusConflict},
		{"Invalid Status", services.ErrInvalidStatus, http.StatusConflict},
		{"Trip Has Bookings", services.ErrTripHasBookings, http.StatusConflict},
		{"Invalid Segments", services.ErrInvalidSegments, http.StatusBadRequest},
		{"Invalid Total", services.ErrInvalidTotal, http.StatusBadRequest},
		{"Amount Mismatch", services.ErrAmountMismatch, http.StatusBadRequest},
		{"Invalid Signature", services.ErrInvalidSignature, http.StatusUnauthorized},
		{"Invalid Credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"Payment Gateway", services.ErrPaymentGateway, http.StatusBadGateway},
		{"Unknown Error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
