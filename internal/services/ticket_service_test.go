package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

func TestBuildTicketPDF(t *testing.T) {
	booking := &models.Booking{
		BookingID:     "8SLT-ABC123",
		RouteName:     "Lagos Express",
		DepartureTime: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Passengers: models.PassengerList{
			{Title: "Ms", FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"},
			{Title: "Mr", FirstName: "Emeka", LastName: "Obi"},
		},
		BookedSegments: models.BookedSegmentList{
			{Origin: "Lagos", Destination: "Ibadan"},
			{Origin: "Ibadan", Destination: "Ilorin"},
		},
		SeatNumbers:  []string{"A1", "A2"},
		BookedAddOns: models.BookedAddOnList{{Name: "Champagne", Price: 50}},
		TotalCost:    550.00,
	}

	svc := NewTicketService()
	pdfBytes, filename, err := svc.BuildTicketPDF(booking)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
	assert.Equal(t, "TICKET_8SLT-ABC123.pdf", filename)
}

func TestBuildTicketPDFWithoutSeats(t *testing.T) {
	booking := &models.Booking{
		BookingID:     "8SLT-XYZ789",
		RouteName:     "Abuja Shuttle",
		DepartureTime: time.Now().Add(24 * time.Hour),
		Passengers: models.PassengerList{
			{FirstName: "Ada", LastName: "Obi"},
		},
		BookedSegments: models.BookedSegmentList{{Origin: "Ilorin", Destination: "Abuja"}},
		TotalCost:      250.00,
	}

	svc := NewTicketService()
	pdfBytes, _, err := svc.BuildTicketPDF(booking)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}
