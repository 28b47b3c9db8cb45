package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/config"
	"github.com/eightstarluxury/transit-backend/internal/models"
)

func TestSendTicket(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNotificationService(config.EmailConfig{
		ResendAPIKey: "re_test_key",
		FromEmail:    "bookings@example.com",
		FromName:     "Eight Star Luxury",
		BaseURL:      server.URL,
	}, NewTicketService(), testLogger())

	booking := &models.Booking{
		BookingID:     "8SLT-ABC123",
		RouteName:     "Lagos Express",
		DepartureTime: time.Now().Add(24 * time.Hour),
		Passengers: models.PassengerList{
			{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"},
		},
		BookedSegments: models.BookedSegmentList{{Origin: "Lagos", Destination: "Ibadan"}},
		TotalCost:      150.00,
	}

	err := svc.SendTicket(booking)
	require.NoError(t, err)

	to := captured["to"].([]interface{})
	assert.Equal(t, "ada@example.com", to[0])
	attachments := captured["attachments"].([]interface{})
	require.Len(t, attachments, 1)
	attachment := attachments[0].(map[string]interface{})
	assert.Equal(t, "TICKET_8SLT-ABC123.pdf", attachment["filename"])
	assert.NotEmpty(t, attachment["content"])
}

func TestSendTicketNoLeadEmail(t *testing.T) {
	svc := NewNotificationService(config.EmailConfig{
		ResendAPIKey: "re_test_key",
		BaseURL:      "http://unused",
	}, NewTicketService(), testLogger())

	err := svc.SendTicket(&models.Booking{BookingID: "8SLT-ABC123"})
	assert.Error(t, err)
}
