package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/config"
	"github.com/eightstarluxury/transit-backend/internal/models"
	"github.com/eightstarluxury/transit-backend/internal/monitoring"
)

// NotificationService delivers ticket emails through the Resend API
type NotificationService struct {
	client    *http.Client
	apiKey    string
	fromEmail string
	fromName  string
	baseURL   string
	tickets   *TicketService
	logger    *logrus.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(cfg config.EmailConfig, tickets *TicketService, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:    cfg.ResendAPIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		baseURL:   cfg.BaseURL,
		tickets:   tickets,
		logger:    logger,
	}
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendRequest struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// SendTicket renders the e-ticket PDF and emails it to the lead passenger
func (s *NotificationService) SendTicket(booking *models.Booking) error {
	lead := booking.LeadPassenger()
	if lead == nil || lead.Email == "" {
		return fmt.Errorf("booking %s has no lead passenger email", booking.BookingID)
	}

	pdfBytes, filename, err := s.tickets.BuildTicketPDF(booking)
	if err != nil {
		return err
	}

	payload := resendRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{lead.Email},
		Subject: fmt.Sprintf("Your ticket %s is confirmed", booking.BookingID),
		HTML: fmt.Sprintf(
			"<p>Dear %s,</p><p>Your booking <strong>%s</strong> on %s is confirmed. Your e-ticket is attached.</p>",
			lead.FirstName, booking.BookingID, booking.RouteName,
		),
		Attachments: []resendAttachment{
			{
				Filename: filename,
				Content:  base64.StdEncoding.EncodeToString(pdfBytes),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// SendTicketAsync delivers the ticket in the background. Settlement never
// waits on, or fails because of, email delivery.
func (s *NotificationService) SendTicketAsync(booking *models.Booking) {
	go func() {
		if err := s.SendTicket(booking); err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.BookingID).
				Error("Failed to send ticket email")
			monitoring.TrackTicketEmail("error")
			return
		}
		monitoring.TrackTicketEmail("sent")
		s.logger.WithField("booking_id", booking.BookingID).Info("Ticket email sent")
	}()
}
