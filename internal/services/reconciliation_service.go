package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
	"github.com/eightstarluxury/transit-backend/internal/monitoring"
)

// PaymentSource identifies which path reported a settlement
type PaymentSource string

const (
	PaymentSourceWebhook PaymentSource = "webhook"
	PaymentSourceVerify  PaymentSource = "verify"
	PaymentSourceManual  PaymentSource = "manual"
)

// TicketNotifier delivers the ticket to the lead passenger after settlement
type TicketNotifier interface {
	SendTicketAsync(booking *models.Booking)
}

// ReconciliationService settles bookings. All three settlement paths
// (webhook, redirect verify, manual admin) converge here, and the
// pending-to-paid transition happens exactly once per booking no matter how
// many paths race.
type ReconciliationService struct {
	bookingRepo *database.BookingRepository
	tripRepo    *database.TripRepository
	notifier    TicketNotifier
	logger      *logrus.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	bookingRepo *database.BookingRepository,
	tripRepo *database.TripRepository,
	notifier TicketNotifier,
	logger *logrus.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// ConfirmPayment settles a booking identified by its payment reference.
// amountMinor is the amount the provider reports as settled and must match
// the booked total exactly. The call is idempotent: a booking already paid
// reports success without side effects.
func (s *ReconciliationService) ConfirmPayment(reference string, amountMinor int64, source PaymentSource) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByPaymentRef(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		monitoring.TrackPaymentConfirmation(string(source), "not_found")
		return nil, ErrBookingNotFound
	}

	// Step 1: Amount verification happens before any state change
	if amountMinor != booking.ExpectedAmountMinor() {
		s.logger.WithFields(logrus.Fields{
			"booking_id":      booking.BookingID,
			"expected_amount": booking.ExpectedAmountMinor(),
			"settled_amount":  amountMinor,
			"source":          source,
		}).Error("Settled amount does not match booked total")
		monitoring.TrackPaymentConfirmation(string(source), "amount_mismatch")
		return nil, ErrAmountMismatch
	}

	// Step 2: Atomic pending-to-paid transition; only one caller wins
	won, err := s.bookingRepo.MarkPaidIfPending(booking.ID, models.PaymentMethodPaystack)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	if !won {
		// Someone else settled it, or it left pending another way
		current, err := s.bookingRepo.GetByID(booking.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload booking: %w", err)
		}
		if current != nil && current.PaymentStatus == models.PaymentStatusPaid {
			monitoring.TrackPaymentConfirmation(string(source), "duplicate")
			return current, nil
		}
		monitoring.TrackPaymentConfirmation(string(source), "invalid_status")
		return nil, ErrInvalidStatus
	}

	booking.PaymentStatus = models.PaymentStatusPaid
	monitoring.TrackPaymentConfirmation(string(source), "confirmed")

	// Step 3: The transition winner commits seats and sends the ticket
	s.commitSeats(booking)
	s.notifier.SendTicketAsync(booking)

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.BookingID,
		"source":     source,
	}).Info("Payment confirmed")

	return booking, nil
}

// FailPayment records a failed settlement for the booking behind a payment
// reference. Bookings no longer pending are left untouched.
func (s *ReconciliationService) FailPayment(reference string, source PaymentSource) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByPaymentRef(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	moved, err := s.bookingRepo.MarkFailedIfPending(booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if moved {
		booking.PaymentStatus = models.PaymentStatusFailed
		monitoring.TrackPaymentConfirmation(string(source), "failed")
		s.logger.WithFields(logrus.Fields{
			"booking_id": booking.BookingID,
			"source":     source,
		}).Info("Payment marked failed")
	}
	return booking, nil
}

// MarkPaidManually settles a booking on behalf of an operator, recording
// who performed it. The same seat commitment and ticket delivery run as for
// provider-confirmed settlements.
func (s *ReconciliationService) MarkPaidManually(bookingID, adminID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	won, err := s.bookingRepo.MarkPaidManually(booking.ID, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if !won {
		monitoring.TrackPaymentConfirmation(string(PaymentSourceManual), "invalid_status")
		return nil, ErrInvalidStatus
	}

	booking.PaymentStatus = models.PaymentStatusPaid
	booking.PaymentMethod = models.PaymentMethodManual
	booking.MarkedAsPaidBy = &adminID
	monitoring.TrackPaymentConfirmation(string(PaymentSourceManual), "confirmed")

	s.commitSeats(booking)
	s.notifier.SendTicketAsync(booking)

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.BookingID,
		"admin_id":   adminID,
	}).Info("Booking manually marked paid")

	return booking, nil
}

// CancelBooking cancels a booking from any non-cancelled state, settled ones
// included. Cancelling a paid booking does not release its claimed seats.
func (s *ReconciliationService) CancelBooking(bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.PaymentStatus == models.PaymentStatusCancelled {
		return nil, ErrInvalidStatus
	}

	if err := s.bookingRepo.Cancel(booking.ID); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking.PaymentStatus = models.PaymentStatusCancelled

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.BookingID,
	}).Info("Booking cancelled")
	return booking, nil
}

// commitSeats claims each booked seat on the trip. Seats some earlier
// settlement already claimed are skipped, so replays never double-append.
// Commit failures are logged, never propagated; the settlement itself stands.
func (s *ReconciliationService) commitSeats(booking *models.Booking) {
	for _, seat := range booking.SeatNumbers {
		claimed, err := s.tripRepo.CommitSeat(booking.TripID, seat)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"booking_id": booking.BookingID,
				"trip_id":    booking.TripID,
				"seat":       seat,
			}).Error("Failed to commit seat")
			monitoring.TrackSeatCommit("error")
			continue
		}
		if claimed {
			monitoring.TrackSeatCommit("claimed")
		} else {
			monitoring.TrackSeatCommit("already_taken")
		}
	}
}
