package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
	"github.com/eightstarluxury/transit-backend/internal/monitoring"
	"github.com/eightstarluxury/transit-backend/internal/utils"
)

// BookingIntakeService owns the public booking flow: server-side price
// verification, the pending reservation, and payment initialization. Seats
// are never committed here; only settlement claims seats.
type BookingIntakeService struct {
	bookingRepo *database.BookingRepository
	tripRepo    *database.TripRepository
	addOnRepo   *database.AddOnRepository
	paystack    *PaystackService
	logger      *logrus.Logger
}

// NewBookingIntakeService creates a new BookingIntakeService
func NewBookingIntakeService(
	bookingRepo *database.BookingRepository,
	tripRepo *database.TripRepository,
	addOnRepo *database.AddOnRepository,
	paystack *PaystackService,
	logger *logrus.Logger,
) *BookingIntakeService {
	return &BookingIntakeService{
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		addOnRepo:   addOnRepo,
		paystack:    paystack,
		logger:      logger,
	}
}

// CreateBookingResult carries the pending booking and the checkout URL the
// customer is redirected to.
type CreateBookingResult struct {
	Booking          *models.Booking `json:"booking"`
	AuthorizationURL string          `json:"authorizationUrl"`
}

// CreateBooking runs the intake flow for a public booking request
func (s *BookingIntakeService) CreateBooking(req *models.CreateBookingRequest) (*CreateBookingResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"trip_id":    req.TripID,
		"passengers": len(req.Passengers),
	})

	// Step 1: Validate the payload beyond what binding covers
	if err := req.Validate(); err != nil {
		monitoring.TrackBookingRejection("invalid_payload")
		return nil, err
	}

	// Step 2: Load the trip with its route, vehicle and driver
	trip, err := s.tripRepo.GetDetails(req.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trip: %w", err)
	}
	if trip == nil {
		monitoring.TrackBookingRejection("trip_not_found")
		return nil, ErrTripNotFound
	}

	// Step 3: Reject trips that already departed or left scheduled status
	if !trip.IsBookable(time.Now()) {
		monitoring.TrackBookingRejection("trip_gone")
		return nil, ErrTripGone
	}

	// Step 4: Resolve add-ons against the live catalogue, active only
	var addOns []models.AddOn
	if len(req.AddOnIDs) > 0 {
		addOns, err = s.addOnRepo.GetActiveByIDs(req.AddOnIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load add-ons: %w", err)
		}
	}

	// Step 5: Recompute the total server-side
	origin := req.BookedSegments[0].Origin
	destination := req.BookedSegments[len(req.BookedSegments)-1].Destination
	serverTotal, err := TotalPrice(trip.RouteSegments, origin, destination, len(req.Passengers), addOns)
	if err != nil {
		monitoring.TrackBookingRejection("invalid_segments")
		return nil, err
	}
	if serverTotal <= 0 {
		monitoring.TrackBookingRejection("invalid_total")
		return nil, ErrInvalidTotal
	}

	// Step 6: The client's quoted total must agree within tolerance. Price
	// integrity is checked before inventory so a tampered quote is always
	// reported as such.
	if !PriceMatches(req.TotalCost, serverTotal) {
		log.WithFields(logrus.Fields{
			"quoted_total": req.TotalCost,
			"server_total": serverTotal,
		}).Warn("Rejecting booking with mismatched price")
		monitoring.TrackBookingRejection("price_mismatch")
		return nil, ErrPriceMismatch
	}

	// Step 7: Capacity check against seats already sold
	if len(req.Passengers) > trip.AvailableCapacity() {
		monitoring.TrackBookingRejection("capacity")
		return nil, ErrInsufficientCapacity
	}

	// Step 8: Requested seats must not collide with sold seats
	for _, seat := range req.SeatNumbers {
		for _, taken := range trip.BookedSeats {
			if seat == taken {
				monitoring.TrackBookingRejection("seat_taken")
				return nil, ErrSeatTaken
			}
		}
	}

	// Step 9: Snapshot everything the ticket needs into the booking row
	bookedAddOns := make(models.BookedAddOnList, 0, len(addOns))
	for _, addOn := range addOns {
		bookedAddOns = append(bookedAddOns, models.BookedAddOn{
			Name:  addOn.Name,
			Price: addOn.Price,
		})
	}

	booking := &models.Booking{
		TripID:         trip.ID,
		RouteName:      trip.RouteName,
		DepartureTime:  trip.DepartureTime,
		Passengers:     req.Passengers,
		BookedSegments: req.BookedSegments,
		SeatNumbers:    req.SeatNumbers,
		BookedAddOns:   bookedAddOns,
		TotalCost:      serverTotal,
		PaymentStatus:  models.PaymentStatusPending,
		PaymentMethod:  models.PaymentMethodPaystack,
	}

	// Step 10: Persist the pending booking, retrying once on a reference clash
	if err := s.createWithReference(booking); err != nil {
		return nil, err
	}

	// Step 11: Initialize payment; on failure the pending row is removed so
	// the customer can retry cleanly
	lead := booking.LeadPassenger()
	authURL, err := s.paystack.InitializeTransaction(
		lead.Email,
		booking.ExpectedAmountMinor(),
		booking.BookingID,
		map[string]interface{}{
			"bookingId": booking.BookingID,
			"tripId":    booking.TripID,
			"routeName": booking.RouteName,
		},
	)
	if err != nil {
		log.WithError(err).Error("Payment initialization failed, removing pending booking")
		if delErr := s.bookingRepo.Delete(booking.ID); delErr != nil {
			s.logger.WithError(delErr).WithField("booking_id", booking.BookingID).
				Error("Failed to remove booking after payment initialization failure")
		}
		monitoring.TrackBookingRejection("gateway")
		return nil, err
	}

	// Step 12: Hand the checkout URL back to the customer
	monitoring.TrackBookingCreated()
	log.WithField("booking_id", booking.BookingID).Info("Booking created, awaiting payment")

	return &CreateBookingResult{
		Booking:          booking,
		AuthorizationURL: authURL,
	}, nil
}

// createWithReference generates a booking reference and inserts the row,
// regenerating once if the reference collides.
func (s *BookingIntakeService) createWithReference(booking *models.Booking) error {
	for attempt := 0; attempt < 2; attempt++ {
		ref, err := utils.GenerateBookingReference()
		if err != nil {
			return err
		}
		booking.BookingID = ref
		booking.PaymentRef = &ref

		err = s.bookingRepo.Create(booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, database.ErrDuplicateBookingID) {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		s.logger.WithField("booking_id", ref).Warn("Booking reference collision, regenerating")
	}
	return fmt.Errorf("failed to create booking: %w", database.ErrDuplicateBookingID)
}
