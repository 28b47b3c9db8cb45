package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
)

// SearchService answers public trip search queries
type SearchService struct {
	tripRepo *database.TripRepository
	logger   *logrus.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(tripRepo *database.TripRepository, logger *logrus.Logger) *SearchService {
	return &SearchService{
		tripRepo: tripRepo,
		logger:   logger,
	}
}

// SearchTrips finds upcoming scheduled trips whose route covers travel from
// origin to destination. When date is non-nil only trips departing on that
// calendar day match.
func (s *SearchService) SearchTrips(origin, destination string, date *time.Time) ([]models.TripDetails, error) {
	trips, err := s.tripRepo.ListUpcoming(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming trips: %w", err)
	}

	matches := []models.TripDetails{}
	for _, trip := range trips {
		if !segmentsCover(trip.RouteSegments, origin, destination) {
			continue
		}
		if date != nil && !sameDay(trip.DepartureTime, *date) {
			continue
		}
		matches = append(matches, trip)
	}

	s.logger.WithFields(logrus.Fields{
		"origin":      origin,
		"destination": destination,
		"matches":     len(matches),
	}).Debug("Trip search completed")

	return matches, nil
}

// segmentsCover reports whether an ordered segment chain allows travel from
// origin to destination. Same first-occurrence rule the pricing engine uses.
func segmentsCover(segments []models.Segment, origin, destination string) bool {
	_, err := PriceSegmentRange(segments, origin, destination)
	return err == nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
