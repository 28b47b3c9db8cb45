package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
)

func TestSegmentsCover(t *testing.T) {
	segments := []models.Segment{
		{Origin: "Lagos", Destination: "Ibadan", Cost: 100},
		{Origin: "Ibadan", Destination: "Ilorin", Cost: 150},
	}

	assert.True(t, segmentsCover(segments, "Lagos", "Ilorin"))
	assert.True(t, segmentsCover(segments, "Ibadan", "Ilorin"))
	assert.False(t, segmentsCover(segments, "Ilorin", "Lagos"))
	assert.False(t, segmentsCover(segments, "Kano", "Ilorin"))
}

func TestSearchTrips(t *testing.T) {
	db, mock := newServiceMockDB(t)
	svc := NewSearchService(database.NewTripRepository(db), testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM trips t`).
		WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).
			AddRow(tripDetailsRow(10, `{}`)...))

	trips, err := svc.SearchTrips("Lagos", "Ilorin", nil)
	require.NoError(t, err)
	assert.Len(t, trips, 1)

	mock.ExpectQuery(`SELECT (.+) FROM trips t`).
		WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).
			AddRow(tripDetailsRow(10, `{}`)...))

	trips, err = svc.SearchTrips("Ilorin", "Lagos", nil)
	require.NoError(t, err)
	assert.Empty(t, trips)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchTripsDateFilter(t *testing.T) {
	db, mock := newServiceMockDB(t)
	svc := NewSearchService(database.NewTripRepository(db), testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM trips t`).
		WillReturnRows(sqlmock.NewRows(tripDetailsColumnsForTest()).
			AddRow(tripDetailsRow(10, `{}`)...))

	// the fixture departs in 48 hours; searching for today finds nothing
	today := time.Now()
	trips, err := svc.SearchTrips("Lagos", "Ilorin", &today)
	require.NoError(t, err)
	assert.Empty(t, trips)
	assert.NoError(t, mock.ExpectationsWereMet())
}
