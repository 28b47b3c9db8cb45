package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

func chainSegments() []models.Segment {
	return []models.Segment{
		{Origin: "Lagos", Destination: "Ibadan", Cost: 100, Mode: models.SegmentModeRoad},
		{Origin: "Ibadan", Destination: "Ilorin", Cost: 150, Mode: models.SegmentModeRoad},
		{Origin: "Ilorin", Destination: "Abuja", Cost: 250, Mode: models.SegmentModeAir},
	}
}

func TestPriceSegmentRange(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		destination string
		want        float64
		wantErr     bool
	}{
		{"full chain", "Lagos", "Abuja", 500, false},
		{"single leg", "Lagos", "Ibadan", 100, false},
		{"middle leg", "Ibadan", "Ilorin", 150, false},
		{"partial from middle", "Ibadan", "Abuja", 400, false},
		{"unknown origin", "Kano", "Abuja", 0, true},
		{"unknown destination", "Lagos", "Kano", 0, true},
		{"reversed direction", "Abuja", "Lagos", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fare, err := PriceSegmentRange(chainSegments(), tt.origin, tt.destination)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSegments)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fare)
		})
	}
}

func TestPriceSegmentRangeFirstOccurrenceWins(t *testing.T) {
	// A route visiting the same city twice prices against the first visit
	segments := []models.Segment{
		{Origin: "A", Destination: "B", Cost: 10},
		{Origin: "B", Destination: "A", Cost: 20},
		{Origin: "A", Destination: "C", Cost: 30},
	}

	fare, err := PriceSegmentRange(segments, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(60), fare)
}

func TestPriceAddOns(t *testing.T) {
	addOns := []models.AddOn{
		{Name: "Champagne", Price: 50, PricingType: models.AddOnPerBooking},
		{Name: "Priority Boarding", Price: 10, PricingType: models.AddOnPerPassenger},
	}

	assert.Equal(t, float64(80), PriceAddOns(addOns, 3))
	assert.Equal(t, float64(60), PriceAddOns(addOns, 1))
	assert.Equal(t, float64(0), PriceAddOns(nil, 5))
}

func TestTotalPrice(t *testing.T) {
	addOns := []models.AddOn{
		{Name: "Champagne", Price: 50, PricingType: models.AddOnPerBooking},
	}

	total, err := TotalPrice(chainSegments(), "Lagos", "Abuja", 2, addOns)
	require.NoError(t, err)
	assert.Equal(t, float64(1050), total)

	_, err = TotalPrice(chainSegments(), "Abuja", "Lagos", 2, addOns)
	assert.ErrorIs(t, err, ErrInvalidSegments)
}

func TestPriceMatches(t *testing.T) {
	assert.True(t, PriceMatches(100.00, 100.00))
	assert.True(t, PriceMatches(100.01, 100.00))
	assert.True(t, PriceMatches(99.99, 100.00))
	assert.False(t, PriceMatches(100.02, 100.00))
	assert.False(t, PriceMatches(90.00, 100.00))
}
