package services

import (
	"math"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// PriceTolerance is the maximum absolute difference allowed between a
// client-quoted total and the server-computed total.
const PriceTolerance = 0.01

// PriceSegmentRange computes the per-passenger fare for travelling from
// origin to destination along an ordered segment chain. The start index is
// the first segment whose origin matches, the end index the first segment
// whose destination matches. The fare is the sum of segment costs over the
// inclusive range.
func PriceSegmentRange(segments []models.Segment, origin, destination string) (float64, error) {
	startIdx, endIdx := -1, -1

	for i, seg := range segments {
		if seg.Origin == origin {
			startIdx = i
			break
		}
	}
	for i, seg := range segments {
		if seg.Destination == destination {
			endIdx = i
			break
		}
	}

	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return 0, ErrInvalidSegments
	}

	var fare float64
	for i := startIdx; i <= endIdx; i++ {
		fare += segments[i].Cost
	}
	return fare, nil
}

// PriceAddOns computes the total add-on charge for a booking. Per-passenger
// add-ons scale with the passenger count; per-booking add-ons are charged
// once.
func PriceAddOns(addOns []models.AddOn, passengerCount int) float64 {
	var total float64
	for _, addOn := range addOns {
		switch addOn.PricingType {
		case models.AddOnPerPassenger:
			total += addOn.Price * float64(passengerCount)
		default:
			total += addOn.Price
		}
	}
	return total
}

// TotalPrice computes the authoritative booking total: per-passenger fare
// times passenger count plus add-on charges.
func TotalPrice(segments []models.Segment, origin, destination string, passengerCount int, addOns []models.AddOn) (float64, error) {
	fare, err := PriceSegmentRange(segments, origin, destination)
	if err != nil {
		return 0, err
	}
	return fare*float64(passengerCount) + PriceAddOns(addOns, passengerCount), nil
}

// PriceMatches reports whether a client-quoted total agrees with the
// server-computed total within tolerance.
func PriceMatches(quoted, computed float64) bool {
	return math.Abs(quoted-computed) <= PriceTolerance
}
