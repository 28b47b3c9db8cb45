package utils

import (
	"crypto/rand"
	"fmt"
)

// BookingReferencePrefix brands every customer-facing booking reference
const BookingReferencePrefix = "8SLT-"

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingReference returns a new customer-facing booking reference,
// a branded prefix followed by six random alphanumeric characters.
func GenerateBookingReference() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate booking reference: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return BookingReferencePrefix + string(buf), nil
}
