package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/eightstarluxury/transit-backend/internal/models"
)

// TicketService renders e-ticket PDFs for settled bookings
type TicketService struct{}

// NewTicketService creates a new TicketService
func NewTicketService() *TicketService {
	return &TicketService{}
}

// BuildTicketPDF renders the e-ticket for a booking and returns the PDF
// bytes with a suggested filename.
func (s *TicketService) BuildTicketPDF(booking *models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "EIGHT STAR LUXURY TRANSIT")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "E-TICKET "+booking.BookingID)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Route       : %s", fallback(booking.RouteName, "-")),
		fmt.Sprintf("Journey     : %s", formatJourney(booking.BookedSegments)),
		fmt.Sprintf("Departure   : %s", booking.DepartureTime.Format("Mon, 02 Jan 2006 15:04")),
		fmt.Sprintf("Seats       : %s", formatSeats(booking.SeatNumbers)),
		fmt.Sprintf("Total Paid  : %.2f", booking.TotalCost),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range booking.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s %s %s", i+1, p.Title, p.FirstName, p.LastName))
		pdf.Ln(6)
	}

	if len(booking.BookedAddOns) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Add-ons:")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, a := range booking.BookedAddOns {
			pdf.Cell(0, 6, fmt.Sprintf("- %s (%.2f)", a.Name, a.Price))
			pdf.Ln(6)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this ticket and a valid ID at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render ticket PDF: %w", err)
	}

	filename := fmt.Sprintf("TICKET_%s.pdf", strings.ReplaceAll(booking.BookingID, "/", "_"))
	return buf.Bytes(), filename, nil
}

func formatJourney(segments []models.BookedSegment) string {
	if len(segments) == 0 {
		return "-"
	}
	parts := []string{segments[0].Origin}
	for _, seg := range segments {
		parts = append(parts, seg.Destination)
	}
	return strings.Join(parts, " to ")
}

func formatSeats(seats []string) string {
	if len(seats) == 0 {
		return "assigned at boarding"
	}
	return strings.Join(seats, ", ")
}

func fallback(v, alt string) string {
	if strings.TrimSpace(v) == "" {
		return alt
	}
	return v
}
