package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total bookings accepted into pending state",
		},
	)

	bookingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_rejections_total",
			Help: "Total booking requests rejected during intake",
		},
		[]string{"reason"},
	)

	paymentConfirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_confirmations_total",
			Help: "Total payment confirmation attempts",
		},
		[]string{"source", "status"},
	)

	seatCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_commits_total",
			Help: "Total seat commit attempts during settlement",
		},
		[]string{"result"},
	)

	webhookSignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_signature_failures_total",
			Help: "Total webhooks rejected for bad signatures",
		},
	)

	ticketEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_emails_total",
			Help: "Total ticket email delivery attempts",
		},
		[]string{"status"},
	)
)

// TrackBookingCreated records a booking accepted into pending state
func TrackBookingCreated() {
	bookingsCreated.Inc()
}

// TrackBookingRejection records an intake rejection by reason
func TrackBookingRejection(reason string) {
	bookingRejections.WithLabelValues(reason).Inc()
}

// TrackPaymentConfirmation records a confirmation attempt by source and outcome
func TrackPaymentConfirmation(source, status string) {
	paymentConfirmations.WithLabelValues(source, status).Inc()
}

// TrackSeatCommit records a seat commit attempt outcome
func TrackSeatCommit(result string) {
	seatCommits.WithLabelValues(result).Inc()
}

// TrackWebhookSignatureFailure records a webhook rejected for a bad signature
func TrackWebhookSignatureFailure() {
	webhookSignatureFailures.Inc()
}

// TrackTicketEmail records a ticket email delivery attempt outcome
func TrackTicketEmail(status string) {
	ticketEmails.WithLabelValues(status).Inc()
}
