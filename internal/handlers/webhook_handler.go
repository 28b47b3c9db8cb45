package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/monitoring"
	"github.com/eightstarluxury/transit-backend/internal/services"
)

// WebhookHandler receives payment provider webhooks
type WebhookHandler struct {
	paystack       *services.PaystackService
	reconciliation *services.ReconciliationService
	logger         *logrus.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(
	paystack *services.PaystackService,
	reconciliation *services.ReconciliationService,
	logger *logrus.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		paystack:       paystack,
		reconciliation: reconciliation,
		logger:         logger,
	}
}

// HandlePaystack processes a Paystack webhook. The signature is verified
// against the raw body before anything is parsed.
// @Router /api/v1/webhooks/paystack [post]
func (h *WebhookHandler) HandlePaystack(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !h.paystack.ValidateSignature(body, signature) {
		h.logger.WithField("remote_addr", c.ClientIP()).Warn("Webhook signature verification failed")
		monitoring.TrackWebhookSignatureFailure()
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidSignature.Error()})
		return
	}

	event, err := h.paystack.ParseWebhook(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	switch event.Event {
	case "charge.success":
		_, err := h.reconciliation.ConfirmPayment(event.Data.Reference, event.Data.Amount, services.PaymentSourceWebhook)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})

	case "charge.failed":
		_, err := h.reconciliation.FailPayment(event.Data.Reference, services.PaymentSourceWebhook)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})

	default:
		// Unhandled event types are acknowledged so the provider stops retrying
		h.logger.WithField("event", event.Event).Debug("Ignoring unhandled webhook event")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}
