package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/services"
)

// PaymentHandler serves the post-checkout verification endpoint the
// customer's browser hits after being redirected back from the provider.
type PaymentHandler struct {
	paystack       *services.PaystackService
	reconciliation *services.ReconciliationService
	logger         *logrus.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(
	paystack *services.PaystackService,
	reconciliation *services.ReconciliationService,
	logger *logrus.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		paystack:       paystack,
		reconciliation: reconciliation,
		logger:         logger,
	}
}

// VerifyPayment queries the provider for a transaction's state. A
// non-successful provider status reports failure without touching the
// booking; the webhook remains authoritative for failures.
// @Router /api/v1/payments/verify/:reference [get]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")

	result, err := h.paystack.VerifyTransaction(reference)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if result.Status != "success" {
		c.JSON(http.StatusOK, gin.H{
			"paymentStatus": "failed",
			"reference":     reference,
		})
		return
	}

	booking, err := h.reconciliation.ConfirmPayment(reference, result.Amount, services.PaymentSourceVerify)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentStatus": booking.PaymentStatus,
		"booking":       booking,
	})
}
