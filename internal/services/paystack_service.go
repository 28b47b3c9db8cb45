package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/config"
)

// PaystackService talks to the Paystack REST API and verifies webhook
// authenticity. Amounts cross the wire in the minor currency unit.
type PaystackService struct {
	client      *http.Client
	secretKey   string
	baseURL     string
	callbackURL string
	logger      *logrus.Logger
}

// NewPaystackService creates a new PaystackService
func NewPaystackService(cfg config.PaymentConfig, logger *logrus.Logger) *PaystackService {
	return &PaystackService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		secretKey:   cfg.SecretKey,
		baseURL:     cfg.BaseURL,
		callbackURL: cfg.CallbackURL,
		logger:      logger,
	}
}

// initializeRequest is the payload for POST /transaction/initialize
type initializeRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Reference   string                 `json:"reference"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// VerifyResult is the settlement state reported by the provider for a
// transaction reference.
type VerifyResult struct {
	Status string
	Amount int64
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	} `json:"data"`
}

// WebhookEvent is the subset of a Paystack webhook payload the
// reconciliation flow acts on.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

// InitializeTransaction creates a pending transaction with the provider and
// returns the hosted checkout URL the customer should be redirected to.
func (s *PaystackService) InitializeTransaction(email string, amountMinor int64, reference string, metadata map[string]interface{}) (string, error) {
	payload := initializeRequest{
		Email:       email,
		Amount:      amountMinor,
		Reference:   reference,
		Metadata:    metadata,
		CallbackURL: s.callbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal initialize request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build initialize request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Paystack initialize request failed")
		return "", fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrPaymentGateway, err)
	}

	var parsed initializeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: unexpected response body", ErrPaymentGateway)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Status || parsed.Data.AuthorizationURL == "" {
		s.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"message":     parsed.Message,
			"reference":   reference,
		}).Error("Paystack rejected transaction initialization")
		return "", fmt.Errorf("%w: %s", ErrPaymentGateway, parsed.Message)
	}

	return parsed.Data.AuthorizationURL, nil
}

// VerifyTransaction queries the provider for the authoritative state of a
// transaction reference.
func (s *PaystackService) VerifyTransaction(reference string) (*VerifyResult, error) {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Paystack verify request failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrPaymentGateway, err)
	}

	var parsed verifyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unexpected response body", ErrPaymentGateway)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Status {
		s.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"message":     parsed.Message,
			"reference":   reference,
		}).Error("Paystack rejected transaction verification")
		return nil, fmt.Errorf("%w: %s", ErrPaymentGateway, parsed.Message)
	}

	return &VerifyResult{
		Status: parsed.Data.Status,
		Amount: parsed.Data.Amount,
	}, nil
}

// ValidateSignature checks the HMAC-SHA512 hex signature a webhook carries
// against the raw request body.
func (s *PaystackService) ValidateSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(s.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhook decodes a webhook payload
func (s *PaystackService) ParseWebhook(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}
