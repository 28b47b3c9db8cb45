package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eightstarluxury/transit-backend/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestPaystack(baseURL string) *PaystackService {
	return NewPaystackService(config.PaymentConfig{
		SecretKey:   "sk_test_secret",
		BaseURL:     baseURL,
		CallbackURL: "https://example.com/callback",
	}, testLogger())
}

func TestInitializeTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ada@example.com", req["email"])
			assert.Equal(t, float64(15000), req["amount"])
			assert.Equal(t, "8SLT-ABC123", req["reference"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  true,
				"message": "Authorization URL created",
				"data": map[string]interface{}{
					"authorization_url": "https://checkout.paystack.com/abc",
					"reference":         "8SLT-ABC123",
				},
			})
		}))
		defer server.Close()

		svc := newTestPaystack(server.URL)
		url, err := svc.InitializeTransaction("ada@example.com", 15000, "8SLT-ABC123", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/abc", url)
	})

	t.Run("Provider Rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Invalid key",
			})
		}))
		defer server.Close()

		svc := newTestPaystack(server.URL)
		_, err := svc.InitializeTransaction("ada@example.com", 15000, "8SLT-ABC123", nil)
		assert.ErrorIs(t, err, ErrPaymentGateway)
	})
}

func TestVerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/8SLT-ABC123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"status": "success",
				"amount": 15000,
			},
		})
	}))
	defer server.Close()

	svc := newTestPaystack(server.URL)
	result, err := svc.VerifyTransaction("8SLT-ABC123")
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, int64(15000), result.Amount)
}

func TestValidateSignature(t *testing.T) {
	svc := newTestPaystack("http://unused")
	body := []byte(`{"event":"charge.success"}`)

	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, svc.ValidateSignature(body, valid))
	assert.False(t, svc.ValidateSignature(body, "deadbeef"))
	assert.False(t, svc.ValidateSignature([]byte(`tampered`), valid))
	assert.False(t, svc.ValidateSignature(body, ""))
}

func TestParseWebhook(t *testing.T) {
	svc := newTestPaystack("http://unused")

	event, err := svc.ParseWebhook([]byte(`{"event":"charge.success","data":{"reference":"8SLT-ABC123","amount":15000}}`))
	require.NoError(t, err)
	assert.Equal(t, "charge.success", event.Event)
	assert.Equal(t, "8SLT-ABC123", event.Data.Reference)
	assert.Equal(t, int64(15000), event.Data.Amount)

	_, err = svc.ParseWebhook([]byte(`not json`))
	assert.Error(t, err)
}
