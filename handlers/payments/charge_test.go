package payments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kenflash-backend/testutils"

	"github.com/stretchr/testify/assert"
)

func TestInitializeKorapayCharge_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/charges/initialize", r.URL.Path)

		var charge KorapayChargeRequest
		json.NewDecoder(r.Body).Decode(&charge)
		assert.Equal(t, "T1", charge.Reference)
		assert.Equal(t, 2000, charge.Amount)
		assert.Equal(t, "KES", charge.Currency)
		assert.Equal(t, "e@x.com", charge.Customer.Email)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "success",
			"data": map[string]string{
				"checkout_url": "https://checkout.korapay.com/T1",
				"reference":    "KPY-REF-1",
			},
		})
	}))
	defer server.Close()

	oldBase := korapayBaseURL
	korapayBaseURL = server.URL
	defer func() { korapayBaseURL = oldBase }()
	t.Setenv("KORAPAY_SECRET_KEY", "test-korapay-key")

	r := testutils.SetupTestRouter()
	r.POST("/payments/korapay/initialize", InitializeKorapayCharge)

	body, _ := json.Marshal(map[string]interface{}{
		"email":         "e@x.com",
		"planName":      "1 Day Plan",
		"amount":        2000,
		"transactionId": "T1",
	})
	req, _ := http.NewRequest(http.MethodPost, "/payments/korapay/initialize", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var result map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &result)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "https://checkout.korapay.com/T1", result["checkoutUrl"])
	assert.Equal(t, "KPY-REF-1", result["korapayReference"])
}

func TestInitializeKorapayCharge_MissingFields(t *testing.T) {
	t.Setenv("KORAPAY_SECRET_KEY", "test-korapay-key")

	r := testutils.SetupTestRouter()
	r.POST("/payments/korapay/initialize", InitializeKorapayCharge)

	body, _ := json.Marshal(map[string]interface{}{
		"email":    "e@x.com",
		"planName": "1 Day Plan",
	})
	req, _ := http.NewRequest(http.MethodPost, "/payments/korapay/initialize", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestInitializeKorapayCharge_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "provider unavailable",
		})
	}))
	defer server.Close()

	oldBase := korapayBaseURL
	korapayBaseURL = server.URL
	defer func() { korapayBaseURL = oldBase }()
	t.Setenv("KORAPAY_SECRET_KEY", "test-korapay-key")

	r := testutils.SetupTestRouter()
	r.POST("/payments/korapay/initialize", InitializeKorapayCharge)

	body, _ := json.Marshal(map[string]interface{}{
		"email":         "e@x.com",
		"planName":      "1 Day Plan",
		"amount":        2000,
		"transactionId": "T1",
	})
	req, _ := http.NewRequest(http.MethodPost, "/payments/korapay/initialize", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	var result map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &result)
	assert.Equal(t, false, result["success"])
}

func TestInitializeKorapayCharge_MissingSecretKey(t *testing.T) {
	t.Setenv("KORAPAY_SECRET_KEY", "")

	r := testutils.SetupTestRouter()
	r.POST("/payments/korapay/initialize", InitializeKorapayCharge)

	body, _ := json.Marshal(map[string]interface{}{
		"email":         "e@x.com",
		"planName":      "1 Day Plan",
		"amount":        2000,
		"transactionId": "T1",
	})
	req, _ := http.NewRequest(http.MethodPost, "/payments/korapay/initialize", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
