package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var paystackBaseURL = "https://api.paystack.co"

// PaystackClient verifies transactions created by the client-embedded
// payment widget. Same boundary discipline as the Korapay client: typed
// responses, no optimistic field access.
type PaystackClient struct {
	secretKey  string
	httpClient *http.Client
	baseURL    string
}

func NewPaystackClient(secretKey string) *PaystackClient {
	return &PaystackClient{
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    paystackBaseURL,
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type PaystackTransaction struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// VerifyTransaction fetches the transaction for a widget reference.
func (p *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*PaystackTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, fmt.Errorf("creating paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling paystack: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading paystack response: %w", err)
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("paystack returned a non-JSON response (HTTP %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK || !envelope.Status {
		return nil, fmt.Errorf("paystack error (HTTP %d): %s", resp.StatusCode, envelope.Message)
	}

	var transaction PaystackTransaction
	if err := json.Unmarshal(envelope.Data, &transaction); err != nil {
		return nil, fmt.Errorf("decoding paystack transaction: %w", err)
	}
	return &transaction, nil
}
