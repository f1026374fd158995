package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// korapayBaseURL is a package variable so tests can point the client at a
// local server.
var korapayBaseURL = "https://api.korapay.com/merchant/api/v1"

// KorapayClient is a typed client over Korapay's REST API. Responses are
// decoded into concrete structs and rejected on schema mismatch; no field
// is read optimistically out of a raw map.
type KorapayClient struct {
	secretKey  string
	httpClient *http.Client
	baseURL    string
}

func NewKorapayClient(secretKey string) *KorapayClient {
	return &KorapayClient{
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    korapayBaseURL,
	}
}

type KorapayCustomer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type KorapayChargeRequest struct {
	Reference   string            `json:"reference"`
	Amount      int               `json:"amount"`
	Currency    string            `json:"currency"`
	Narration   string            `json:"narration"`
	RedirectURL string            `json:"redirect_url"`
	Customer    KorapayCustomer   `json:"customer"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type korapayEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type KorapayCharge struct {
	CheckoutURL string `json:"checkout_url"`
	Reference   string `json:"reference"`
}

// KorapayTransaction is one entry of the transaction-list endpoint.
// PaymentReference is the merchant-supplied reference; Reference is
// Korapay's own.
type KorapayTransaction struct {
	Reference        string          `json:"reference"`
	PaymentReference string          `json:"payment_reference"`
	Status           string          `json:"status"`
	Amount           int             `json:"amount"`
	Currency         string          `json:"currency"`
	Customer         KorapayCustomer `json:"customer"`
}

// InitializeCharge creates a hosted checkout for the given charge and
// returns the checkout URL plus Korapay's reference.
func (k *KorapayClient) InitializeCharge(ctx context.Context, charge KorapayChargeRequest) (*KorapayCharge, error) {
	body, err := json.Marshal(charge)
	if err != nil {
		return nil, fmt.Errorf("encoding charge request: %w", err)
	}

	data, err := k.do(ctx, http.MethodPost, "/charges/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result KorapayCharge
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding charge response: %w", err)
	}
	if result.CheckoutURL == "" {
		return nil, fmt.Errorf("korapay response missing checkout URL")
	}
	return &result, nil
}

// ListTransactions queries successful KES transactions for a merchant
// reference. The caller still has to match email, reference and amount
// before trusting an entry.
func (k *KorapayClient) ListTransactions(ctx context.Context, reference string) ([]KorapayTransaction, error) {
	query := url.Values{}
	query.Set("reference", reference)
	query.Set("currency", "KES")
	query.Set("status", "success")

	data, err := k.do(ctx, http.MethodGet, "/transactions?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var transactions []KorapayTransaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("decoding transaction list: %w", err)
	}
	return transactions, nil
}

func (k *KorapayClient) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, k.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating korapay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+k.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling korapay: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading korapay response: %w", err)
	}

	var envelope korapayEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("korapay returned a non-JSON response (HTTP %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK || !envelope.Status {
		return nil, fmt.Errorf("korapay error (HTTP %d): %s", resp.StatusCode, envelope.Message)
	}

	return envelope.Data, nil
}
