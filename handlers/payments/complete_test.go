package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kenflash-backend/sessions"
	"kenflash-backend/testutils"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) GetDel(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		delete(f.data, key)
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func withSessionStore(t *testing.T) {
	t.Helper()
	original := sessions.Default
	sessions.Init(newFakeKV())
	t.Cleanup(func() { sessions.Default = original })
}

func postComplete(r http.Handler, visitorID string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"visitorId": visitorID})
	req, _ := http.NewRequest(http.MethodPost, "/payments/korapay/complete", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCompleteRedirectCheckout_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	withSessionStore(t)

	hits := 0
	server := korapayTestServer(t, &hits, []KorapayTransaction{{
		Reference:        "KPY-REF-1",
		PaymentReference: "T1",
		Status:           "success",
		Amount:           2000,
		Currency:         "KES",
		Customer:         KorapayCustomer{Email: "e@x.com"},
	}})
	defer server.Close()

	oldBase := korapayBaseURL
	korapayBaseURL = server.URL
	defer func() { korapayBaseURL = oldBase }()
	t.Setenv("KORAPAY_SECRET_KEY", "test-korapay-key")

	assert.NoError(t, sessions.Default.SavePending(context.Background(), "v1", sessions.PendingTransaction{
		Email:         "e@x.com",
		PlanName:      "1 Day Plan",
		TransactionID: "T1",
	}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "subscriptions"`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("sub-uuid"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/payments/korapay/complete", CompleteRedirectCheckout)

	resp := postComplete(r, "v1")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, hits)
	assert.NoError(t, mock.ExpectationsWereMet())

	// the grant refreshed the visitor session
	session, err := sessions.Default.Load(context.Background(), "v1")
	assert.NoError(t, err)
	assert.NotNil(t, session)
	assert.Equal(t, "e@x.com", session.Email)
}

func TestCompleteRedirectCheckout_NoPendingMarker(t *testing.T) {
	withSessionStore(t)

	r := testutils.SetupTestRouter()
	r.POST("/payments/korapay/complete", CompleteRedirectCheckout)

	resp := postComplete(r, "v1")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No pending payment")
}

func TestCompleteRedirectCheckout_IncompleteMarkerConsumedOnce(t *testing.T) {
	withSessionStore(t)

	hits := 0
	server := korapayTestServer(t, &hits, nil)
	defer server.Close()

	oldBase := korapayBaseURL
	korapayBaseURL = server.URL
	defer func() { korapayBaseURL = oldBase }()
	t.Setenv("KORAPAY_SECRET_KEY", "test-korapay-key")

	// marker with no plan name: stops before the provider is consulted
	assert.NoError(t, sessions.Default.SavePending(context.Background(), "v1", sessions.PendingTransaction{
		Email:         "e@x.com",
		TransactionID: "T1",
	}))

	r := testutils.SetupTestRouter()
	r.POST("/payments/korapay/complete", CompleteRedirectCheckout)

	resp := postComplete(r, "v1")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Missing payment details")
	assert.Equal(t, 0, hits)

	// the marker is gone whatever the outcome
	resp = postComplete(r, "v1")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No pending payment")
}
