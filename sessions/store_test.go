package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// fakeKV implements kvClient over a map.
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

func TestStore_SaveAndLoad(t *testing.T) {
	store := NewStore(newFakeKV())
	ctx := context.Background()

	session := VisitorSession{
		Email:              "e@x.com",
		SubscriptionExpiry: time.Now().Add(24 * time.Hour),
	}
	assert.NoError(t, store.Save(ctx, "v1", session))

	loaded, err := store.Load(ctx, "v1")
	assert.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Equal(t, "e@x.com", loaded.Email)
	assert.True(t, loaded.IsSubscribed(time.Now()))
}

func TestStore_LoadMissingSession(t *testing.T) {
	store := NewStore(newFakeKV())

	loaded, err := store.Load(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadExpiredSessionClearsIt(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv)
	ctx := context.Background()

	session := VisitorSession{
		Email:              "e@x.com",
		SubscriptionExpiry: time.Now().Add(-time.Hour),
	}
	assert.NoError(t, store.Save(ctx, "v1", session))

	loaded, err := store.Load(ctx, "v1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	// the expired entry is gone, not just hidden
	_, stillThere := kv.data[sessionKeyPrefix+"v1"]
	assert.False(t, stillThere)
}

func TestStore_TakePendingConsumesOnce(t *testing.T) {
	store := NewStore(newFakeKV())
	ctx := context.Background()

	pending := PendingTransaction{
		Email:         "e@x.com",
		PlanName:      "1 Day Plan",
		TransactionID: "T1",
	}
	assert.NoError(t, store.SavePending(ctx, "v1", pending))

	taken, err := store.TakePending(ctx, "v1")
	assert.NoError(t, err)
	assert.Equal(t, "T1", taken.TransactionID)
	assert.Equal(t, "1 Day Plan", taken.PlanName)

	_, err = store.TakePending(ctx, "v1")
	assert.True(t, errors.Is(err, ErrNoPendingTransaction))
}

func TestStore_TakePendingWithoutMarker(t *testing.T) {
	store := NewStore(newFakeKV())

	_, err := store.TakePending(context.Background(), "v1")
	assert.True(t, errors.Is(err, ErrNoPendingTransaction))
}

func TestVisitorSession_IsSubscribed(t *testing.T) {
	now := time.Now()

	assert.True(t, VisitorSession{Email: "e@x.com", SubscriptionExpiry: now.Add(time.Minute)}.IsSubscribed(now))
	assert.False(t, VisitorSession{Email: "e@x.com", SubscriptionExpiry: now.Add(-time.Minute)}.IsSubscribed(now))
	assert.False(t, VisitorSession{SubscriptionExpiry: now.Add(time.Minute)}.IsSubscribed(now))
}
