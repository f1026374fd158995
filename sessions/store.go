// Package sessions holds the visitor's cached entitlement state: a typed
// session object with an explicit load/save/clear lifecycle, plus the
// pending-transaction marker that bridges a redirect checkout. Both live in
// Redis keyed by an opaque visitor ID, replacing the ad hoc per-key storage
// the web client used to scatter across call sites.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "visitor_session:"
	pendingKeyPrefix = "pending_txn:"

	// sessions outlive the longest plan so an expired-but-present session
	// can still be detected and cleared on load
	sessionTTL = 45 * 24 * time.Hour
	// a pending marker only needs to survive one checkout round-trip
	pendingTTL = 2 * time.Hour
)

var ErrNoPendingTransaction = errors.New("no pending transaction")

// VisitorSession is the device's cached belief about its own entitlement.
// The subscription record store stays the source of truth; the session only
// lets the gate unblock without a round-trip.
type VisitorSession struct {
	Email              string    `json:"email"`
	SubscriptionExpiry time.Time `json:"subscriptionExpiry"`
}

// IsSubscribed reports whether the cached entitlement is still current.
func (s VisitorSession) IsSubscribed(now time.Time) bool {
	return s.Email != "" && now.Before(s.SubscriptionExpiry)
}

// PendingTransaction is the marker written right before redirecting a
// visitor to a hosted checkout page. It must be consumed exactly once per
// checkout attempt.
type PendingTransaction struct {
	Email         string `json:"email"`
	PlanName      string `json:"planName"`
	TransactionID string `json:"transactionId"`
}

type kvClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store reads and writes visitor state in Redis.
type Store struct {
	client kvClient
}

func NewStore(client kvClient) *Store {
	return &Store{client: client}
}

// Default is the process-wide store, set from main once Redis is up.
var Default *Store

func Init(client kvClient) {
	Default = NewStore(client)
}

// Load returns the session for visitorID, or nil when none exists. A
// session whose expiry has passed is cleared and reported as absent.
func (s *Store) Load(ctx context.Context, visitorID string) (*VisitorSession, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+visitorID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading visitor session: %w", err)
	}

	var session VisitorSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decoding visitor session: %w", err)
	}

	if !session.IsSubscribed(time.Now()) {
		if err := s.Clear(ctx, visitorID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &session, nil
}

func (s *Store) Save(ctx context.Context, visitorID string, session VisitorSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding visitor session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+visitorID, raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("saving visitor session: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+visitorID).Err(); err != nil {
		return fmt.Errorf("clearing visitor session: %w", err)
	}
	return nil
}

// SavePending stores the pending-transaction marker before a redirect.
func (s *Store) SavePending(ctx context.Context, visitorID string, pending PendingTransaction) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encoding pending transaction: %w", err)
	}
	if err := s.client.Set(ctx, pendingKeyPrefix+visitorID, raw, pendingTTL).Err(); err != nil {
		return fmt.Errorf("saving pending transaction: %w", err)
	}
	return nil
}

// TakePending returns the pending marker and deletes it in the same step,
// so a stale marker can never complete a later, unrelated redirect.
// Returns ErrNoPendingTransaction when none is stored.
func (s *Store) TakePending(ctx context.Context, visitorID string) (*PendingTransaction, error) {
	raw, err := s.client.GetDel(ctx, pendingKeyPrefix+visitorID).Result()
	if err == redis.Nil {
		return nil, ErrNoPendingTransaction
	}
	if err != nil {
		return nil, fmt.Errorf("taking pending transaction: %w", err)
	}

	var pending PendingTransaction
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, fmt.Errorf("decoding pending transaction: %w", err)
	}
	return &pending, nil
}
