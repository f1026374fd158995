package messages

import (
	"context"
	"fmt"
	"sort"

	"kenflash-backend/cache"

	"github.com/redis/go-redis/v9"
)

// ConversationKey returns the canonical channel name for a user pair. The
// pair is ordered so both participants resolve the same channel.
func ConversationKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return fmt.Sprintf("chat:%s:%s", pair[0], pair[1])
}

// Channel is a live subscription to one conversation. Opened when a chat
// view is entered and closed when it is left, so no provider-side
// subscription outlives the view that needed it.
type Channel struct {
	pubsub *redis.PubSub
}

// OpenChannel subscribes to the conversation between two users.
func OpenChannel(ctx context.Context, userA, userB string) (*Channel, error) {
	if cache.Client == nil {
		return nil, fmt.Errorf("redis is not available")
	}
	pubsub := cache.Client.Subscribe(ctx, ConversationKey(userA, userB))
	// force the subscription onto the wire before the caller starts reading
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribing to the conversation: %w", err)
	}
	return &Channel{pubsub: pubsub}, nil
}

// Messages returns the stream of published messages.
func (ch *Channel) Messages() <-chan *redis.Message {
	return ch.pubsub.Channel()
}

// Close tears down the subscription.
func (ch *Channel) Close() error {
	return ch.pubsub.Close()
}

// publish pushes a new message to the conversation channel. Best effort:
// the message row is already stored, a missed publish only delays display
// until the next fetch.
func publish(ctx context.Context, userA, userB string, payload []byte) {
	if cache.Client == nil {
		return
	}
	cache.Client.Publish(ctx, ConversationKey(userA, userB), payload)
}
