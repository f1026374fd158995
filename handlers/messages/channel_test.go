package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKey_Symmetric(t *testing.T) {
	a := "11111111-1111-1111-1111-111111111111"
	b := "22222222-2222-2222-2222-222222222222"

	assert.Equal(t, ConversationKey(a, b), ConversationKey(b, a))
}

func TestConversationKey_Ordering(t *testing.T) {
	key := ConversationKey("bbb", "aaa")
	assert.Equal(t, "chat:aaa:bbb", key)
}

func TestConversationKey_DistinctPairs(t *testing.T) {
	assert.NotEqual(t, ConversationKey("a", "b"), ConversationKey("a", "c"))
}
