package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestRateLimiterSendMessageAction(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("alice", "send_message")
		assert.True(t, allowed)
	}

	allowed, wait := limiter.Allow("alice", "send_message")
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))

	// Other users and actions have their own buckets.
	allowed, _ = limiter.Allow("bob", "send_message")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("alice", "rate_user")
	assert.True(t, allowed)
}

func TestRateLimiterStatus(t *testing.T) {
	limiter := NewRateLimiter()

	tokens, maxTokens := limiter.GetStatus("alice", "send_message")
	assert.Equal(t, 0, tokens)
	assert.Equal(t, 0, maxTokens)

	limiter.Allow("alice", "send_message")
	tokens, maxTokens = limiter.GetStatus("alice", "send_message")
	assert.Equal(t, 9, tokens)
	assert.Equal(t, 10, maxTokens)
}
