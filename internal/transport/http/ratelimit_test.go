package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow())
	assert.True(t, rl.allow())
	assert.False(t, rl.allow())

	now = now.Add(59 * time.Second)
	assert.False(t, rl.allow(), "still the same window")

	now = now.Add(time.Second)
	assert.True(t, rl.allow(), "new window resets the counter")
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0)
	for range 1000 {
		assert.True(t, rl.allow())
	}

	var nilLimiter *rateLimiter
	assert.True(t, nilLimiter.allow())
}
