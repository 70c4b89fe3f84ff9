package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.True(t, rl.IsAllowed("10.0.0.1"))
	assert.True(t, rl.IsAllowed("10.0.0.1"))
	assert.True(t, rl.IsAllowed("10.0.0.1"))
	assert.False(t, rl.IsAllowed("10.0.0.1"))
}

func TestKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.IsAllowed("10.0.0.1"))
	assert.False(t, rl.IsAllowed("10.0.0.1"))
	assert.True(t, rl.IsAllowed("10.0.0.2"))
}

func TestWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.IsAllowed("10.0.0.1"))
	assert.False(t, rl.IsAllowed("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.IsAllowed("10.0.0.1"))
}

func TestGetRemainingRequests(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.Equal(t, 3, rl.GetRemainingRequests("10.0.0.1"))
	rl.IsAllowed("10.0.0.1")
	assert.Equal(t, 2, rl.GetRemainingRequests("10.0.0.1"))
}
