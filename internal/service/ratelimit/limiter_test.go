package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsCapacity(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("sync", 2, 0))
	assert.True(t, l.Allow("sync", 2, 0))
	assert.False(t, l.Allow("sync", 2, 0))
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("a", 1, 0))
	assert.False(t, l.Allow("a", 1, 0))
	assert.True(t, l.Allow("b", 1, 0))
}

func TestAllowRefills(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("sync", 1, 100))
	assert.False(t, l.Allow("sync", 1, 100))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, l.Allow("sync", 1, 100))
}
