package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceBounds(t *testing.T) {
	assert.Equal(t, 40, Confidence(0))
	assert.Equal(t, 42, Confidence(1))
	assert.Equal(t, 50, Confidence(5))
	assert.Equal(t, 95, Confidence(100))
	assert.Equal(t, 40, Confidence(-3))
}

func TestConfidenceMonotonic(t *testing.T) {
	prev := Confidence(0)
	for n := 1; n <= 200; n++ {
		cur := Confidence(n)
		assert.GreaterOrEqual(t, cur, prev, "n=%d", n)
		assert.LessOrEqual(t, cur, 95)
		prev = cur
	}
}
