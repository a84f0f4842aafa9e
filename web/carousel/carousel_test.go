package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircularNavigation(t *testing.T) {
	c := New(3, false)

	c.Prev()
	assert.Equal(t, 2, c.Index())
	c.Next()
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 2, c.Offset(-1))
	assert.Equal(t, 1, c.Offset(4))

	assert.True(t, c.Jump(1))
	assert.False(t, c.Jump(3))
	assert.Equal(t, 1, c.Index())
}

func TestAutoAdvance(t *testing.T) {
	c := New(3, true)

	c.Elapse(Interval - time.Millisecond)
	assert.Equal(t, 0, c.Index())
	c.Elapse(time.Millisecond)
	assert.Equal(t, 1, c.Index())
	c.Elapse(2 * Interval)
	assert.Equal(t, 0, c.Index())
}

func TestHoverPauses(t *testing.T) {
	c := New(2, true)
	c.Elapse(Interval / 2)

	c.Hover(true)
	c.Elapse(10 * Interval)
	assert.Equal(t, 0, c.Index())

	c.Hover(false)
	c.Elapse(Interval / 2)
	assert.Equal(t, 0, c.Index())
	c.Elapse(Interval / 2)
	assert.Equal(t, 1, c.Index())
}

func TestSingleItemNeverAdvances(t *testing.T) {
	for _, n := range []int{0, 1} {
		c := New(n, true)
		c.Elapse(time.Hour)
		assert.Equal(t, 0, c.Index())
		assert.False(t, c.Advancing())
	}
	assert.Equal(t, 0, New(0, true).Offset(1))
}
