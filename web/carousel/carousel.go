// Package carousel is the circular slide index behind the banner and results carousels.
package carousel

import "time"

// Interval is the auto-advance period
const Interval = 3500 * time.Millisecond

// Carousel tracks the current slide of n items
type Carousel struct {
	n        int
	index    int
	autoPlay bool
	hovered  bool
	elapsed  time.Duration
}

// New creates a carousel over n items
func New(n int, autoPlay bool) *Carousel {
	if n < 0 {
		n = 0
	}
	return &Carousel{n: n, autoPlay: autoPlay}
}

// Len is the number of items
func (c *Carousel) Len() int { return c.n }

// Index is the current item
func (c *Carousel) Index() int { return c.index }

// Offset returns the circular index k steps away from the current item
func (c *Carousel) Offset(k int) int {
	if c.n == 0 {
		return 0
	}
	return ((c.index+k)%c.n + c.n) % c.n
}

// Next moves one item forward, wrapping
func (c *Carousel) Next() {
	c.index = c.Offset(1)
}

// Prev moves one item back, wrapping
func (c *Carousel) Prev() {
	c.index = c.Offset(-1)
}

// Jump selects item i. Out of range values are ignored.
func (c *Carousel) Jump(i int) bool {
	if i < 0 || i >= c.n {
		return false
	}
	c.index = i
	return true
}

// Hover pauses auto-advance while the pointer is over the carousel. Leaving restarts the period.
func (c *Carousel) Hover(on bool) {
	c.hovered = on
	c.elapsed = 0
}

// Advancing reports whether auto-advance is currently running
func (c *Carousel) Advancing() bool {
	return c.autoPlay && c.n > 1 && !c.hovered
}

// Elapse advances time by d
func (c *Carousel) Elapse(d time.Duration) {
	if !c.Advancing() || d <= 0 {
		return
	}
	c.elapsed += d
	for c.elapsed >= Interval {
		c.elapsed -= Interval
		c.Next()
	}
}
