// Package popup decides which promotional posters a visitor sees and drives their rotation.
//
// The controller is advanced by elapsed time rather than wall clock timers so the same rules
// can be rendered server side, mirrored by the browser script and exercised in tests.
package popup

import (
	"regexp"
	"strings"
	"time"

	"github.com/sahilchouksey/institute-site/model"
)

const (
	// EntranceDelay is how long after mount the popup appears
	EntranceDelay = 2 * time.Second
	// RotateInterval is the auto-advance period while visible
	RotateInterval = 5 * time.Second
	// SeenCookiePrefix prefixes the per-item session marker
	SeenCookiePrefix = "seen_popup_"
)

var imageExt = regexp.MustCompile(`(?i)\.(jpeg|jpg|gif|png|webp|bmp|svg)$`)

// IsImageLink reports whether a popup link points at something displayable as a poster
func IsImageLink(link string) bool {
	return imageExt.MatchString(link) ||
		strings.Contains(link, "/uploads/") ||
		strings.Contains(link, "images") ||
		strings.Contains(link, "cloudinary")
}

// Eligible keeps POSTER items and POPUP items with an image link, in source order.
// The first element is treated as the latest.
func Eligible(notifications []model.Notification) []model.Notification {
	out := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		switch n.Type {
		case model.NotificationTypePoster:
			out = append(out, n)
		case model.NotificationTypePopup:
			if n.Link != nil && *n.Link != "" && IsImageLink(*n.Link) {
				out = append(out, n)
			}
		}
	}
	return out
}

// ImageURL is the image shown for an eligible item
func ImageURL(n model.Notification) string {
	if n.Link == nil {
		return ""
	}
	return *n.Link
}

// SeenStore remembers, for one browsing session, which items were dismissed
type SeenStore interface {
	Seen(id string) bool
	MarkSeen(id string)
}

// MemoryStore is a SeenStore backed by a map
type MemoryStore map[string]bool

func (m MemoryStore) Seen(id string) bool { return m[id] }
func (m MemoryStore) MarkSeen(id string)  { m[id] = true }

// Controller is the popup state machine
type Controller struct {
	source []model.Notification
	store  SeenStore

	items       []model.Notification
	index       int
	active      bool
	visible     bool
	autoAdvance bool
	pending     time.Duration
	sinceTick   time.Duration
}

// NewController creates a controller over the merged notification feed
func NewController(notifications []model.Notification, store SeenStore) *Controller {
	return &Controller{source: notifications, store: store}
}

// Mount filters the feed and schedules the entrance. It returns false when nothing will be
// shown, which includes the case where the latest item was already seen this session even if
// older items were not.
func (c *Controller) Mount() bool {
	*c = Controller{source: c.source, store: c.store}

	items := Eligible(c.source)
	if len(items) == 0 {
		return false
	}
	if c.store != nil && c.store.Seen(items[0].ID) {
		return false
	}

	c.items = items
	c.active = true
	c.autoAdvance = true
	c.pending = EntranceDelay
	return true
}

// Elapse advances time by d: first the entrance delay, then auto-rotation
func (c *Controller) Elapse(d time.Duration) {
	if !c.active || d <= 0 {
		return
	}

	if !c.visible {
		if d < c.pending {
			c.pending -= d
			return
		}
		d -= c.pending
		c.pending = 0
		c.visible = true
	}

	if !c.autoAdvance || len(c.items) <= 1 {
		return
	}

	c.sinceTick += d
	for c.sinceTick >= RotateInterval {
		c.sinceTick -= RotateInterval
		c.index = (c.index + 1) % len(c.items)
	}
}

// Next shows the following item. Manual navigation stops auto-rotation until the next Mount.
func (c *Controller) Next() {
	if !c.visible {
		return
	}
	c.stopRotation()
	c.index = (c.index + 1) % len(c.items)
}

// Prev shows the previous item and stops auto-rotation like Next
func (c *Controller) Prev() {
	if !c.visible {
		return
	}
	c.stopRotation()
	c.index = (c.index - 1 + len(c.items)) % len(c.items)
}

func (c *Controller) stopRotation() {
	c.autoAdvance = false
	c.sinceTick = 0
}

// Close hides the popup and marks only the latest item as seen
func (c *Controller) Close() {
	if !c.active {
		return
	}
	c.active = false
	c.visible = false
	c.stopRotation()
	if c.store != nil && len(c.items) > 0 {
		c.store.MarkSeen(c.items[0].ID)
	}
}

// Visible reports whether the popup is on screen
func (c *Controller) Visible() bool { return c.visible }

// Active reports whether the popup is mounted and not yet closed
func (c *Controller) Active() bool { return c.active }

// Rotating reports whether auto-advance is still running
func (c *Controller) Rotating() bool { return c.autoAdvance && len(c.items) > 1 }

// Index is the position of the current item
func (c *Controller) Index() int { return c.index }

// Items are the eligible items in display order
func (c *Controller) Items() []model.Notification { return c.items }

// Current returns the item on screen, if any
func (c *Controller) Current() (model.Notification, bool) {
	if !c.active || len(c.items) == 0 {
		return model.Notification{}, false
	}
	return c.items[c.index], true
}
