package tui

import (
	"sort"
	"time"

	"pixelcooked.dev/internal/sim/kitchen"
)

// HoldTracker turns key repeats into press/release pairs. Terminals report no key release,
// so a key counts as held until timeout passes without a repeat.
type HoldTracker struct {
	timeout time.Duration
	seen    map[Binding]time.Time
}

func NewHoldTracker(timeout time.Duration) *HoldTracker {
	return &HoldTracker{timeout: timeout, seen: map[Binding]time.Time{}}
}

// Observe records a key event. It returns a press the first time a key goes down.
func (h *HoldTracker) Observe(b Binding, now time.Time) (kitchen.InputEvent, bool) {
	_, held := h.seen[b]
	h.seen[b] = now
	if held {
		return kitchen.InputEvent{}, false
	}
	return kitchen.Press(b.Player, b.Signal), true
}

// Expire releases every key not repeated within the timeout, ordered by player then signal.
func (h *HoldTracker) Expire(now time.Time) []kitchen.InputEvent {
	var gone []Binding
	for b, at := range h.seen {
		if now.Sub(at) >= h.timeout {
			gone = append(gone, b)
		}
	}
	sortBindings(gone)
	out := make([]kitchen.InputEvent, 0, len(gone))
	for _, b := range gone {
		delete(h.seen, b)
		out = append(out, kitchen.Release(b.Player, b.Signal))
	}
	return out
}

// ReleaseAll releases every held key.
func (h *HoldTracker) ReleaseAll() []kitchen.InputEvent {
	var all []Binding
	for b := range h.seen {
		all = append(all, b)
	}
	sortBindings(all)
	out := make([]kitchen.InputEvent, 0, len(all))
	for _, b := range all {
		out = append(out, kitchen.Release(b.Player, b.Signal))
	}
	clear(h.seen)
	return out
}

func (h *HoldTracker) Held() int { return len(h.seen) }

func sortBindings(bs []Binding) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].Player != bs[j].Player {
			return bs[i].Player < bs[j].Player
		}
		return bs[i].Signal < bs[j].Signal
	})
}
