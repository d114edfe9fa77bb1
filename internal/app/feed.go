package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/types"
	"github.com/okian/gestures/pkg/metrics"
)

// Feed is a bounded ring of recently delivered gestures with fan-out to
// live subscribers. Slow subscribers miss gestures rather than block routing.
type Feed struct {
	mu   sync.RWMutex
	ring []types.Gesture
	next int
	full bool
	seq  uint64

	subs    map[int]chan types.Gesture
	nextSub int

	now func() time.Time
}

// NewFeed returns a feed holding at most size gestures.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 1
	}
	return &Feed{
		ring: make([]types.Gesture, size),
		subs: make(map[int]chan types.Gesture),
		now:  time.Now,
	}
}

// Publish records ev and forwards it to every subscriber.
func (f *Feed) Publish(ev model.GestureEvent) types.Gesture {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	g := types.Gesture{
		ID:         uuid.NewString(),
		Seq:        f.seq,
		Type:       ev.Type,
		Bubbles:    ev.Bubbles,
		Cancelable: ev.Cancelable,
		Detail:     ev.Detail,
		At:         f.now(),
	}
	if ev.Target != nil {
		g.Target = ev.Target.ID()
	}

	f.ring[f.next] = g
	f.next = (f.next + 1) % len(f.ring)
	if f.next == 0 {
		f.full = true
	}

	for _, ch := range f.subs {
		select {
		case ch <- g:
		default:
			metrics.RecordErrorByComponent("feed", "subscriber_slow")
		}
	}
	return g
}

// Recent returns up to limit gestures, oldest first. A non-positive limit
// returns everything retained.
func (f *Feed) Recent(limit int) []types.Gesture {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := f.next
	if f.full {
		n = len(f.ring)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]types.Gesture, 0, limit)
	start := f.next - limit
	if start < 0 {
		start += len(f.ring)
	}
	for i := 0; i < limit; i++ {
		out = append(out, f.ring[(start+i)%len(f.ring)])
	}
	return out
}

// Len returns the number of retained gestures.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.full {
		return len(f.ring)
	}
	return f.next
}

// Subscribe registers a live subscriber. The returned cancel func closes
// the channel and may be called more than once.
func (f *Feed) Subscribe(buffer int) (<-chan types.Gesture, func()) {
	if buffer <= 0 {
		buffer = 64
	}
	ch := make(chan types.Gesture, buffer)

	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = ch
	metrics.UpdateFeedSubscribers(len(f.subs))
	f.mu.Unlock()

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[id]; !ok {
			return
		}
		delete(f.subs, id)
		close(ch)
		metrics.UpdateFeedSubscribers(len(f.subs))
	}
}

// CloseSubscribers closes every live subscription.
func (f *Feed) CloseSubscribers() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
	metrics.UpdateFeedSubscribers(0)
}

// Subscribers returns the number of live subscribers.
func (f *Feed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
