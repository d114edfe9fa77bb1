// Package registry maps live pointer identifiers to the element their down
// event first targeted, so later move/up events can be routed generically.
package registry

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/metrics"
)

// defaultMaxPointers bounds the table when a stream leaks downs without ups.
const defaultMaxPointers = 64

// Registry is the pointer registry owned by the dispatcher.
//
// Lifecycle: Set on down, Get on move/up/cancel, Delete after up/cancel has
// been routed to every recognizer.
type Registry interface {
	// Set records id -> el, replacing any entry for a repeated down. A new
	// id is refused with ErrFull once the bound is reached; live entries are
	// never evicted.
	Set(ctx context.Context, id model.PointerID, el model.Element) error

	// Get returns the origin element for id.
	Get(ctx context.Context, id model.PointerID) (model.Element, bool)

	// Delete forgets id. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id model.PointerID)

	// IDs returns the live pointer ids in registration order.
	IDs() []model.PointerID

	// Len returns the number of live pointers. Safe from any goroutine.
	Len() int
}

type entry struct {
	el  model.Element
	seq uint64
}

// inMemoryRegistry implements Registry with a map. When maxSize > 0 new
// pointers are refused at capacity.
type inMemoryRegistry struct {
	mu      sync.RWMutex
	entries map[model.PointerID]entry
	seq     uint64
	maxSize int
	size    atomic.Int64
}

// NewInMemoryRegistry creates a registry with configuration options.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		maxSize: defaultMaxPointers,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.entries = make(map[model.PointerID]entry)
	return r
}

func (r *inMemoryRegistry) Set(_ context.Context, id model.PointerID, el model.Element) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		if r.maxSize > 0 && len(r.entries) >= r.maxSize {
			return ErrFull
		}
		r.size.Add(1)
	}
	r.seq++
	r.entries[id] = entry{el: el, seq: r.seq}
	metrics.UpdateActivePointers(int(r.size.Load()))
	return nil
}

func (r *inMemoryRegistry) Get(_ context.Context, id model.PointerID) (model.Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e.el, ok
}

func (r *inMemoryRegistry) Delete(_ context.Context, id model.PointerID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		delete(r.entries, id)
		r.size.Add(-1)
		metrics.UpdateActivePointers(int(r.size.Load()))
	}
}

func (r *inMemoryRegistry) Len() int {
	return int(r.size.Load())
}

func (r *inMemoryRegistry) IDs() []model.PointerID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]model.PointerID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return r.entries[ids[i]].seq < r.entries[ids[j]].seq })
	return ids
}
