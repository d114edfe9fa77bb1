// Package queue serializes pointer samples, key releases and timer ticks
// into the single stream the router consumes.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/metrics"
)

const defaultQueueCapacity = 4096

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an input without blocking. It returns ErrFull or
	// ErrClosed when the input was not queued.
	Enqueue(ctx context.Context, in model.Input) error

	// Dequeue returns a channel of inputs in arrival order. It is closed
	// once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan model.Input

	// Len returns the number of pending inputs.
	Len() int

	// Capacity returns the maximum number of pending inputs.
	Capacity() int

	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	inputs   chan model.Input
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.inputs = make(chan model.Input, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds an input to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, in model.Input) error {
	start := time.Now()
	defer func() {
		metrics.RecordQueueProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return ErrClosed
	}

	select {
	case q.inputs <- in:
		metrics.RecordQueueEnqueue()
		q.observe()
		return nil
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return ctx.Err()
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Post enqueues a timer callback. It satisfies clock.PostFunc.
func (q *InMemoryQueue) Post(fn func()) bool {
	return q.Enqueue(context.Background(), model.Input{Tick: fn}) == nil
}

// Dequeue returns a channel that receives inputs as they become available.
// There should be one consumer; a second one would break routing order.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan model.Input {
	out := make(chan model.Input)
	go func() {
		defer close(out)
		for in := range q.inputs {
			select {
			case out <- in:
				metrics.RecordQueueDequeue()
				q.observe()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of pending inputs.
func (q *InMemoryQueue) Len() int {
	size := len(q.inputs)
	q.observe()
	return size
}

// Capacity returns the configured capacity.
func (q *InMemoryQueue) Capacity() int { return q.capacity }

func (q *InMemoryQueue) observe() {
	size := len(q.inputs)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}

// Close stops accepting inputs. Pending inputs are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.inputs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
