// Package worker runs the single routing loop that drains the input queue.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/logger"
	"github.com/okian/gestures/pkg/metrics"
)

// Handler consumes routed inputs. *dispatch.Dispatcher satisfies it.
type Handler interface {
	Route(ctx context.Context, s model.PointerSample)
	KeyUp(ctx context.Context, k model.KeyEvent)
}

// Queue defines how the router receives inputs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Input
}

// Worker is a long-running consumer.
type Worker interface {
	// Run processes inputs until ctx is cancelled, Shutdown is called or
	// the queue is closed.
	Run(ctx context.Context)

	// Shutdown stops the worker and waits for the loop to exit.
	Shutdown(ctx context.Context) error
}

// Router is the only goroutine that touches recognizer state. Pointer
// samples, key releases and timer ticks are handled strictly in queue order.
type Router struct {
	queue   Queue
	handler Handler
	name    string

	processed atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewRouter creates a router draining queue into handler.
func NewRouter(queue Queue, handler Handler, opts ...Option) *Router {
	w := &Router{
		queue:    queue,
		handler:  handler,
		name:     "router",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run starts the routing loop.
func (w *Router) Run(ctx context.Context) {
	defer close(w.done)

	inputs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case in, ok := <-inputs:
			if !ok {
				return
			}
			if err := w.process(ctx, in); err != nil {
				w.logger.Error(ctx, "error processing input", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the router.
func (w *Router) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Processed returns the number of inputs handled.
func (w *Router) Processed() int64 { return w.processed.Load() }

// process handles one input. A panicking handler is reported as an error so
// routing continues with the next input.
func (w *Router) process(ctx context.Context, in model.Input) (err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordErrorByComponent("router", "panic")
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	defer w.processed.Add(1)

	switch {
	case in.Tick != nil:
		in.Tick()
	case in.Pointer != nil:
		w.handler.Route(ctx, *in.Pointer)
	case in.Key != nil:
		w.handler.KeyUp(ctx, *in.Key)
	default:
		metrics.RecordErrorByComponent("router", "empty_input")
		return ErrEmptyInput
	}
	return nil
}
