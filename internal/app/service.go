// Package service wires the gesture core together and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	eventqueue "github.com/okian/gestures/internal/adapters/mq/queue"
	"github.com/okian/gestures/internal/adapters/mq/worker"
	"github.com/okian/gestures/internal/domain/capture"
	"github.com/okian/gestures/internal/domain/clock"
	"github.com/okian/gestures/internal/domain/dispatch"
	"github.com/okian/gestures/internal/domain/gesture"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/registry"
	"github.com/okian/gestures/internal/domain/tree"
	"github.com/okian/gestures/internal/domain/types"
	"github.com/okian/gestures/pkg/logger"
)

// Service owns the element tree, the recognizers and the routing loop.
type Service struct {
	mu sync.RWMutex

	// Core components
	doc        *tree.Document
	host       *capture.HeadlessHost
	capture    *capture.Manager
	queue      *eventqueue.InMemoryQueue
	dispatcher *dispatch.Dispatcher
	router     *worker.Router
	feed       *Feed

	// Configuration
	queueSize   int
	feedSize    int
	maxPointers int
	families    []string
	textInputs  []string
	strategy    string
	native      bool
	compat      bool
	gestureOpts []gesture.Option
	scheduler   clock.Scheduler

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:   4096,
		feedSize:    256,
		maxPointers: 64,
		strategy:    string(capture.StrategyAuto),
		native:      true,
	}
	for _, f := range gesture.Families() {
		s.families = append(s.families, string(f))
	}

	for _, opt := range opts {
		opt(s)
	}

	s.feed = NewFeed(s.feedSize)
	s.doc = tree.NewDocument()
	return s
}

// Start builds the recognizers and starts the routing loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting gesture service...")

	for _, p := range s.textInputs {
		s.doc.MarkTextInput(p)
	}

	want, err := capture.ParseStrategy(s.strategy)
	if err != nil {
		return fmt.Errorf("capture strategy: %w", err)
	}
	s.host = capture.NewHeadlessHost(s.native, s.compat)
	chosen, err := capture.SelectStrategy(s.host, want)
	if err != nil {
		return fmt.Errorf("capture strategy: %w", err)
	}
	s.capture = capture.NewManager(s.host, chosen, capture.WithLogger(s.logger))

	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))

	var sched clock.Scheduler = clock.NewTicker(s.queue.Post)
	if s.scheduler != nil {
		sched = clock.Posted(s.scheduler, s.queue.Post)
	}

	s.dispatcher = dispatch.New(
		dispatch.WithLogger(s.logger),
		dispatch.WithRegistry(&originRegistry{
			Registry: registry.NewInMemoryRegistry(registry.WithMaxSize(s.maxPointers)),
			doc:      s.doc,
		}),
	)

	deps := gesture.Deps{
		Emitter:   gesture.EmitterFunc(s.deliver),
		Scheduler: sched,
		Capturer:  s.capture,
	}
	opts := append(append([]gesture.Option(nil), s.gestureOpts...), gesture.WithLogger(s.logger))
	for _, name := range s.families {
		family, err := gesture.ParseFamily(name)
		if err != nil {
			return fmt.Errorf("recognizers: %w", err)
		}
		r, err := gesture.New(family, deps, opts...)
		if err != nil {
			return fmt.Errorf("recognizer %s: %w", family, err)
		}
		if err := s.dispatcher.Register(string(family), r); err != nil {
			return fmt.Errorf("recognizer %s: %w", family, err)
		}
	}

	s.router = worker.NewRouter(s.queue, &routing{dispatcher: s.dispatcher, doc: s.doc}, worker.WithLogger(s.logger))
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.router.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "gesture service started",
		logger.Int("queueSize", s.queueSize),
		logger.Int("feedSize", s.feedSize),
		logger.String("capture", string(chosen)),
		logger.Any("recognizers", s.families),
	)
	return nil
}

// Stop shuts down the routing loop. Pending inputs are discarded. Live
// sessions are reset once the loop has exited, which stops hold timers and
// ends capture without emitting.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping gesture service...")

	_ = s.queue.Close()
	if err := s.router.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "router shutdown", logger.Error(err))
	}
	s.cancel()
	s.dispatcher.Reset(ctx)
	s.feed.CloseSubscribers()

	s.started = false
	s.logger.Info(ctx, "gesture service stopped")
}

// deliver runs on the routing goroutine for every synthesized gesture.
func (s *Service) deliver(ctx context.Context, ev model.GestureEvent) {
	g := s.feed.Publish(ev)
	s.logger.Debug(ctx, "gesture delivered",
		logger.String("type", g.Type),
		logger.String("target", g.Target),
		logger.String("id", g.ID),
	)
}

// acquire maps an element path onto the document and holds the node until
// the input carrying it has been routed.
func (s *Service) acquire(path string) model.Element {
	return s.doc.Acquire(path)
}

// release drops the references an input took in acquire.
func (s *Service) release(els ...model.Element) {
	releaseElements(s.doc, els...)
}

// SubmitPointer validates req and queues it for routing.
func (s *Service) SubmitPointer(ctx context.Context, req types.PointerRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	sample := req.Sample(s.acquire)
	if err := s.enqueue(ctx, model.Input{Pointer: &sample}); err != nil {
		s.release(sample.Target, sample.Related)
		return err
	}
	return nil
}

// SubmitKey validates req and queues it for routing.
func (s *Service) SubmitKey(ctx context.Context, req types.KeyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	key := model.KeyEvent{Code: req.Code, Target: s.acquire(req.Target)}
	if err := s.enqueue(ctx, model.Input{Key: &key}); err != nil {
		s.release(key.Target)
		return err
	}
	return nil
}

// RemoveElement detaches the element at path and its subtree. Removal is
// queued behind pending inputs so it never races routing; gestures spanning
// a removed element and a live one lose their common ancestor and are
// suppressed.
func (s *Service) RemoveElement(ctx context.Context, path string) error {
	if strings.Trim(path, tree.PathSeparator+" ") == "" {
		return fmt.Errorf("%w: element path is required", ErrInvalidRequest)
	}
	return s.enqueue(ctx, model.Input{Tick: func() { s.doc.Remove(path) }})
}

func (s *Service) enqueue(ctx context.Context, in model.Input) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	err := s.queue.Enqueue(ctx, in)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, eventqueue.ErrFull):
		return fmt.Errorf("%w: %w", ErrBackpressure, err)
	case errors.Is(err, eventqueue.ErrClosed):
		return fmt.Errorf("%w: %w", ErrNotStarted, err)
	}
	return err
}

// Recent returns up to limit delivered gestures, oldest first.
func (s *Service) Recent(_ context.Context, limit int) []types.Gesture {
	return s.feed.Recent(limit)
}

// Subscribe streams gestures as they are delivered until cancel is called.
func (s *Service) Subscribe(buffer int) (<-chan types.Gesture, func()) {
	return s.feed.Subscribe(buffer)
}

// Recognizers describes the registered recognizers. It is empty before Start.
func (s *Service) Recognizers() []dispatch.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dispatcher == nil {
		return []dispatch.Info{}
	}
	return s.dispatcher.Recognizers()
}

// TouchActions returns the merged touch-action hints of every recognizer.
func (s *Service) TouchActions() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dispatcher == nil {
		return map[string]string{}
	}
	return s.dispatcher.TouchActions()
}

// Capture returns a snapshot of the headless capture host.
func (s *Service) Capture() capture.HeadlessState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.host == nil {
		return capture.HeadlessState{}
	}
	return s.host.Snapshot()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"queueSize":   s.queueSize,
		"feedSize":    s.feedSize,
		"recognizers": s.families,
		"elements":    s.doc.Len(),
		"gestures":    s.feed.Len(),
		"subscribers": s.feed.Subscribers(),
	}

	if s.started {
		stats["queueLength"] = s.queue.Len()
		stats["processed"] = s.router.Processed()
		stats["activePointers"] = s.dispatcher.ActivePointers()
		stats["captureStrategy"] = string(s.capture.Strategy())
		stats["captureSessions"] = s.capture.Len()
	}

	return stats
}
