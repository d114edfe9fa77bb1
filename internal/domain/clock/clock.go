// Package clock provides the cancellable periodic tasks used by the hold
// recognizer.
package clock

import (
	"sync"
	"time"
)

// Task is a scheduled periodic callback. Stop is idempotent.
type Task interface {
	Stop()
}

// Scheduler arms periodic tasks and reports the current time.
type Scheduler interface {
	Now() time.Time
	// Every runs fn every d until the returned Task is stopped.
	Every(d time.Duration, fn func()) Task
}

// PostFunc hands a callback to the routing goroutine. It returns false when
// the callback could not be queued.
type PostFunc func(fn func()) bool

// Ticker is the production Scheduler. Ticks are not run on the timer
// goroutine; they are posted so they serialize with pointer routing.
type Ticker struct {
	post PostFunc
	now  func() time.Time
}

// NewTicker returns a Ticker that posts callbacks through post.
func NewTicker(post PostFunc) *Ticker {
	return &Ticker{post: post, now: time.Now}
}

// Now returns the wall clock.
func (t *Ticker) Now() time.Time { return t.now() }

// Every starts a goroutine that posts fn every d.
func (t *Ticker) Every(d time.Duration, fn func()) Task {
	task := &tickerTask{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go task.run(t.post, fn)
	return task
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (k *tickerTask) run(post PostFunc, fn func()) {
	for {
		select {
		case <-k.done:
			return
		case <-k.ticker.C:
			// A full queue drops the tick; the next one fires on schedule.
			post(fn)
		}
	}
}

func (k *tickerTask) Stop() {
	k.once.Do(func() {
		k.ticker.Stop()
		close(k.done)
	})
}

// Posted wraps a Scheduler whose callbacks would otherwise run on a foreign
// goroutine (a Manual advanced by a test, say) so each run is handed to post
// instead.
func Posted(inner Scheduler, post PostFunc) Scheduler {
	return posted{inner: inner, post: post}
}

type posted struct {
	inner Scheduler
	post  PostFunc
}

func (p posted) Now() time.Time { return p.inner.Now() }

func (p posted) Every(d time.Duration, fn func()) Task {
	return p.inner.Every(d, func() { p.post(fn) })
}
