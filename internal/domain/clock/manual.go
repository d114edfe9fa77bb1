package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler. Time only moves when Advance is
// called, and due callbacks run synchronously inside Advance in deadline
// order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*manualTask
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Every arms a periodic task whose first run is d from now.
func (m *Manual) Every(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{clock: m, period: d, next: m.now.Add(d), fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of armed tasks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves time forward by d, running every callback that falls due.
// Callbacks may stop tasks or arm new ones.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		due := m.nextDue(target)
		if due == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = due.next
		due.next = due.next.Add(due.period)
		fn := due.fn
		m.mu.Unlock()

		fn()
	}
}

// nextDue returns the earliest task due at or before target. Must be called
// with m.mu held.
func (m *Manual) nextDue(target time.Time) *manualTask {
	sort.SliceStable(m.tasks, func(i, j int) bool { return m.tasks[i].next.Before(m.tasks[j].next) })
	if len(m.tasks) == 0 || m.tasks[0].next.After(target) {
		return nil
	}
	return m.tasks[0]
}

func (m *Manual) remove(t *manualTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.tasks {
		if x == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

type manualTask struct {
	clock  *Manual
	period time.Duration
	next   time.Time
	fn     func()
}

func (t *manualTask) Stop() { t.clock.remove(t) }
