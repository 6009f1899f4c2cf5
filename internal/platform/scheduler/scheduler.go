package scheduler

import (
	"sync"
	"time"
)

// Scheduler arms one-shot callbacks keyed by id. Re-arming an id replaces the
// pending timer; Cancel stops it. Session and poll deadlines both ride on it.
type Scheduler interface {
	Arm(id string, delay time.Duration, fn func())
	Cancel(id string)
}

// TimerScheduler runs callbacks on time.AfterFunc timers.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[string]*time.Timer)}
}

func (s *TimerScheduler) Arm(id string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[id]; ok {
		existing.Stop()
	}
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
}

func (s *TimerScheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[id]; ok {
		existing.Stop()
		delete(s.timers, id)
	}
}

// Manual is a test scheduler. Callbacks fire only when Fire is called.
type Manual struct {
	mu      sync.Mutex
	pending map[string]func()
	delays  map[string]time.Duration
}

func NewManual() *Manual {
	return &Manual{
		pending: make(map[string]func()),
		delays:  make(map[string]time.Duration),
	}
}

func (m *Manual) Arm(id string, delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[id] = fn
	m.delays[id] = delay
}

func (m *Manual) Cancel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, id)
	delete(m.delays, id)
}

// Fire runs and clears the pending callback for id, reporting whether one
// was armed.
func (m *Manual) Fire(id string) bool {
	m.mu.Lock()
	fn, ok := m.pending[id]
	delete(m.pending, id)
	delete(m.delays, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	fn()
	return true
}

// Armed reports whether id has a pending callback and its delay.
func (m *Manual) Armed(id string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delay, ok := m.delays[id]
	return delay, ok
}
