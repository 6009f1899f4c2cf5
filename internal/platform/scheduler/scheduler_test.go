package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerSchedulerRearmReplaces(t *testing.T) {
	s := NewTimerScheduler()

	var first, second atomic.Int32
	s.Arm("id", time.Hour, func() { first.Add(1) })
	s.Arm("id", time.Millisecond, func() { second.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for second.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("rearmed callback never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if first.Load() != 0 {
		t.Fatalf("replaced callback must not fire")
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	s := NewTimerScheduler()

	var fired atomic.Int32
	s.Arm("id", 10*time.Millisecond, func() { fired.Add(1) })
	s.Cancel("id")

	time.Sleep(50 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatalf("cancelled callback must not fire")
	}

	// Cancelling an unknown id is a no-op.
	s.Cancel("missing")
}

func TestManualFireAndArmed(t *testing.T) {
	m := NewManual()

	fired := 0
	m.Arm("id", 90*time.Second, func() { fired++ })

	delay, ok := m.Armed("id")
	if !ok || delay != 90*time.Second {
		t.Fatalf("expected armed callback with its delay, got %v/%v", delay, ok)
	}

	if !m.Fire("id") {
		t.Fatalf("expected Fire to run the armed callback")
	}
	if fired != 1 {
		t.Fatalf("expected one invocation, got %d", fired)
	}
	if m.Fire("id") {
		t.Fatalf("second Fire finds nothing armed")
	}
	if _, ok := m.Armed("id"); ok {
		t.Fatalf("fired callback must be cleared")
	}

	m.Arm("id", time.Second, func() { fired++ })
	m.Cancel("id")
	if m.Fire("id") {
		t.Fatalf("cancelled callback must not fire")
	}
}
