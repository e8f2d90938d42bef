package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTriggerCoalesces(t *testing.T) {
	d := New(30 * time.Millisecond)

	var fired atomic.Int32
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		d.Trigger(func() {
			fired.Add(1)
			close(done)
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
	// settle, then confirm nothing else arrives
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestLastCallbackWins(t *testing.T) {
	d := New(20 * time.Millisecond)

	got := make(chan string, 2)
	d.Trigger(func() { got <- "first" })
	d.Trigger(func() { got <- "second" })

	select {
	case v := <-got:
		if v != "second" {
			t.Errorf("got %q, want second", v)
		}
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
}

func TestCancel(t *testing.T) {
	d := New(20 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	if !d.Pending() {
		t.Error("should be pending after Trigger")
	}

	d.Cancel()
	if d.Pending() {
		t.Error("should not be pending after Cancel")
	}

	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times after cancel, want 0", got)
	}
}

func TestFlush(t *testing.T) {
	d := New(time.Hour)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })

	d.Flush()
	if got := fired.Load(); got != 1 {
		t.Fatalf("fired %d times after flush, want 1", got)
	}
	if d.Pending() {
		t.Error("should not be pending after Flush")
	}

	// a second flush with nothing pending is a no-op
	d.Flush()
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times after second flush, want 1", got)
	}
}
