package tui

import (
	"testing"
	"time"
)

func TestIntentLatchHold(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIntentLatch(100 * time.Millisecond)

	l.PressUp(t0)
	if up, down := l.Expire(t0.Add(50 * time.Millisecond)); !up || down {
		t.Fatalf("inside the window: up=%v down=%v", up, down)
	}

	// A repeat extends the hold.
	l.PressUp(t0.Add(80 * time.Millisecond))
	if up, _ := l.Expire(t0.Add(150 * time.Millisecond)); !up {
		t.Fatal("repeat should extend the hold")
	}

	if up, _ := l.Expire(t0.Add(180 * time.Millisecond)); up {
		t.Error("intent should expire after the window")
	}
}

func TestIntentLatchOppositeCancels(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIntentLatch(time.Second)

	l.PressUp(t0)
	l.PressDown(t0.Add(10 * time.Millisecond))

	up, down := l.Expire(t0.Add(20 * time.Millisecond))
	if up || !down {
		t.Errorf("dive should replace climb: up=%v down=%v", up, down)
	}
}

func TestIntentLatchZeroWindow(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIntentLatch(0)

	l.PressDown(t0)
	if _, down := l.Expire(t0); down {
		t.Error("zero window should release at the first expiry check")
	}
}

func TestIntentLatchReset(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIntentLatch(time.Second)

	l.PressUp(t0)
	l.Reset()

	if up, down := l.Expire(t0); up || down {
		t.Error("Reset should drop intents")
	}
}
