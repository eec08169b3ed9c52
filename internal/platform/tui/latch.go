package tui

import "time"

// intentLatch turns terminal key presses into held intents. Terminals
// report presses (and auto-repeats) but never releases, so an intent stays
// held until hold has passed since its last press. Pressing one direction
// drops the other.
type intentLatch struct {
	hold     time.Duration
	upUntil  time.Time
	dnUntil  time.Time
	up, down bool
}

func newIntentLatch(hold time.Duration) *intentLatch {
	return &intentLatch{hold: hold}
}

// PressUp latches the climb intent.
func (l *intentLatch) PressUp(now time.Time) {
	l.up, l.down = true, false
	l.upUntil = now.Add(l.hold)
}

// PressDown latches the dive intent.
func (l *intentLatch) PressDown(now time.Time) {
	l.down, l.up = true, false
	l.dnUntil = now.Add(l.hold)
}

// Expire drops intents whose hold window has passed and reports which
// directions are still held.
func (l *intentLatch) Expire(now time.Time) (up, down bool) {
	if l.up && !now.Before(l.upUntil) {
		l.up = false
	}
	if l.down && !now.Before(l.dnUntil) {
		l.down = false
	}
	return l.up, l.down
}

// Reset drops both intents.
func (l *intentLatch) Reset() {
	l.up, l.down = false, false
}
