package game

import (
	"sync"
	"time"
)

// TurnTimer is the cancellable handle of one per-session countdown. At most
// one live handle exists per session; installing a new one always cancels
// the previous handle first, so a stale timer can never fire into a turn it
// does not own.
type TurnTimer struct {
	stop chan struct{}
	once sync.Once
}

func newTurnTimer() *TurnTimer {
	return &TurnTimer{stop: make(chan struct{})}
}

// Cancel stops the countdown. Safe to call more than once.
func (t *TurnTimer) Cancel() {
	t.once.Do(func() { close(t.stop) })
}

// run ticks once per interval until cancelled. tick returns false when the
// countdown is finished and the goroutine should exit.
func (t *TurnTimer) run(interval time.Duration, tick func() bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if !tick() {
				return
			}
		}
	}
}
