package timer

import (
	"context"
	"log/slog"
	"time"
)

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

// Ticker sends on tickCh once per interval until ctx is done. A Stop action
// pauses it and a Start action resumes it with a fresh interval. The ticker
// starts running. A tick still waiting for a receiver when an action arrives
// is dropped.
func Ticker(ctx context.Context, interval time.Duration, tickCh chan<- struct{}, action <-chan TimerAction) {
	t := time.NewTicker(interval)
	defer t.Stop()
	running := true

	handle := func(a TimerAction) {
		switch a {
		case Start:
			if !running {
				t.Reset(interval)
				running = true
				slog.Debug("Ticker resumed")
			}
		case Stop:
			if running {
				t.Stop()
				drain(t)
				running = false
				slog.Debug("Ticker paused")
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case a := <-action:
			handle(a)
		case <-t.C:
			select {
			case tickCh <- struct{}{}:
			case a := <-action:
				handle(a)
			case <-ctx.Done():
				return
			}
		}
	}
}

// Empties a tick that fired before the ticker was stopped.
func drain(t *time.Ticker) {
	select {
	case <-t.C:
	default:
	}
}
