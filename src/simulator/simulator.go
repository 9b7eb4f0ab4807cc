// Drives the fleet: one goroutine per elevator ticks it on a fixed cadence.
package simulator

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"elevsim/src/fleet"
	"elevsim/src/timer"

	"golang.org/x/sync/errgroup"
)

// Engine is the part of the dispatcher the simulator needs.
type Engine interface {
	Tick(id int) (fleet.Elevator, error)
}

type Simulator struct {
	engine   Engine
	interval time.Duration
	actions  []chan timer.TimerAction
	updates  chan fleet.Elevator
	ticks    atomic.Uint64
	mu       sync.Mutex
	paused   bool
}

func New(engine Engine, fleetSize int, interval time.Duration) *Simulator {
	s := &Simulator{
		engine:   engine,
		interval: interval,
		actions:  make([]chan timer.TimerAction, fleetSize),
		updates:  make(chan fleet.Elevator, 4*fleetSize),
	}
	for i := range s.actions {
		s.actions[i] = make(chan timer.TimerAction, 1)
	}
	return s
}

// Updates delivers the state of an elevator after each of its ticks. Updates
// nobody reads in time are dropped.
func (s *Simulator) Updates() <-chan fleet.Elevator {
	return s.updates
}

// Ticks is the number of ticks applied since the simulator was created.
func (s *Simulator) Ticks() uint64 {
	return s.ticks.Load()
}

// Run ticks every elevator until ctx is done or a tick fails. A tick that
// has started always completes before Run returns.
func (s *Simulator) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range s.actions {
		id := i + 1
		tickCh := make(chan struct{})
		g.Go(func() error {
			timer.Ticker(gctx, s.interval, tickCh, s.actions[id-1])
			return nil
		})
		g.Go(func() error {
			return s.runElevator(gctx, id, tickCh)
		})
	}
	slog.Info("Simulation started", "elevators", len(s.actions), "interval", s.interval)
	err := g.Wait()
	slog.Info("Simulation stopped", "ticks", s.Ticks())
	return err
}

func (s *Simulator) runElevator(ctx context.Context, id int, tickCh <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tickCh:
			snap, err := s.engine.Tick(id)
			if err != nil {
				slog.Error("Tick failed", "elevator", id, "err", err)
				return err
			}
			s.ticks.Add(1)
			select {
			case s.updates <- snap:
			default:
			}
		}
	}
}

func (s *Simulator) Pause() {
	s.setPaused(true)
}

func (s *Simulator) Resume() {
	s.setPaused(false)
}

func (s *Simulator) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// setPaused replaces any action still queued for an elevator, so the latest
// request wins even when Run is not running.
func (s *Simulator) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused == paused {
		return
	}
	s.paused = paused
	action := timer.Start
	if paused {
		action = timer.Stop
	}
	for _, ch := range s.actions {
		select {
		case <-ch:
		default:
		}
		ch <- action
	}
	slog.Info("Simulation clock changed", "paused", paused)
}
