package dispatcher

import (
	"log/slog"
	"sync"

	"elevsim/src/config"
	"elevsim/src/fleet"
)

// Dispatcher owns the fleet and serializes every operation on it through a
// single state manager goroutine. A command that reaches the manager always
// runs to completion, so ticks and assignments never interleave.
type Dispatcher struct {
	cfg       config.Config
	cmds      chan stateCmd
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// New validates cfg, creates the fleet and starts the state manager.
func New(cfg config.Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Dispatcher{
		cfg:     cfg,
		cmds:    make(chan stateCmd),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	f := fleet.New(cfg.FloorMin, cfg.FloorMax, cfg.FleetSize)
	go d.manage(f)
	slog.Info("Dispatcher started",
		"floors", cfg.Floors(),
		"floorMin", cfg.FloorMin,
		"floorMax", cfg.FloorMax,
		"fleetSize", cfg.FleetSize)
	return d, nil
}

func (d *Dispatcher) manage(f *fleet.Fleet) {
	defer close(d.stopped)
	for {
		select {
		case cmd := <-d.cmds:
			cmd.exec(f)
		case <-d.done:
			return
		}
	}
}

// do runs exec on the manager goroutine and waits for it to finish.
func (d *Dispatcher) do(exec func(f *fleet.Fleet)) error {
	finished := make(chan struct{})
	cmd := stateCmd{
		exec: func(f *fleet.Fleet) {
			defer close(finished)
			exec(f)
		},
	}
	select {
	case d.cmds <- cmd:
	case <-d.done:
		return ErrClosed
	}
	<-finished
	return nil
}

// Close stops the state manager. Later operations return ErrClosed.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	<-d.stopped
}

func (d *Dispatcher) Config() config.Config {
	return d.cfg
}
