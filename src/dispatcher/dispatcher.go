package dispatcher

import (
	"fmt"
	"log/slog"

	"elevsim/src/fleet"
	"elevsim/src/types"
)

func (d *Dispatcher) checkID(id int) error {
	if id < 1 || id > d.cfg.FleetSize {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidElevatorID, id, d.cfg.FleetSize)
	}
	return nil
}

func (d *Dispatcher) checkFloor(floor int) error {
	if floor < d.cfg.FloorMin || floor > d.cfg.FloorMax {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidFloor, floor, d.cfg.FloorMin, d.cfg.FloorMax)
	}
	return nil
}

// Tick advances elevator id by one simulated time unit and returns its state
// afterwards. Ticking an alerted elevator changes nothing.
func (d *Dispatcher) Tick(id int) (fleet.Elevator, error) {
	if err := d.checkID(id); err != nil {
		return fleet.Elevator{}, err
	}
	var snap fleet.Elevator
	var copyErr error
	err := d.do(func(f *fleet.Fleet) {
		e := f.Get(id)
		step(f, e)
		snap, copyErr = fleet.Copy(e)
	})
	if err != nil {
		return fleet.Elevator{}, err
	}
	if snap.DoorOpen {
		slog.Debug("Door open", "elevator", id, "floor", snap.Floor)
	}
	return snap, copyErr
}

// AssignInternal adds a cab request. It is always honored and returns id.
func (d *Dispatcher) AssignInternal(id, floor int) (int, error) {
	if err := d.checkID(id); err != nil {
		return NoElevator, err
	}
	if err := d.checkFloor(floor); err != nil {
		return NoElevator, err
	}
	err := d.do(func(f *fleet.Fleet) {
		assignInternal(f.Get(id), floor)
	})
	if err != nil {
		return NoElevator, err
	}
	slog.Info("Cab request", "elevator", id, "floor", floor)
	return id, nil
}

// AssignExternal binds a hallway call to an elevator. It returns NoElevator,
// without error, when every elevator is in alert.
func (d *Dispatcher) AssignExternal(floor int, hall types.HallType) (int, error) {
	if err := d.checkFloor(floor); err != nil {
		return NoElevator, err
	}
	var id int
	var phase Phase
	err := d.do(func(f *fleet.Fleet) {
		id, phase = assignExternal(f, floor, hall)
	})
	if err != nil {
		return NoElevator, err
	}
	if id == NoElevator {
		slog.Warn("No elevator available for hallway call", "floor", floor, "direction", hall)
		return NoElevator, nil
	}
	slog.Info("Hallway call assigned", "floor", floor, "direction", hall, "elevator", id, "phase", phase)
	return id, nil
}

// ToggleAlert flips the alert flag of elevator id and returns the new value.
func (d *Dispatcher) ToggleAlert(id int) (bool, error) {
	if err := d.checkID(id); err != nil {
		return false, err
	}
	var alert bool
	err := d.do(func(f *fleet.Fleet) {
		alert = toggleAlert(f, f.Get(id))
	})
	if err != nil {
		return false, err
	}
	if alert {
		slog.Warn("Elevator entered alert, hallway calls dispatched again", "elevator", id)
	} else {
		slog.Info("Elevator alert cleared", "elevator", id)
	}
	return alert, nil
}

// OpenDoor opens the door of an idle, non-alerted elevator. It reports
// whether the request was honored.
func (d *Dispatcher) OpenDoor(id int) (bool, error) {
	return d.door(id, true)
}

// CloseDoor closes the door of an idle, non-alerted elevator.
func (d *Dispatcher) CloseDoor(id int) (bool, error) {
	return d.door(id, false)
}

func (d *Dispatcher) door(id int, open bool) (bool, error) {
	if err := d.checkID(id); err != nil {
		return false, err
	}
	var honored bool
	err := d.do(func(f *fleet.Fleet) {
		honored = setDoor(f.Get(id), open)
	})
	if err != nil {
		return false, err
	}
	if !honored {
		slog.Debug("Door request refused", "elevator", id, "open", open)
	}
	return honored, nil
}

// Estimate returns, per elevator in index order, the ticks it would need to
// open its door at floor, or Unreachable. The fleet is not modified.
func (d *Dispatcher) Estimate(floor int) ([]int, error) {
	if err := d.checkFloor(floor); err != nil {
		return nil, err
	}
	var ticks []int
	var simErr error
	err := d.do(func(f *fleet.Fleet) {
		ticks = make([]int, len(f.Elevators))
		for i, e := range f.Elevators {
			if ticks[i], simErr = ticksToServe(f, e, floor); simErr != nil {
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return ticks, simErr
}

// Elevator returns a copy of the state of elevator id.
func (d *Dispatcher) Elevator(id int) (fleet.Elevator, error) {
	if err := d.checkID(id); err != nil {
		return fleet.Elevator{}, err
	}
	var snap fleet.Elevator
	var copyErr error
	err := d.do(func(f *fleet.Fleet) {
		snap, copyErr = fleet.Copy(f.Get(id))
	})
	if err != nil {
		return fleet.Elevator{}, err
	}
	return snap, copyErr
}

// Elevators returns copies of every elevator in index order.
func (d *Dispatcher) Elevators() ([]fleet.Elevator, error) {
	var snaps []fleet.Elevator
	var copyErr error
	err := d.do(func(f *fleet.Fleet) {
		snaps = make([]fleet.Elevator, 0, len(f.Elevators))
		for _, e := range f.Elevators {
			snap, err := fleet.Copy(e)
			if err != nil {
				copyErr = err
				return
			}
			snaps = append(snaps, snap)
		}
	})
	if err != nil {
		return nil, err
	}
	return snaps, copyErr
}

// ExternalRequests returns the outstanding hallway call floors, ascending.
func (d *Dispatcher) ExternalRequests() ([]int, error) {
	var floors []int
	err := d.do(func(f *fleet.Fleet) {
		floors = f.ExternalFloors()
	})
	return floors, err
}
