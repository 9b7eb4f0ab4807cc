package dispatcher

import (
	"elevsim/src/fleet"
)

// Unreachable is reported by Estimate for elevators that cannot serve a floor.
const Unreachable = -1

// ticksToServe is called by Estimate for each elevator
//   - returns Unreachable if the elevator is in alert
//   - simulates ticks on a deep copy with floor added as a cab target
//   - stops once the door opens at floor, or gives up after a bounded number of ticks
func ticksToServe(f *fleet.Fleet, e *fleet.Elevator, floor int) (int, error) {
	if e.Alert {
		return Unreachable, nil
	}
	if e.Floor == floor {
		return 0, nil
	}

	simElev, err := fleet.Copy(e)
	if err != nil {
		return Unreachable, err
	}
	simElev.Targets[floor] = true
	sim := &fleet.Fleet{
		FloorMin:  f.FloorMin,
		FloorMax:  f.FloorMax,
		Elevators: []*fleet.Elevator{&simElev},
		External:  make(map[int]bool),
	}

	limit := 4 * (f.FloorMax - f.FloorMin + 1)
	for ticks := 1; ticks <= limit; ticks++ {
		step(sim, &simElev)
		if simElev.Floor == floor && simElev.DoorOpen {
			return ticks, nil
		}
	}
	return Unreachable, nil
}
