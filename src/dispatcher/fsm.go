// Contains the per-elevator state machine: movement, arrival and direction choice.
package dispatcher

import (
	"elevsim/src/fleet"
	"elevsim/src/types"
	"elevsim/src/utils"
)

// step advances one elevator by one simulated time unit. An alerted elevator
// stalls in place with its door state frozen.
func step(f *fleet.Fleet, e *fleet.Elevator) {
	if e.Alert {
		return
	}
	// An idle elevator with work elsewhere departs in the same tick.
	if e.Dir == types.MD_Idle && !shouldStopHere(f, e) {
		e.Dir = chooseDirection(e)
	}
	move(f, e)

	if shouldStopHere(f, e) {
		clearAtCurrentFloor(f, e)
	} else {
		e.DoorOpen = false
	}
	e.Dir = chooseDirection(e)
}

// move goes one floor in the travel direction, never past either end.
func move(f *fleet.Fleet, e *fleet.Elevator) {
	if next := e.Floor + e.Dir.Step(); f.ValidFloor(next) {
		e.Floor = next
	}
}

// Checks if the current floor is a cab target or an outstanding hallway call.
func shouldStopHere(f *fleet.Fleet, e *fleet.Elevator) bool {
	return e.Targets[e.Floor] || f.External[e.Floor]
}

// Opens the door and clears the current floor from the cab targets and the
// hallway calls.
func clearAtCurrentFloor(f *fleet.Fleet, e *fleet.Elevator) {
	e.DoorOpen = true
	delete(e.Targets, e.Floor)
	delete(f.External, e.Floor)
}

// Algorithm for choosing direction of elevator.
//  1. No targets, or alerted: idle.
//  2. Idle: head for the target farthest away, down on a tie.
//  3. Moving: keep going until nothing is left ahead, then reverse.
func chooseDirection(e *fleet.Elevator) types.MotorDirection {
	if e.Alert || len(e.Targets) == 0 {
		return types.MD_Idle
	}
	lowest, highest := utils.Bounds(e.Targets)

	switch e.Dir {
	case types.MD_Idle:
		up, down := highest-e.Floor, e.Floor-lowest
		switch {
		case up > down:
			return types.MD_Up
		case down > 0:
			return types.MD_Down
		default:
			return types.MD_Idle
		}
	case types.MD_Up:
		if highest < e.Floor {
			return types.MD_Down
		}
	case types.MD_Down:
		if lowest > e.Floor {
			return types.MD_Up
		}
	}
	return e.Dir
}
