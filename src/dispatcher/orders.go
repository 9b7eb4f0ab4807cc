package dispatcher

import (
	"log/slog"

	"elevsim/src/fleet"
	"elevsim/src/types"
	"elevsim/src/utils"
)

func assignInternal(e *fleet.Elevator, floor int) {
	if floor != e.Floor {
		e.Targets[floor] = true
	}
}

// assignExternal binds a hallway call to an elevator and records it. The
// scan runs in three phases:
//   - en-route: already moving in the requested direction and still before the floor
//   - nearest idle elevator
//   - nearest elevator in any state
//
// Alerted elevators are never picked. Ties keep the lowest index.
func assignExternal(f *fleet.Fleet, floor int, hall types.HallType) (int, Phase) {
	id, phase := findAssignee(f, floor, hall)
	if id == NoElevator {
		return NoElevator, PhaseNone
	}
	e := f.Get(id)
	e.Targets[floor] = true
	f.External[floor] = true
	// Already there: serve the call now instead of on the next tick.
	if e.Floor == floor {
		clearAtCurrentFloor(f, e)
	}
	return id, phase
}

func findAssignee(f *fleet.Fleet, floor int, hall types.HallType) (int, Phase) {
	phases := []struct {
		phase    Phase
		eligible func(e *fleet.Elevator) bool
	}{
		{PhaseEnRoute, func(e *fleet.Elevator) bool {
			if !hall.Matches(e.Dir) {
				return false
			}
			if e.Dir == types.MD_Up {
				return e.Floor <= floor
			}
			return e.Floor >= floor
		}},
		{PhaseIdle, func(e *fleet.Elevator) bool { return e.Dir == types.MD_Idle }},
		{PhaseNearest, func(e *fleet.Elevator) bool { return true }},
	}
	for _, p := range phases {
		if id := nearest(f, floor, p.eligible); id != NoElevator {
			return id, p.phase
		}
	}
	return NoElevator, PhaseNone
}

// nearest scans in index order and keeps the first elevator with the lowest
// distance to floor.
func nearest(f *fleet.Fleet, floor int, eligible func(e *fleet.Elevator) bool) int {
	assignee := NoElevator
	bestDistance := 0
	for _, e := range f.Elevators {
		if e.Alert || !eligible(e) {
			continue
		}
		distance := utils.Abs(e.Floor - floor)
		if assignee == NoElevator || distance < bestDistance {
			assignee = e.ID
			bestDistance = distance
		}
	}
	return assignee
}

// toggleAlert flips the alert flag. Entering alert drops the hallway calls
// the elevator was holding and dispatches every outstanding hallway call
// again. Leaving alert keeps the remaining cab targets and starts from idle.
func toggleAlert(f *fleet.Fleet, e *fleet.Elevator) bool {
	e.Alert = !e.Alert
	e.Dir = types.MD_Idle
	if !e.Alert {
		return false
	}

	for floor := range e.Targets {
		if f.External[floor] {
			delete(e.Targets, floor)
		}
	}
	utils.ForEachFloor(f.External, func(floor int) {
		id, phase := assignExternal(f, floor, types.HallAny)
		slog.Debug("Hallway call dispatched again", "floor", floor, "elevator", id, "phase", phase)
	})
	return true
}

// Door requests are only honored for an idle elevator that is not alerted.
func setDoor(e *fleet.Elevator, open bool) bool {
	if e.Alert || e.Dir != types.MD_Idle {
		return false
	}
	e.DoorOpen = open
	return true
}
