package dispatcher

import (
	"errors"

	"elevsim/src/fleet"
)

// NoElevator is returned by AssignExternal when every elevator is in alert.
const NoElevator = 0

var (
	ErrInvalidFloor      = errors.New("invalid floor")
	ErrInvalidElevatorID = errors.New("invalid elevator id")
	ErrClosed            = errors.New("dispatcher closed")
)

// Phase is the stage of the hallway call scan that picked an elevator.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseEnRoute
	PhaseIdle
	PhaseNearest
)

func (p Phase) String() string {
	return [...]string{"none", "en-route", "nearest-idle", "nearest-any"}[p]
}

// stateCmd is one operation executed by the state manager goroutine.
type stateCmd struct {
	exec func(f *fleet.Fleet)
}
