// Fleet state: the per-elevator records and the shared set of outstanding hallway calls.
package fleet

import (
	"fmt"

	"elevsim/src/types"
	"elevsim/src/utils"

	"github.com/tiendc/go-deepcopy"
)

// Elevator represents the state of one elevator car.
type Elevator struct {
	ID       int
	Floor    int
	Dir      types.MotorDirection
	DoorOpen bool
	Alert    bool
	Targets  map[int]bool // pending cab targets
}

// PendingTargets lists the cab targets in ascending order.
func (e *Elevator) PendingTargets() []int {
	return utils.SortedFloors(e.Targets)
}

func (e *Elevator) Status() types.Status {
	return types.StatusOf(e.Dir, e.DoorOpen, e.Alert)
}

// Fleet owns every elevator and the outstanding hallway calls. It is not safe
// for concurrent use; the dispatcher serializes access to it.
type Fleet struct {
	FloorMin  int
	FloorMax  int
	Elevators []*Elevator
	External  map[int]bool
}

func New(floorMin, floorMax, size int) *Fleet {
	f := &Fleet{
		FloorMin:  floorMin,
		FloorMax:  floorMax,
		Elevators: make([]*Elevator, size),
		External:  make(map[int]bool),
	}
	for i := range f.Elevators {
		f.Elevators[i] = &Elevator{
			ID:      i + 1,
			Floor:   floorMin,
			Dir:     types.MD_Idle,
			Targets: make(map[int]bool),
		}
	}
	return f
}

func (f *Fleet) ValidFloor(floor int) bool {
	return floor >= f.FloorMin && floor <= f.FloorMax
}

func (f *Fleet) ValidID(id int) bool {
	return id >= 1 && id <= len(f.Elevators)
}

// Get returns the live record of elevator id. Callers validate id first.
func (f *Fleet) Get(id int) *Elevator {
	return f.Elevators[id-1]
}

func (f *Fleet) ExternalFloors() []int {
	return utils.SortedFloors(f.External)
}

// Copy returns a deep copy of an elevator record that shares nothing with
// the fleet.
func Copy(e *Elevator) (Elevator, error) {
	var clone Elevator
	if err := deepcopy.Copy(&clone, e); err != nil {
		return Elevator{}, fmt.Errorf("copy elevator %d: %w", e.ID, err)
	}
	if clone.Targets == nil {
		clone.Targets = make(map[int]bool)
	}
	return clone, nil
}

// Check verifies the fleet invariants that hold between operations. Nothing
// in the engine calls it; it is for tests and debugging.
func (f *Fleet) Check() error {
	for _, e := range f.Elevators {
		if !f.ValidFloor(e.Floor) {
			return fmt.Errorf("elevator %d at floor %d outside [%d, %d]", e.ID, e.Floor, f.FloorMin, f.FloorMax)
		}
		for target := range e.Targets {
			if !f.ValidFloor(target) {
				return fmt.Errorf("elevator %d has target %d outside [%d, %d]", e.ID, target, f.FloorMin, f.FloorMax)
			}
		}
	}
	for floor := range f.External {
		if !f.ValidFloor(floor) {
			return fmt.Errorf("hallway call at floor %d outside [%d, %d]", floor, f.FloorMin, f.FloorMax)
		}
	}
	return nil
}
