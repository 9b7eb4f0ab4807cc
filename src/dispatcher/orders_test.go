package dispatcher

import (
	"testing"

	"elevsim/src/fleet"
	"elevsim/src/types"
)

func place(f *fleet.Fleet, id, floor int, dir types.MotorDirection, cab ...int) {
	e := f.Get(id)
	e.Floor, e.Dir = floor, dir
	for _, target := range cab {
		e.Targets[target] = true
	}
}

func TestFindAssignee(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *fleet.Fleet)
		floor     int
		hall      types.HallType
		wantID    int
		wantPhase Phase
	}{
		{
			name:      "idle fleet tie keeps lowest index",
			setup:     func(f *fleet.Fleet) {},
			floor:     10,
			hall:      types.HallUp,
			wantID:    1,
			wantPhase: PhaseIdle,
		},
		{
			name: "en-route beats closer idle",
			setup: func(f *fleet.Fleet) {
				place(f, 2, 5, types.MD_Up, 8)
				place(f, 3, 6, types.MD_Idle)
			},
			floor:     7,
			hall:      types.HallUp,
			wantID:    2,
			wantPhase: PhaseEnRoute,
		},
		{
			name: "en-route needs matching direction",
			setup: func(f *fleet.Fleet) {
				place(f, 2, 5, types.MD_Up, 8)
				place(f, 3, 6, types.MD_Idle)
			},
			floor:     7,
			hall:      types.HallDown,
			wantID:    3,
			wantPhase: PhaseIdle,
		},
		{
			name: "en-route ignores elevators past the floor",
			setup: func(f *fleet.Fleet) {
				place(f, 2, 9, types.MD_Up, 12)
			},
			floor:     7,
			hall:      types.HallUp,
			wantID:    1,
			wantPhase: PhaseIdle,
		},
		{
			name: "closest en-route wins",
			setup: func(f *fleet.Fleet) {
				place(f, 1, 2, types.MD_Up, 15)
				place(f, 4, 6, types.MD_Up, 15)
			},
			floor:     8,
			hall:      types.HallUp,
			wantID:    4,
			wantPhase: PhaseEnRoute,
		},
		{
			name: "en-route down",
			setup: func(f *fleet.Fleet) {
				place(f, 5, 14, types.MD_Down, 1)
			},
			floor:     9,
			hall:      types.HallDown,
			wantID:    5,
			wantPhase: PhaseEnRoute,
		},
		{
			name: "no direction never matches en-route",
			setup: func(f *fleet.Fleet) {
				place(f, 2, 8, types.MD_Up, 12)
				place(f, 1, 3, types.MD_Idle)
			},
			floor:     9,
			hall:      types.HallAny,
			wantID:    1,
			wantPhase: PhaseIdle,
		},
		{
			name: "nearest any when nobody is idle",
			setup: func(f *fleet.Fleet) {
				place(f, 1, 2, types.MD_Down, 1)
				place(f, 2, 12, types.MD_Down, 1)
				place(f, 3, 8, types.MD_Down, 1)
				place(f, 4, 12, types.MD_Up, 20)
				place(f, 5, 20, types.MD_Down, 1)
			},
			floor:     10,
			hall:      types.HallUp,
			wantID:    2,
			wantPhase: PhaseNearest,
		},
		{
			name: "alerted elevators are skipped",
			setup: func(f *fleet.Fleet) {
				f.Get(1).Alert = true
				f.Get(2).Alert = true
			},
			floor:     4,
			hall:      types.HallDown,
			wantID:    3,
			wantPhase: PhaseIdle,
		},
		{
			name: "all alerted",
			setup: func(f *fleet.Fleet) {
				for _, e := range f.Elevators {
					e.Alert = true
				}
			},
			floor:     12,
			hall:      types.HallDown,
			wantID:    NoElevator,
			wantPhase: PhaseNone,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := fleet.New(1, 20, 5)
			tc.setup(f)
			id, phase := findAssignee(f, tc.floor, tc.hall)
			if id != tc.wantID || phase != tc.wantPhase {
				t.Errorf("findAssignee = %d (%s), want %d (%s)", id, phase, tc.wantID, tc.wantPhase)
			}
		})
	}
}

func TestAssignExternalRecordsCall(t *testing.T) {
	f := fleet.New(1, 20, 3)
	id, _ := assignExternal(f, 6, types.HallDown)
	if id != 1 {
		t.Fatalf("assigned to %d, want 1", id)
	}
	if !f.Get(1).Targets[6] || !f.External[6] {
		t.Errorf("call not recorded: targets %v external %v", f.Get(1).Targets, f.External)
	}
}

func TestAssignExternalAtCurrentFloorOpensImmediately(t *testing.T) {
	f := fleet.New(1, 20, 3)
	place(f, 2, 7, types.MD_Idle)
	f.Get(1).Alert = true

	id, phase := assignExternal(f, 7, types.HallUp)
	if id != 2 || phase != PhaseIdle {
		t.Fatalf("assigned to %d (%s), want 2 (nearest-idle)", id, phase)
	}
	e := f.Get(2)
	if !e.DoorOpen || e.Targets[7] || f.External[7] {
		t.Errorf("expected immediate service: %+v external %v", e, f.External)
	}
}

func TestAssignInternalSkipsCurrentFloor(t *testing.T) {
	f := fleet.New(1, 20, 1)
	e := f.Get(1)
	assignInternal(e, 1)
	assignInternal(e, 9)
	assignInternal(e, 9)
	if len(e.Targets) != 1 || !e.Targets[9] {
		t.Errorf("targets %v, want {9}", e.Targets)
	}
	if e.Dir != types.MD_Idle {
		t.Error("direction must wait for the next tick")
	}
}

func TestToggleAlertRedistributes(t *testing.T) {
	f := fleet.New(1, 20, 3)
	assignExternal(f, 10, types.HallUp) // elevator 1
	assignInternal(f.Get(1), 15)
	place(f, 3, 4, types.MD_Up, 6)
	if id, _ := assignExternal(f, 5, types.HallUp); id != 3 {
		t.Fatalf("floor 5 assigned to %d, want en-route elevator 3", id)
	}

	if !toggleAlert(f, f.Get(1)) {
		t.Fatal("expected alert to be set")
	}
	e1 := f.Get(1)
	if e1.Targets[10] || !e1.Targets[15] {
		t.Errorf("elevator 1 targets %v, want only {15}", e1.Targets)
	}
	for floor := range f.External {
		if e1.Targets[floor] {
			t.Errorf("alerted elevator still holds hallway call %d", floor)
		}
	}
	if !f.External[10] || !f.External[5] {
		t.Errorf("external set %v lost a call", f.External)
	}
	// Every outstanding call is dispatched again, so the only idle healthy
	// elevator picks up floor 5 as well as floor 10.
	if !f.Get(2).Targets[10] || !f.Get(2).Targets[5] {
		t.Errorf("elevator 2 targets %v, want 5 and 10", f.Get(2).Targets)
	}
	if !f.Get(3).Targets[5] {
		t.Errorf("elevator 3 lost floor 5: %v", f.Get(3).Targets)
	}
}

func TestToggleAlertExitKeepsTargets(t *testing.T) {
	f := fleet.New(1, 20, 2)
	e := f.Get(1)
	assignInternal(e, 12)
	e.Dir = types.MD_Up

	toggleAlert(f, e)
	if toggleAlert(f, e) {
		t.Fatal("second toggle should clear the alert")
	}
	if !e.Targets[12] || e.Dir != types.MD_Idle {
		t.Errorf("after alert round trip: %+v", e)
	}
}

func TestSetDoor(t *testing.T) {
	e := &fleet.Elevator{Dir: types.MD_Idle, Targets: targets()}
	if !setDoor(e, true) || !e.DoorOpen {
		t.Error("idle elevator should open")
	}
	if !setDoor(e, false) || e.DoorOpen {
		t.Error("idle elevator should close")
	}
	e.Dir = types.MD_Down
	if setDoor(e, true) || e.DoorOpen {
		t.Error("moving elevator must refuse")
	}
	e.Dir, e.Alert = types.MD_Idle, true
	if setDoor(e, true) {
		t.Error("alerted elevator must refuse")
	}
}
