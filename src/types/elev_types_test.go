package types

import "testing"

func TestMotorDirectionStep(t *testing.T) {
	if MD_Up.Step() != 1 || MD_Down.Step() != -1 || MD_Idle.Step() != 0 {
		t.Error("unexpected step values")
	}
}

func TestHallTypeMatches(t *testing.T) {
	tests := []struct {
		hall HallType
		dir  MotorDirection
		want bool
	}{
		{HallUp, MD_Up, true},
		{HallUp, MD_Down, false},
		{HallDown, MD_Down, true},
		{HallDown, MD_Idle, false},
		{HallAny, MD_Up, false},
		{HallAny, MD_Idle, false},
	}
	for _, tc := range tests {
		if got := tc.hall.Matches(tc.dir); got != tc.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", tc.hall, tc.dir, got, tc.want)
		}
	}
}

func TestParseHallType(t *testing.T) {
	for input, want := range map[string]HallType{"up": HallUp, "DOWN": HallDown, "": HallAny, "none": HallAny} {
		got, err := ParseHallType(input)
		if err != nil || got != want {
			t.Errorf("ParseHallType(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseHallType("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestStatusOf(t *testing.T) {
	if StatusOf(MD_Up, true, true) != StatusStall {
		t.Error("alert should win")
	}
	if StatusOf(MD_Up, true, false) != StatusOpen {
		t.Error("open door should beat direction")
	}
	if got := StatusOf(MD_Down, false, false).String(); got != "Down" {
		t.Errorf("got %q", got)
	}
	if got := StatusOf(MD_Idle, false, false).String(); got != "Stay" {
		t.Errorf("got %q", got)
	}
}
