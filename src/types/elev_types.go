package types

import (
	"fmt"
	"strings"
)

// MotorDirection is the direction an elevator is travelling in.
type MotorDirection int

const (
	MD_Idle MotorDirection = iota
	MD_Up
	MD_Down
)

// Step is the floor delta of one tick in this direction.
func (d MotorDirection) Step() int {
	switch d {
	case MD_Up:
		return 1
	case MD_Down:
		return -1
	default:
		return 0
	}
}

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "up"
	case MD_Down:
		return "down"
	case MD_Idle:
		return "idle"
	}
	return fmt.Sprintf("MotorDirection(%d)", int(d))
}

// HallType is the direction requested by a hallway call.
type HallType int

const (
	HallAny HallType = iota
	HallUp
	HallDown
)

func (h HallType) String() string {
	switch h {
	case HallUp:
		return "up"
	case HallDown:
		return "down"
	case HallAny:
		return "any"
	}
	return fmt.Sprintf("HallType(%d)", int(h))
}

// Matches reports whether an elevator travelling in d serves calls of type h
// on its way.
func (h HallType) Matches(d MotorDirection) bool {
	return (h == HallUp && d == MD_Up) || (h == HallDown && d == MD_Down)
}

func ParseHallType(s string) (HallType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return HallUp, nil
	case "down", "d":
		return HallDown, nil
	case "", "any", "none":
		return HallAny, nil
	}
	return HallAny, fmt.Errorf("unknown hall direction %q", s)
}

// Status is the display label of an elevator.
type Status int

const (
	StatusStay Status = iota
	StatusUp
	StatusDown
	StatusOpen
	StatusStall
)

func (s Status) String() string {
	return [...]string{"Stay", "Up", "Down", "Open", "Stall"}[s]
}

// StatusOf classifies an elevator: alert beats an open door, which beats
// the travel direction.
func StatusOf(dir MotorDirection, doorOpen, alert bool) Status {
	switch {
	case alert:
		return StatusStall
	case doorOpen:
		return StatusOpen
	case dir == MD_Up:
		return StatusUp
	case dir == MD_Down:
		return StatusDown
	default:
		return StatusStay
	}
}
