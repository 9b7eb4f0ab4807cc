package control

import (
	"fmt"
	"strings"

	"elevsim/src/fleet"
)

// FormatElevator renders one status line, e.g.
// "E2 | floor  7 | Up    | targets [9 12]".
func FormatElevator(e fleet.Elevator) string {
	return fmt.Sprintf("E%d | floor %2d | %-5s | targets %v", e.ID, e.Floor, e.Status(), e.PendingTargets())
}

// FormatEstimate renders the per-elevator tick counts for a floor.
func FormatEstimate(floor int, ticks []int) string {
	parts := make([]string, len(ticks))
	for i, n := range ticks {
		if n < 0 {
			parts[i] = fmt.Sprintf("E%d -", i+1)
			continue
		}
		parts[i] = fmt.Sprintf("E%d %d", i+1, n)
	}
	return fmt.Sprintf("floor %d eta: %s", floor, strings.Join(parts, " | "))
}
