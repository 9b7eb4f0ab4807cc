package utils

import (
	"maps"
	"slices"
)

// SortedFloors returns the members of a floor set in ascending order. Every
// scan over a floor set goes through here so iteration order is reproducible.
func SortedFloors(floors map[int]bool) []int {
	return slices.Sorted(maps.Keys(floors))
}

// ForEachFloor is a helper function that reduces indentation when acting on
// every floor of a set in ascending order.
func ForEachFloor(floors map[int]bool, action func(floor int)) {
	for _, floor := range SortedFloors(floors) {
		action(floor)
	}
}

// Bounds returns the lowest and highest floor in a non-empty set.
func Bounds(floors map[int]bool) (lowest, highest int) {
	first := true
	for floor := range floors {
		if first {
			lowest, highest = floor, floor
			first = false
			continue
		}
		lowest = min(lowest, floor)
		highest = max(highest, floor)
	}
	return lowest, highest
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
