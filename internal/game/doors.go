// Package game models a single Monty Hall round: the doors, the host who
// opens losing doors, and the player who stays or switches.
//
// Door collections are plain ascending slices. Keeping them ordered makes a
// seeded Rand produce the same picks on every run.
package game

import (
	"fmt"
	"slices"
)

// Door identifies one door of a round, in [0, numberOfDoors).
type Door int

// Strategy is the player's fixed policy for the final choice.
type Strategy int

const (
	// Stay keeps the initial pick after the reveal.
	Stay Strategy = iota
	// Switch moves to another closed door after the reveal.
	Switch
)

func (s Strategy) String() string {
	switch s {
	case Stay:
		return "stay"
	case Switch:
		return "switch"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// StrategyFromSwitch maps the switch flag onto a Strategy.
func StrategyFromSwitch(switchDoors bool) Strategy {
	if switchDoors {
		return Switch
	}
	return Stay
}

// DoorRange returns doors 0..n-1.
func DoorRange(n int) []Door {
	doors := make([]Door, n)
	for i := range doors {
		doors[i] = Door(i)
	}
	return doors
}

// Without returns the doors of set that are not in any of the excluded
// collections, preserving order. set is not modified.
func Without(set []Door, excluded ...[]Door) []Door {
	out := make([]Door, 0, len(set))
	for _, d := range set {
		skip := false
		for _, ex := range excluded {
			if slices.Contains(ex, d) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, d)
		}
	}
	return out
}
