package simulation

import (
	"fmt"
	"time"

	"github.com/AnneSpitz/monty-hall-simulator/internal/game"
)

// Result summarizes one simulation run.
type Result struct {
	RunID    string        `json:"run_id"`
	Strategy string        `json:"strategy"`
	Doors    int           `json:"doors"`
	Trials   int           `json:"trials"`
	Wins     int           `json:"wins"`
	WinRate  float64       `json:"win_rate"`
	Seed     uint64        `json:"seed"`
	Workers  int           `json:"workers"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Comparison holds a stay run and a switch run with the same parameters,
// next to the rates the game predicts.
type Comparison struct {
	Stay           *Result `json:"stay"`
	Switch         *Result `json:"switch"`
	ExpectedStay   float64 `json:"expected_stay"`
	ExpectedSwitch float64 `json:"expected_switch"`
}

// ExpectedWinRate returns the theoretical win rate of a strategy when the
// host opens all but two doors: a stayer wins only if the first pick was
// right (1/N), a switcher wins otherwise ((N-1)/N).
func ExpectedWinRate(strategy game.Strategy, numberOfDoors int) float64 {
	n := float64(numberOfDoors)
	if strategy == game.Switch {
		return (n - 1) / n
	}
	return 1 / n
}

// String renders a one-line summary for debug output.
func (r *Result) String() string {
	return fmt.Sprintf("run %s: %s with %d doors won %d/%d (%.4f) seed=%d workers=%d in %s",
		r.RunID, r.Strategy, r.Doors, r.Wins, r.Trials, r.WinRate, r.Seed, r.Workers, r.Elapsed)
}
