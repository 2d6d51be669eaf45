package simulation

import (
	"math"
	"slices"
	"testing"
)

// AssertWinRateNear asserts that a run's win rate lies within tolerance of want.
func AssertWinRateNear(t *testing.T, result *Result, want, tolerance float64) {
	t.Helper()
	if result == nil {
		t.Fatal("AssertWinRateNear: nil result")
	}
	if math.Abs(result.WinRate-want) > tolerance {
		t.Errorf("AssertWinRateNear: %s with %d doors: win rate %.4f not within %.4f of %.4f (%d/%d)",
			result.Strategy, result.Doors, result.WinRate, tolerance, want, result.Wins, result.Trials)
	}
}

// AssertWinRateConsistent asserts that a Result's fields agree with each other.
func AssertWinRateConsistent(t *testing.T, result *Result) {
	t.Helper()
	if result.Wins < 0 || result.Wins > result.Trials {
		t.Errorf("AssertWinRateConsistent: wins %d outside [0, %d]", result.Wins, result.Trials)
	}
	want := float64(result.Wins) / float64(result.Trials)
	if result.WinRate != want {
		t.Errorf("AssertWinRateConsistent: win rate %.6f, want %d/%d = %.6f", result.WinRate, result.Wins, result.Trials, want)
	}
	if result.WinRate < 0 || result.WinRate > 1 {
		t.Errorf("AssertWinRateConsistent: win rate %.6f outside [0, 1]", result.WinRate)
	}
}

// AssertRevealInvariants asserts what the host's reveal guarantees for a
// finished trial: all but two doors open, the prize and the player's
// door-at-reveal-time among the closed ones.
func AssertRevealInvariants(t *testing.T, out TrialOutcome, numberOfDoors int) {
	t.Helper()
	if len(out.Revealed) != numberOfDoors-2 {
		t.Errorf("AssertRevealInvariants: %d doors revealed, want %d (%v)", len(out.Revealed), numberOfDoors-2, out.Revealed)
	}
	if slices.Contains(out.Revealed, out.Prize) {
		t.Errorf("AssertRevealInvariants: prize door %d was revealed (%v)", out.Prize, out.Revealed)
	}
	if slices.Contains(out.Revealed, out.Initial) {
		t.Errorf("AssertRevealInvariants: player's door %d was revealed (%v)", out.Initial, out.Revealed)
	}
	if slices.Contains(out.Revealed, out.Final) {
		t.Errorf("AssertRevealInvariants: final door %d is an open door (%v)", out.Final, out.Revealed)
	}
	if out.Won != (out.Final == out.Prize) {
		t.Errorf("AssertRevealInvariants: won=%v but final=%d prize=%d", out.Won, out.Final, out.Prize)
	}
}
