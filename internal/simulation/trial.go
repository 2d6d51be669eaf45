package simulation

import (
	"fmt"

	"github.com/AnneSpitz/monty-hall-simulator/internal/game"
)

// TrialOutcome records what happened in one game.
type TrialOutcome struct {
	Prize    game.Door   `json:"prize"`
	Initial  game.Door   `json:"initial"`
	Revealed []game.Door `json:"revealed"`
	Final    game.Door   `json:"final"`
	Won      bool        `json:"won"`
}

// RunTrial plays one game: the player picks, the host reveals down to two
// closed doors, the player stays or switches, and the final pick is checked.
// Round and player are created here and discarded afterwards.
func RunTrial(numberOfDoors int, strategy game.Strategy, rng game.Rand) (TrialOutcome, error) {
	round, err := game.NewRound(numberOfDoors, rng)
	if err != nil {
		return TrialOutcome{}, err
	}
	player := game.NewPlayer(strategy, rng)

	if err := player.ChooseDoor(round.Doors(), round.Revealed()); err != nil {
		return TrialOutcome{}, err
	}
	initial, _ := player.ChosenDoor()

	if err := round.RevealDoors(initial); err != nil {
		return TrialOutcome{}, fmt.Errorf("host reveal: %w", err)
	}

	revealed := round.Revealed()
	if err := player.ChooseDoor(round.Doors(), revealed); err != nil {
		return TrialOutcome{}, err
	}
	final, _ := player.ChosenDoor()

	return TrialOutcome{
		Prize:    round.PrizeDoor(),
		Initial:  initial,
		Revealed: revealed,
		Final:    final,
		Won:      round.CheckVictory(final),
	}, nil
}
