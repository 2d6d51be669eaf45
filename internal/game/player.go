package game

import "fmt"

// Player holds a contestant's pick and fixed strategy.
type Player struct {
	strategy  Strategy
	chosen    Door
	hasChoice bool
	rng       Rand
}

// NewPlayer creates a player who has not picked a door yet.
func NewPlayer(strategy Strategy, rng Rand) *Player {
	return &Player{strategy: strategy, rng: rng}
}

// Strategy returns the player's stay/switch policy.
func (p *Player) Strategy() Strategy {
	return p.strategy
}

// ChosenDoor returns the current pick. ok is false before the first choice.
func (p *Player) ChosenDoor() (door Door, ok bool) {
	return p.chosen, p.hasChoice
}

// ChooseDoor updates the player's pick from what is visible on stage.
//
// The first call picks uniformly among the closed doors. Later calls either
// keep the pick (Stay) or move uniformly to another closed door (Switch).
func (p *Player) ChooseDoor(doors, revealed []Door) error {
	if !p.hasChoice {
		d, err := pick(p.rng, Without(doors, revealed))
		if err != nil {
			return fmt.Errorf("initial choice: %w", err)
		}
		p.chosen, p.hasChoice = d, true
		return nil
	}

	if p.strategy != Switch {
		return nil
	}

	d, err := pick(p.rng, Without(doors, revealed, []Door{p.chosen}))
	if err != nil {
		return fmt.Errorf("switch from door %d: %w", p.chosen, err)
	}
	p.chosen = d
	return nil
}
