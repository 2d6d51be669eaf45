package game

import "fmt"

// MinDoors is the smallest game the host can play: the player's door, the
// prize door, and at least one goat to open.
const MinDoors = 3

// Round holds the state of one game: the doors, the hidden prize and the
// doors the host has opened so far.
//
// The revealed set only grows. It never contains the prize, and at least two
// doors always stay closed.
type Round struct {
	numberOfDoors int
	prize         Door
	revealed      []bool
	rng           Rand
}

// NewRound creates a round with a uniformly sampled prize door.
func NewRound(numberOfDoors int, rng Rand) (*Round, error) {
	if numberOfDoors < MinDoors {
		return nil, fmt.Errorf("%w: need at least %d doors, got %d", ErrInvalidConfiguration, MinDoors, numberOfDoors)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	r := &Round{
		numberOfDoors: numberOfDoors,
		revealed:      make([]bool, numberOfDoors),
		rng:           rng,
	}
	r.prize = Door(rng.IntN(numberOfDoors))
	return r, nil
}

// NumberOfDoors returns the size of the door set.
func (r *Round) NumberOfDoors() int {
	return r.numberOfDoors
}

// Doors returns every door of the round in ascending order.
func (r *Round) Doors() []Door {
	return DoorRange(r.numberOfDoors)
}

// Revealed returns the opened doors in ascending order.
func (r *Round) Revealed() []Door {
	out := make([]Door, 0, r.numberOfDoors)
	for i, open := range r.revealed {
		if open {
			out = append(out, Door(i))
		}
	}
	return out
}

// Closed returns the doors not yet opened, in ascending order.
func (r *Round) Closed() []Door {
	out := make([]Door, 0, r.numberOfDoors)
	for i, open := range r.revealed {
		if !open {
			out = append(out, Door(i))
		}
	}
	return out
}

// PrizeDoor returns the winning door. Only the trial runner's traces use it;
// players decide from Doors and Revealed alone.
func (r *Round) PrizeDoor() Door {
	return r.prize
}

// RevealDoors opens every losing door except one, given the player's
// current pick. Afterwards exactly two doors are closed and one of them is
// the prize.
//
// When the player is not on the prize there is nothing to decide: all other
// goats are opened. When the player is on the prize, one goat is picked at
// random to stay closed.
func (r *Round) RevealDoors(chosen Door) error {
	if !r.contains(chosen) {
		return fmt.Errorf("%w: door %d is outside [0, %d)", ErrInvalidChoice, chosen, r.numberOfDoors)
	}
	if r.revealed[chosen] {
		return fmt.Errorf("%w: door %d is already open", ErrInvalidChoice, chosen)
	}

	available := Without(r.Closed(), []Door{chosen, r.prize})

	if chosen != r.prize {
		r.open(available)
		return nil
	}

	keepClosed, err := pick(r.rng, available)
	if err != nil {
		return fmt.Errorf("reveal with player on prize door %d: %w", chosen, err)
	}
	r.open(Without(available, []Door{keepClosed}))
	return nil
}

// CheckVictory reports whether chosen is the prize door.
func (r *Round) CheckVictory(chosen Door) bool {
	return chosen == r.prize
}

// Reset resamples the prize and closes every door, so the round can be
// played again.
func (r *Round) Reset() {
	r.prize = Door(r.rng.IntN(r.numberOfDoors))
	clear(r.revealed)
}

func (r *Round) contains(d Door) bool {
	return d >= 0 && int(d) < r.numberOfDoors
}

func (r *Round) open(doors []Door) {
	for _, d := range doors {
		r.revealed[d] = true
	}
}
