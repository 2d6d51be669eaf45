package game

import "errors"

// ErrInvalidConfiguration indicates a round or run was requested with
// parameters the game cannot be played with (fewer than three doors,
// no trials, a missing random source).
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrExhaustedCandidates indicates a choose or reveal step found no door
// it was allowed to pick. Under correct sequencing this cannot happen.
var ErrExhaustedCandidates = errors.New("no candidate doors left")

// ErrInvalidChoice indicates a door outside the round or an already
// revealed door was handed to the host.
var ErrInvalidChoice = errors.New("invalid door choice")
