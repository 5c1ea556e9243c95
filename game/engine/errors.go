package engine

import "errors"

// Move and deserialization failures. All are recoverable: the dispatcher hands
// back the previous State untouched, and callers match with errors.Is.
var (
	ErrMissingStartOrGoal = errors.New("start and goal must both be set")
	ErrOutOfBounds        = errors.New("position out of bounds")
	ErrMissingParameters  = errors.New("missing required parameters")
	ErrInvalidLevel       = errors.New("invalid level")
	ErrUnknownAlgorithm   = errors.New("unknown algorithm")
	ErrUnknownAction      = errors.New("unknown action")
	ErrNotInChallengeMode = errors.New("not in challenge mode")
	ErrNoMoreLevels       = errors.New("no more levels")
	ErrDeserialization    = errors.New("invalid game state")
)
