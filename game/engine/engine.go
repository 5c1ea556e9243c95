package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for driving one game
type Engine interface {
	// State management
	State() State
	Restore(state State) error
	Reset() (State, error)
	IsWon() bool

	// The move contract
	Move(req MoveRequest) (State, error)

	// Configuration
	Config() Config

	// Persistence
	Serialize() ([]byte, error)
}

// Game implements the Engine interface. It owns the current immutable state
// and the random source used for maze generation. A Game is not safe for
// concurrent use; callers that share one must serialize access.
type Game struct {
	state  State
	config Config
	rng    *rand.Rand
}

// NewGame creates a game from a creation config, seeding maze randomness
// from the clock
func NewGame(cfg Config) (*Game, error) {
	return NewSeededGame(cfg, time.Now().UnixNano())
}

// NewSeededGame creates a game whose maze generation is reproducible for a
// given seed
func NewSeededGame(cfg Config, seed int64) (*Game, error) {
	cfg, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	state, err := NewState(cfg)
	if err != nil {
		return nil, err
	}
	return &Game{
		state:  state,
		config: cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// State returns a copy of the current state
func (g *Game) State() State {
	return g.state.Clone()
}

// Restore replaces the current state, validating it first (used when
// loading persisted games)
func (g *Game) Restore(state State) error {
	if err := ValidateState(state); err != nil {
		return err
	}
	g.state = state.Clone()
	return nil
}

// Reset rebuilds the initial state from the creation config
func (g *Game) Reset() (State, error) {
	state, err := NewState(g.config)
	if err != nil {
		return State{}, err
	}
	g.state = state
	return g.state.Clone(), nil
}

// IsWon reports whether the last search on the current state found a path
func (g *Game) IsWon() bool {
	return g.state.Won()
}

// Move applies one action. On success the new state is stored and returned;
// on failure the current state is returned unchanged beside the error.
func (g *Game) Move(req MoveRequest) (State, error) {
	next, err := Apply(g.state, req, g.rng)
	if err != nil {
		return g.state.Clone(), err
	}
	g.state = next
	return g.state.Clone(), nil
}

// Config returns the creation config
func (g *Game) Config() Config {
	return g.config
}

// Serialize encodes the current state as JSON
func (g *Game) Serialize() ([]byte, error) {
	return Serialize(g.state)
}

// RestoreGame builds a game around a previously serialized state. The config
// is reconstructed from the state so Reset keeps working.
func RestoreGame(data []byte) (*Game, error) {
	state, err := Deserialize(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{Mode: state.Mode}
	if state.Mode == Challenge {
		if state.LevelIndex >= 1 {
			cfg.Level = state.LevelIndex
		} else {
			cfg.Level = 1
		}
	} else {
		cfg.Width = state.Grid.Width
		cfg.Height = state.Grid.Height
	}
	cfg, err = NormalizeConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}

	return &Game{
		state:  state,
		config: cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}
