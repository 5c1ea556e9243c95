package engine

import "fmt"

// Preset sandbox grid sizes per difficulty
var difficultySizes = map[Difficulty][2]int{
	Easy:   {10, 8},
	Medium: {20, 15},
	Hard:   {30, 20},
}

// DefaultConfig is the game created when the caller specifies nothing:
// a medium sandbox
func DefaultConfig() Config {
	return Config{Mode: Sandbox, Difficulty: Medium}
}

// NormalizeConfig fills defaults and validates a creation config
func NormalizeConfig(cfg Config) (Config, error) {
	if cfg.Mode == "" {
		cfg.Mode = Sandbox
	}
	if !ValidMode(cfg.Mode) {
		return cfg, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	if cfg.Mode == Challenge {
		if cfg.Level == 0 {
			cfg.Level = 1
		}
		if cfg.Level < 1 || cfg.Level > LevelCount() {
			return cfg, fmt.Errorf("%w: %d (levels run 1-%d)", ErrInvalidLevel, cfg.Level, LevelCount())
		}
		return cfg, nil
	}

	if cfg.Difficulty == "" {
		cfg.Difficulty = Medium
	}
	size, ok := difficultySizes[cfg.Difficulty]
	if !ok {
		return cfg, fmt.Errorf("unknown difficulty %q", cfg.Difficulty)
	}
	if cfg.Width == 0 {
		cfg.Width = size[0]
	}
	if cfg.Height == 0 {
		cfg.Height = size[1]
	}
	if cfg.Width < MinGridSize || cfg.Width > MaxGridSize {
		return cfg, fmt.Errorf("width must be between %d and %d, got %d", MinGridSize, MaxGridSize, cfg.Width)
	}
	if cfg.Height < MinGridSize || cfg.Height > MaxGridSize {
		return cfg, fmt.Errorf("height must be between %d and %d, got %d", MinGridSize, MaxGridSize, cfg.Height)
	}
	return cfg, nil
}

// NewState builds the initial state for a config: a blank grid for sandbox
// games, the selected catalog level for challenge games. The default
// algorithm is BFS, the first one the platform teaches.
func NewState(cfg Config) (State, error) {
	cfg, err := NormalizeConfig(cfg)
	if err != nil {
		return State{}, err
	}

	if cfg.Mode == Challenge {
		lvl, err := LevelByNumber(cfg.Level)
		if err != nil {
			return State{}, err
		}
		return stateFromLevel(lvl, Challenge, BFS), nil
	}

	return State{
		Grid:      NewGrid(cfg.Width, cfg.Height),
		Algorithm: BFS,
		Mode:      Sandbox,
	}, nil
}
