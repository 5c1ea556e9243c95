package engine

import (
	"encoding/json"
	"fmt"
)

// Serialize encodes a state as JSON. It is a pure function of the state and
// always succeeds for states produced by this package.
func Serialize(s State) ([]byte, error) {
	return json.Marshal(s)
}

// Deserialize decodes and validates a serialized state. Malformed input of
// any kind, from broken JSON to an inconsistent grid, reports
// ErrDeserialization; nothing partial ever escapes.
func Deserialize(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	if err := ValidateState(s); err != nil {
		return State{}, err
	}
	return s, nil
}

// ValidateState checks every structural invariant a persisted state must
// satisfy before it can be trusted
func ValidateState(s State) error {
	g := s.Grid
	if g.Width < MinGridSize || g.Width > MaxGridSize {
		return fmt.Errorf("%w: width %d outside %d-%d", ErrDeserialization, g.Width, MinGridSize, MaxGridSize)
	}
	if g.Height < MinGridSize || g.Height > MaxGridSize {
		return fmt.Errorf("%w: height %d outside %d-%d", ErrDeserialization, g.Height, MinGridSize, MaxGridSize)
	}
	if len(g.Cells) != g.Height {
		return fmt.Errorf("%w: grid has %d rows, header says %d", ErrDeserialization, len(g.Cells), g.Height)
	}

	starts, goals := 0, 0
	for row := range g.Cells {
		if len(g.Cells[row]) != g.Width {
			return fmt.Errorf("%w: row %d has %d cells, header says %d", ErrDeserialization, row, len(g.Cells[row]), g.Width)
		}
		for col := range g.Cells[row] {
			t := g.Cells[row][col].Type
			if !ValidCellType(t) {
				return fmt.Errorf("%w: unknown cell type %q at (%d,%d)", ErrDeserialization, t, row, col)
			}
			switch t {
			case Start:
				starts++
			case Goal:
				goals++
			}
		}
	}
	if starts > 1 {
		return fmt.Errorf("%w: %d start cells, at most 1 allowed", ErrDeserialization, starts)
	}
	if goals > 1 {
		return fmt.Errorf("%w: %d goal cells, at most 1 allowed", ErrDeserialization, goals)
	}

	if err := validateMarker(g, s.Start, Start, starts); err != nil {
		return err
	}
	if err := validateMarker(g, s.Goal, Goal, goals); err != nil {
		return err
	}

	if !ValidMode(s.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrDeserialization, s.Mode)
	}
	if !ValidAlgorithm(s.Algorithm) {
		return fmt.Errorf("%w: unknown algorithm %q", ErrDeserialization, s.Algorithm)
	}
	if s.LevelIndex < 0 || s.LevelIndex > LevelCount() {
		return fmt.Errorf("%w: level index %d outside 0-%d", ErrDeserialization, s.LevelIndex, LevelCount())
	}
	if s.ParCost < 0 || s.ParNodes < 0 {
		return fmt.Errorf("%w: negative par values", ErrDeserialization)
	}

	if r := s.LastResult; r != nil {
		if !ValidAlgorithm(r.Algorithm) {
			return fmt.Errorf("%w: result algorithm %q", ErrDeserialization, r.Algorithm)
		}
		if r.PathFound != (len(r.Path) > 0) {
			return fmt.Errorf("%w: path_found contradicts path of %d cells", ErrDeserialization, len(r.Path))
		}
		if r.PathLength != len(r.Path) {
			return fmt.Errorf("%w: path_length %d but path has %d cells", ErrDeserialization, r.PathLength, len(r.Path))
		}
		if r.NodesExpanded < 0 || r.PathCost < 0 {
			return fmt.Errorf("%w: negative result counters", ErrDeserialization)
		}
		for i, p := range r.Path {
			if !g.InBounds(p) {
				return fmt.Errorf("%w: path cell %d at (%d,%d) is out of bounds", ErrDeserialization, i, p.Row, p.Col)
			}
		}
	}
	return nil
}

// validateMarker checks that a recorded start/goal position agrees with the
// grid contents
func validateMarker(g Grid, p *Position, marker CellType, cellCount int) error {
	if p == nil {
		if cellCount > 0 {
			return fmt.Errorf("%w: grid has a %s cell but no %s position", ErrDeserialization, marker, marker)
		}
		return nil
	}
	if cellCount == 0 {
		return fmt.Errorf("%w: %s position set but grid has no %s cell", ErrDeserialization, marker, marker)
	}
	if !g.InBounds(*p) {
		return fmt.Errorf("%w: %s position (%d,%d) out of bounds", ErrDeserialization, marker, p.Row, p.Col)
	}
	if g.TypeAt(*p) != marker {
		return fmt.Errorf("%w: %s position (%d,%d) points at a %s cell", ErrDeserialization, marker, p.Row, p.Col, g.TypeAt(*p))
	}
	return nil
}
