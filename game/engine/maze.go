package engine

import (
	"math/rand"
	"time"
)

// Terrain conversion rates for the pass after carving
const (
	mazeWaterRate = 0.06
	mazeMudRate   = 0.12
)

// mazeDirections are the two-step carve offsets: up, down, left, right
var mazeDirections = []Position{
	{Row: -2, Col: 0},
	{Row: 2, Col: 0},
	{Row: 0, Col: -2},
	{Row: 0, Col: 2},
}

// CarveMaze generates a connected maze of the given size. Every cell begins
// as wall; passages are carved by recursive backtracking from (1,1): visit a
// random uncarved cell two steps away, knock down the wall between, and
// backtrack when no candidate remains. Each carved cell is therefore
// reachable from the start. A second pass converts some carved cells to mud
// or water, which changes path costs but cannot disconnect anything.
//
// The start cell is (1,1) and the goal cell (height-2, width-2); both are
// forced passable. Dimensions are clamped to [MinGridSize, MaxGridSize].
func CarveMaze(width, height int, rng *rand.Rand) Grid {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	width = clampGridSize(width)
	height = clampGridSize(height)

	g := NewGrid(width, height)
	for row := range g.Cells {
		for col := range g.Cells[row] {
			g.Cells[row][col] = Cell{Type: Wall}
		}
	}

	start := Position{Row: 1, Col: 1}
	g.SetType(start, Empty)
	stack := []Position{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		next, ok := pickCarveTarget(g, current, rng)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		between := Position{
			Row: current.Row + (next.Row-current.Row)/2,
			Col: current.Col + (next.Col-current.Col)/2,
		}
		g.SetType(between, Empty)
		g.SetType(next, Empty)
		stack = append(stack, next)
	}

	sprinkleTerrain(&g, rng)

	goal := Position{Row: height - 2, Col: width - 2}
	if goal.Row%2 == 0 && goal.Col%2 == 0 {
		// Off the odd carve lattice in both axes: open the cell above, whose
		// left neighbor is a lattice cell, so the goal joins the maze
		g.SetType(Position{Row: goal.Row - 1, Col: goal.Col}, Empty)
	}
	g.SetType(start, Start)
	g.SetType(goal, Goal)
	return g
}

// pickCarveTarget returns a random uncarved cell two steps from current,
// staying inside the outer wall ring
func pickCarveTarget(g Grid, current Position, rng *rand.Rand) (Position, bool) {
	dirs := make([]Position, len(mazeDirections))
	copy(dirs, mazeDirections)
	rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, d := range dirs {
		next := Position{Row: current.Row + d.Row, Col: current.Col + d.Col}
		if next.Row < 1 || next.Row > g.Height-2 || next.Col < 1 || next.Col > g.Width-2 {
			continue
		}
		if g.TypeAt(next) == Wall {
			return next, true
		}
	}
	return Position{}, false
}

// sprinkleTerrain converts a fraction of carved cells to weighted terrain
func sprinkleTerrain(g *Grid, rng *rand.Rand) {
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col].Type != Empty {
				continue
			}
			switch roll := rng.Float64(); {
			case roll < mazeWaterRate:
				g.Cells[row][col] = Cell{Type: Water}
			case roll < mazeWaterRate+mazeMudRate:
				g.Cells[row][col] = Cell{Type: Mud}
			}
		}
	}
}

// clampGridSize limits a maze dimension to the supported range
func clampGridSize(n int) int {
	if n < MinGridSize {
		return MinGridSize
	}
	if n > MaxGridSize {
		return MaxGridSize
	}
	return n
}
