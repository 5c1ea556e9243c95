// Command analyze prints par-setting heuristics for pathfinding levels. It
// runs all three search algorithms on each level and reports the optimal
// cost, how many cells each search expands, suggested par values with a
// margin, and a difficulty hint. Run validate on a pack first; analyze
// assumes its input levels are playable.
//
// Usage:
//
//	analyze                   analyze every catalog level
//	analyze level 7           analyze one catalog level
//	analyze pack levels.json  analyze every level in a pack file
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

// Analysis summarizes one level's search behavior and par suggestions.
type Analysis struct {
	Level             engine.Level
	OptimalCost       int
	OptimalLength     int
	BFSCost           int
	BFSNodes          int
	DijkstraNodes     int
	AStarNodes        int
	SuggestedParCost  int
	SuggestedParNodes int
	Hint              engine.Difficulty
}

// analyzeLevel runs the three algorithms on a level and derives par
// suggestions: par cost is the optimal cost, par nodes is the A* expansion
// count plus a 20% margin for tie-breaking variation.
func analyzeLevel(lvl engine.Level) (Analysis, error) {
	grid, start, goal := engine.ParseLevel(lvl)
	if start == nil || goal == nil {
		return Analysis{}, fmt.Errorf("level %d (%s): missing start or goal marker", lvl.ID, lvl.Name)
	}

	dijkstra := engine.RunDijkstra(grid, *start, *goal)
	if !dijkstra.Found() {
		return Analysis{}, fmt.Errorf("level %d (%s): goal is unreachable from start", lvl.ID, lvl.Name)
	}
	astar := engine.RunAStar(grid, *start, *goal)
	bfs := engine.RunBFS(grid, *start, *goal)

	return Analysis{
		Level:             lvl,
		OptimalCost:       dijkstra.TotalCost,
		OptimalLength:     len(dijkstra.Path),
		BFSCost:           bfs.TotalCost,
		BFSNodes:          bfs.NodesExpanded,
		DijkstraNodes:     dijkstra.NodesExpanded,
		AStarNodes:        astar.NodesExpanded,
		SuggestedParCost:  dijkstra.TotalCost,
		SuggestedParNodes: astar.NodesExpanded + astar.NodesExpanded/5,
		Hint:              difficultyHint(lvl, grid),
	}, nil
}

// difficultyHint grades a level by grid area and terrain presence. It is a
// hint for pack authors, not a rule; the catalog uses hand-picked values.
func difficultyHint(lvl engine.Level, grid engine.Grid) engine.Difficulty {
	area := lvl.Width * lvl.Height
	terrain := engine.CountCellType(grid, engine.Mud) + engine.CountCellType(grid, engine.Water)
	switch {
	case area < 80 && terrain == 0:
		return engine.Easy
	case area < 160:
		return engine.Medium
	default:
		return engine.Hard
	}
}

// analyzePack reads a pack file and analyzes every level in it
func analyzePack(path string) ([]Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack service.Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("invalid pack JSON: %w", err)
	}

	analyses := make([]Analysis, 0, len(pack.Levels))
	for _, lvl := range pack.Levels {
		a, err := analyzeLevel(lvl)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}

func printAnalysis(a Analysis) {
	lvl := a.Level
	fmt.Printf("Name: %s (%dx%d)\n", lvl.Name, lvl.Width, lvl.Height)
	fmt.Printf("Optimal: cost %d over %d cells\n", a.OptimalCost, a.OptimalLength)
	fmt.Printf("Expansions: bfs %d, dijkstra %d, astar %d\n", a.BFSNodes, a.DijkstraNodes, a.AStarNodes)

	if a.BFSCost > a.OptimalCost {
		fmt.Printf("BFS pays %d (+%d over optimal): terrain matters on this level\n", a.BFSCost, a.BFSCost-a.OptimalCost)
	} else {
		fmt.Printf("BFS matches the optimal cost: terrain does not matter here\n")
	}

	fmt.Printf("Suggested pars: cost %d, nodes %d (A* + 20%% margin)\n", a.SuggestedParCost, a.SuggestedParNodes)
	fmt.Printf("Difficulty hint: %s\n", a.Hint)

	if lvl.ParCost > 0 {
		switch {
		case lvl.ParCost < a.OptimalCost:
			fmt.Printf("⚠️  Current par cost %d is below optimal %d: level cannot be beaten at par\n", lvl.ParCost, a.OptimalCost)
		case lvl.ParCost == a.OptimalCost:
			fmt.Printf("✅ Par cost %d is tight to optimal\n", lvl.ParCost)
		default:
			fmt.Printf("✅ Par cost %d leaves %d slack over optimal\n", lvl.ParCost, lvl.ParCost-a.OptimalCost)
		}
	}
	if lvl.ParNodes > 0 {
		if lvl.ParNodes < a.AStarNodes {
			fmt.Printf("⚠️  Current par nodes %d is below A*'s %d expansions: no algorithm can meet it\n", lvl.ParNodes, a.AStarNodes)
		} else {
			fmt.Printf("✅ Par nodes %d covers A*'s %d expansions\n", lvl.ParNodes, a.AStarNodes)
		}
	}
}

func analyzeCatalog() {
	for _, lvl := range engine.Levels {
		fmt.Printf("\n=== Level %d: %s ===\n", lvl.ID, lvl.Name)
		a, err := analyzeLevel(lvl)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printAnalysis(a)
	}
}

func main() {
	args := os.Args[1:]

	switch {
	case len(args) == 0:
		analyzeCatalog()

	case args[0] == "level" && len(args) == 2:
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("Invalid level number: %s\n", args[1])
			os.Exit(1)
		}
		lvl, err := engine.LevelByNumber(n)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n=== Level %d: %s ===\n", lvl.ID, lvl.Name)
		a, err := analyzeLevel(lvl)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		printAnalysis(a)

	case args[0] == "pack" && len(args) == 2:
		analyses, err := analyzePack(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		for _, a := range analyses {
			fmt.Printf("\n=== Level %d: %s ===\n", a.Level.ID, a.Level.Name)
			printAnalysis(a)
		}

	default:
		fmt.Println("Usage: analyze [level <n> | pack <file.json>]")
		os.Exit(1)
	}
}
