// Command validate provides a small CLI that validates level pack JSON files
// in a directory (default ./levels). It checks:
//   - JSON structure and required fields
//   - Grid dimensions and allowed map symbols (., #, ~, ≈, S, G)
//   - Exactly one start (S) and one goal (G) per level
//   - Unique, positive level IDs within a pack
//   - Connectivity: the goal is reachable from the start via passable cells
//   - Par sanity: par cost and par nodes are achievable on the level
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validSymbols are the runes a level map may contain. Space is permitted so
// rows can be padded; it reads as empty.
var validSymbols = map[rune]bool{
	'.': true,
	'#': true,
	'~': true,
	'≈': true,
	'S': true,
	'G': true,
	' ': true,
}

// validatePack loads and validates a single level pack JSON file. It performs
// structural checks, then per-level symbol, marker, connectivity and par
// checks, accumulating every problem instead of stopping at the first.
func validatePack(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var pack service.Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if pack.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Pack name is required")
	}

	if len(pack.Levels) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Pack has no levels")
		return result
	}

	seenIDs := map[int]bool{}
	totalMud := 0
	totalWater := 0

	for i, lvl := range pack.Levels {
		label := fmt.Sprintf("Level %d (%s)", i+1, lvl.Name)
		errs := validateLevel(lvl)
		for _, e := range errs {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", label, e))
		}

		if lvl.ID <= 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: level ID must be positive, got %d", label, lvl.ID))
		} else if seenIDs[lvl.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: duplicate level ID %d", label, lvl.ID))
		}
		seenIDs[lvl.ID] = true

		// Terrain counts are informational; skip levels whose dimensions
		// would not parse
		if lvl.Width > 0 && lvl.Height > 0 {
			grid, _, _ := engine.ParseLevel(lvl)
			totalMud += engine.CountCellType(grid, engine.Mud)
			totalWater += engine.CountCellType(grid, engine.Water)
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", pack.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Levels: %d", len(pack.Levels)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Terrain: %d mud, %d water", totalMud, totalWater))
		for _, lvl := range pack.Levels {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Level %d: %s (%dx%d, par cost %d, par nodes %d)",
				lvl.ID, lvl.Name, lvl.Width, lvl.Height, lvl.ParCost, lvl.ParNodes))
		}
	}

	return result
}

// validateLevel runs every check on one level and returns the list of
// problems found. Unlike engine.ValidateLevel it does not stop at the first
// failure, and it additionally proves the pars are achievable by running the
// searches.
func validateLevel(lvl engine.Level) []string {
	var errs []string

	if lvl.Name == "" {
		errs = append(errs, "name is required")
	}
	if lvl.Width < engine.MinGridSize || lvl.Width > engine.MaxGridSize {
		errs = append(errs, fmt.Sprintf("width %d outside %d-%d", lvl.Width, engine.MinGridSize, engine.MaxGridSize))
	}
	if lvl.Height < engine.MinGridSize || lvl.Height > engine.MaxGridSize {
		errs = append(errs, fmt.Sprintf("height %d outside %d-%d", lvl.Height, engine.MinGridSize, engine.MaxGridSize))
	}
	if len(lvl.Map) == 0 {
		errs = append(errs, "map is empty")
		return errs
	}
	if len(lvl.Map) > lvl.Height {
		errs = append(errs, fmt.Sprintf("map has %d rows, height is %d", len(lvl.Map), lvl.Height))
	}

	starts := 0
	goals := 0
	for i, row := range lvl.Map {
		symbols := []rune(row)
		if len(symbols) > lvl.Width {
			errs = append(errs, fmt.Sprintf("map row %d has %d cells, width is %d", i+1, len(symbols), lvl.Width))
		}
		for j, r := range symbols {
			if !validSymbols[r] {
				errs = append(errs, fmt.Sprintf("invalid symbol %q at [%d,%d]", r, i+1, j+1))
			}
			switch r {
			case 'S':
				starts++
			case 'G':
				goals++
			}
		}
	}

	if starts != 1 {
		errs = append(errs, fmt.Sprintf("found %d start (S) cells, want exactly 1", starts))
	}
	if goals != 1 {
		errs = append(errs, fmt.Sprintf("found %d goal (G) cells, want exactly 1", goals))
	}
	if len(errs) > 0 {
		return errs
	}

	// Markers are in place; prove the level is playable at par.
	grid, start, goal := engine.ParseLevel(lvl)
	if start == nil || goal == nil {
		errs = append(errs, "markers were lost during parsing")
		return errs
	}

	dijkstra := engine.RunDijkstra(grid, *start, *goal)
	if !dijkstra.Found() {
		errs = append(errs, "goal is unreachable from start")
		return errs
	}

	if floor := engine.ManhattanDistance(*start, *goal); lvl.ParCost < floor {
		errs = append(errs, fmt.Sprintf("par cost %d below straight-line minimum %d", lvl.ParCost, floor))
	}
	if lvl.ParCost < dijkstra.TotalCost {
		errs = append(errs, fmt.Sprintf("par cost %d below optimal cost %d: level cannot be beaten at par", lvl.ParCost, dijkstra.TotalCost))
	}
	if lvl.ParNodes < 1 {
		errs = append(errs, "par nodes must be positive")
	} else if astar := engine.RunAStar(grid, *start, *goal); lvl.ParNodes < astar.NodesExpanded {
		errs = append(errs, fmt.Sprintf("par nodes %d below A* expansion count %d: no algorithm can meet it", lvl.ParNodes, astar.NodesExpanded))
	}

	return errs
}

// main scans a pack directory (first argument, default ./levels) for *.json
// files and validates each one, printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	packDir := "./levels"
	if len(os.Args) > 1 {
		packDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(packDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding pack files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No pack files found in %s\n", packDir)
		return
	}

	allValid := true
	for _, file := range files {
		result := validatePack(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All packs are valid!")
	} else {
		fmt.Println("❌ Some packs have errors")
		os.Exit(1)
	}
}
