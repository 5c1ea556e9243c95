// Package config provides level pack management for GridPath.
//
// The config package handles:
//   - Loading custom level packs from JSON files
//   - Pack validation on load
//   - Pack discovery and listing
//   - Saving packs back to disk
//
// Pack Format:
//
// A level pack is a JSON file in the pack directory with a name, an optional
// description and a list of levels in the catalog format:
//
//	{
//	  "name": "Community Classics",
//	  "description": "Player-submitted mazes",
//	  "levels": [
//	    {
//	      "id": 1,
//	      "name": "Narrow Pass",
//	      "width": 8,
//	      "height": 6,
//	      "map": ["S..#....", "..#..#..", "........", "...#...G"],
//	      "par_cost": 9,
//	      "par_nodes": 30,
//	      "difficulty": "easy"
//	    }
//	  ]
//	}
//
// Map symbols follow the engine: '.' empty, '#' wall, '~' mud, '≈' water,
// 'S' start, 'G' goal. Short rows pad with empty cells.
//
// Usage:
//
//	manager, err := config.NewManager("levels")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific pack
//	pack, err := manager.LoadPack("community")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List available packs
//	packs, err := manager.ListPacks()
//
// Validation:
//
// Every level in a pack is validated on load: dimensions within engine
// bounds, exactly one start and one goal, a goal reachable from the start,
// and pars no lower than the straight-line minimum. A pack with any broken
// level is rejected as a whole.
package config
