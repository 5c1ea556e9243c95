// Package engine implements the grid pathfinding game at the heart of the
// platform.
//
// The engine models a weighted 2-D grid of cells (empty, wall, mud, water
// plus the start and goal markers), runs three classical search algorithms
// over it, generates mazes, loads catalog levels, and grades search runs
// against level par.
//
// Core Types:
//
// State is the externally visible snapshot of one game. It is immutable by
// contract: Apply takes a State and a MoveRequest and returns a fresh State,
// leaving the input untouched, or the original State beside an error. The
// Engine interface, implemented by Game, wraps that contract with storage of
// the current state and a seeded random source for maze generation.
//
// Search Algorithms:
//
// RunBFS explores by hop count and ignores terrain weights on purpose: the
// platform exists to let players watch it pick a short expensive route where
// Dijkstra and A* pick a longer cheap one. RunDijkstra and RunAStar share
// one relaxation rule; A* adds a Manhattan-distance heuristic, which is
// admissible because no terrain costs less than 1 per step.
//
// Usage:
//
//	game, err := engine.NewGame(engine.Config{Mode: engine.Challenge, Level: 1})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	state, err := game.Move(engine.MoveRequest{
//		Action:    engine.ActionFindPath,
//		Algorithm: engine.AStar,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if score := engine.ScoreState(state); score != nil {
//		fmt.Printf("%d stars\n", score.Stars)
//	}
//
// The package performs no I/O and never logs; errors are sentinel values
// wrapped with context, and every failure leaves the previous state valid.
package engine
