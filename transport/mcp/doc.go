// Package mcp provides the Model Context Protocol interface for the grid
// pathfinding game.
//
// The package is a thin client: every tool call is proxied to the REST API,
// so the MCP process carries no game state of its own and can be restarted
// freely while games live in the API server.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_game: Create a sandbox or challenge game
//   - list_games: List all active games
//   - get_state: Render the grid with search overlays and the last result
//   - place_cell: Paint one cell (empty/wall/mud/water)
//   - set_start / set_goal: Place the search markers
//   - find_path: Run bfs, dijkstra or astar and score the result
//   - compare_algorithms: Run all three algorithms and tabulate them
//   - generate_maze: Replace the grid with a generated maze
//   - clear_grid: Wipe the grid or reload the current level
//   - load_level / next_level: Navigate the challenge catalog
//   - list_levels: Show the level catalog with par scores
//   - reset_game: Rebuild a game from its creation config
//   - move_history: Retrieve move history with pagination
//   - describe_cell: Inspect one cell's type, cost and passability
//   - game_instructions: Full rules and strategy notes
//
// Grid Rendering:
//
// Tool output renders grids as ASCII, one rune per cell: S start, G goal,
// # wall, ~ mud, ≈ water, . empty. After a search, * marks path cells and
// x marks expanded cells so agents can see how much of the grid each
// algorithm touched.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The tool set is built for teaching: compare_algorithms shows the
// cost/expansion trade-off between the three algorithms on any grid, the
// intent parameters invite agents to predict outcomes before running, and
// challenge pars grade how close an agent's choice came to optimal.
package mcp
