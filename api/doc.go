// Package api provides the HTTP REST surface for grid pathfinding games.
//
// The api package implements:
//   - RESTful endpoints for game lifecycle and moves
//   - The level catalog and custom level pack endpoints
//   - Move history with pagination
//   - WebSocket upgrade handling
//   - Static file serving for the web UI
//
// Endpoints:
//
// Game Lifecycle:
//   - POST /api/games - Create a game (optional JSON config body)
//   - GET /api/games - List games (sort, order, limit query params)
//   - GET /api/games/{id} - Get one game
//   - DELETE /api/games/{id} - Delete a game
//
// Play:
//   - GET /api/games/{id}/state - Current state snapshot
//   - POST /api/games/{id}/moves - Apply one move
//   - POST /api/games/{id}/moves/bulk - Apply a move sequence
//   - POST /api/games/{id}/reset - Rebuild from the creation config
//   - GET /api/games/{id}/history - Move history with pagination
//
// Levels:
//   - GET /api/levels - The built-in level catalog
//   - GET /api/levels/{number} - One catalog level
//   - GET /api/packs - Custom level packs on disk
//   - GET /api/packs/{id} - One custom pack
//
// Other:
//   - GET /health - Liveness probe
//   - GET /ws/{id} - WebSocket upgrade for live state updates
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Moves are sent as POST with a
// JSON body:
//
//	{
//	  "action": "set_cell|set_start|set_goal|find_path|clear|generate_maze|load_level|next_level",
//	  "row": 3, "col": 4,            // cell placement actions
//	  "cell_type": "wall",           // set_cell
//	  "algorithm": "bfs|dijkstra|astar", // find_path
//	  "level": 3,                    // load_level
//	  "width": 21, "height": 15      // generate_maze
//	}
//
// Bulk moves wrap a sequence: {"moves": [{...}, {...}]}. Failed moves do
// not stop the sequence; each step's outcome is reported.
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as {"error": "message"} with the status chosen by
// the error kind: invalid input is a 400, a missing game, level or pack a
// 404, and a legal-but-impossible request (running a search without
// markers, next_level in sandbox mode, past the last level) a 409.
package api
