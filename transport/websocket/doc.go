// Package websocket provides the real-time transport for grid pathfinding games.
//
// The websocket package implements:
//   - Live state broadcasting to every viewer of a game
//   - Move dispatch over the socket, through the same game service as REST
//   - Session-aware connection rooms
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections grouped by game ID. Each client connection runs a
// read pump and a write pump goroutine; the hub's event loop owns the
// room map, so no locks are needed.
//
// Message Protocol:
//
// Frames are JSON-encoded:
//   - Inbound:  {"type": "move", "payload": {"action": "find_path", "algorithm": "astar"}}
//   - Outbound: {"type": "move_result", ...} to the sender,
//     {"type": "state", ...} to every client in the room,
//     {"type": "error", "error": "..."} when an inbound frame fails
//
// Session Integration:
//
// Clients connect to /ws/{id} where id is an existing game ID. State frames
// are broadcast only to clients connected to the same game, including
// updates caused by moves made over REST or MCP.
//
// Usage:
//
//	hub := websocket.NewHub(gameService)
//	go hub.Run()
//
//	// inside an HTTP handler, after verifying the game exists:
//	hub.ServeWS(w, r, gameID)
//
// Concurrency:
//
// Registration, unregistration and broadcasting are serialized through the
// hub's event loop. Multiple clients can connect, disconnect, and send
// moves simultaneously without blocking each other.
package websocket
