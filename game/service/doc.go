// Package service provides the business logic layer for GridPath.
//
// The service package implements:
//   - Multi-session game management
//   - Move dispatch with event and score reporting
//   - Bulk move execution
//   - Move history tracking
//   - Level catalog and level pack access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// PackManager loads custom level packs from disk.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation and orchestration. Each session
// holds its own engine.Game; the engine itself stays pure, so this layer owns
// everything stateful around it: persistence, history, events and scores.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	packMgr := config.NewManager("levels")
//	gameService := service.NewGameService(sessionMgr, packMgr)
//
//	// Create a challenge game on level 1
//	info, err := gameService.CreateGame(ctx, service.CreateGameRequest{
//		Mode: engine.Challenge,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Run a search
//	result, err := gameService.Move(ctx, info.ID, engine.MoveRequest{
//		Action:    engine.ActionFindPath,
//		Algorithm: engine.AStar,
//	})
//
// Moves that fail leave the game unchanged; the service records both outcomes
// in the session history, so a client can always replay how a game evolved.
package service
