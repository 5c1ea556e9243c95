package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/algoquest/gridpath/game/config"
	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
	"github.com/algoquest/gridpath/game/session"
	"github.com/algoquest/gridpath/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// API routes with clean REST patterns
	api := s.router.PathPrefix("/api").Subrouter()

	// Game lifecycle
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods("DELETE")

	// Play
	api.HandleFunc("/games/{id}/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/games/{id}/moves", s.handleMove).Methods("POST")
	api.HandleFunc("/games/{id}/moves/bulk", s.handleBulkMove).Methods("POST")
	api.HandleFunc("/games/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/games/{id}/history", s.handleGetHistory).Methods("GET")

	// Level catalog and custom packs
	api.HandleFunc("/levels", s.handleListLevels).Methods("GET")
	api.HandleFunc("/levels/{number}", s.handleGetLevel).Methods("GET")
	api.HandleFunc("/packs", s.handleListPacks).Methods("GET")
	api.HandleFunc("/packs/{id}", s.handleGetPack).Methods("GET")

	// Health and WebSocket
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws/{id}", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps service errors onto HTTP statuses. Invalid input is a
// 400, missing resources a 404, legal-but-impossible requests a 409.
func statusForError(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, config.ErrPackNotFound):
		return http.StatusNotFound

	case errors.Is(err, session.ErrSessionAlreadyExists),
		errors.Is(err, engine.ErrMissingStartOrGoal),
		errors.Is(err, engine.ErrNotInChallengeMode),
		errors.Is(err, engine.ErrNoMoreLevels):
		return http.StatusConflict

	case errors.Is(err, session.ErrInvalidSessionID),
		errors.Is(err, engine.ErrMissingParameters),
		errors.Is(err, engine.ErrOutOfBounds),
		errors.Is(err, engine.ErrInvalidLevel),
		errors.Is(err, engine.ErrUnknownAlgorithm),
		errors.Is(err, engine.ErrUnknownAction),
		errors.Is(err, engine.ErrDeserialization):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Game Lifecycle Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGameRequest

	// The body is optional; an empty POST creates a default sandbox game
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	info, err := s.service.CreateGame(r.Context(), req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.service.ListGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of games to return

	// Set defaults
	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	// Sort games
	sort.Slice(games, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = games[i].CreatedAt, games[j].CreatedAt
		} else { // "accessed"
			ti, tj = games[i].LastAccessedAt, games[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	// Apply limit if specified
	total := len(games)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(games) {
			games = games[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(games),
		"total": total,
		"games": games,
		"sort":  sortBy,
		"order": order,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	info, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	err := s.service.DeleteGame(r.Context(), gameID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Game %s deleted", gameID),
	})
}

// Play Handlers

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	state, err := s.service.GetState(r.Context(), gameID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	var req engine.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Move(r.Context(), gameID, req)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	// Broadcast to WebSocket clients
	if s.hub != nil {
		s.hub.BroadcastState(gameID, result.State)
	}

	// Compact server log for observability
	if lr := result.State.LastResult; req.Action == engine.ActionFindPath && lr != nil {
		status := "NOT_FOUND"
		if lr.PathFound {
			status = "FOUND"
		}
		fmt.Printf("[MOVE] game=%s find_path algo=%s status=%s cost=%d len=%d expanded=%d\n",
			gameID, lr.Algorithm, status, lr.PathCost, lr.PathLength, lr.NodesExpanded)
	} else {
		fmt.Printf("[MOVE] game=%s action=%s\n", gameID, req.Action)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleBulkMove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	var req struct {
		Moves []engine.MoveRequest `json:"moves"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Moves) == 0 {
		respondError(w, http.StatusBadRequest, "No moves provided")
		return
	}

	result, err := s.service.BulkMove(r.Context(), gameID, req.Moves)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	// Broadcast to WebSocket clients
	if s.hub != nil {
		s.hub.BroadcastState(gameID, result.State)
	}

	// Compact server log for observability
	fmt.Printf("[BULK] game=%s exec=%d/%d failed=%d won=%t\n",
		gameID, result.MovesExecuted, result.RequestedMoves, result.MovesFailed, result.Won)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	state, err := s.service.Reset(r.Context(), gameID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	// Broadcast to WebSocket clients
	if s.hub != nil {
		s.hub.BroadcastState(gameID, state)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Game reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	// Parse query parameters
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetHistory(r.Context(), gameID, opts)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Level Catalog Handlers

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.service.ListLevels(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(levels),
		"levels": levels,
	})
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	number, err := strconv.Atoi(vars["number"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid level number")
		return
	}

	level, err := s.service.GetLevel(r.Context(), number)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, level)
}

// Level Pack Handlers

func (s *Server) handleListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := s.service.ListPacks(r.Context())
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(packs),
		"packs": packs,
	})
}

func (s *Server) handleGetPack(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	packID := vars["id"]

	// Remove .json extension if present
	packID = strings.TrimSuffix(packID, ".json")

	pack, err := s.service.GetPack(r.Context(), packID)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, pack)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	// Verify the game exists before upgrading
	if _, err := s.service.GetGame(r.Context(), gameID); err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	s.hub.ServeWS(w, r, gameID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
