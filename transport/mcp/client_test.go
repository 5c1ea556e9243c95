package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

// testState builds a fresh 10x8 sandbox state for canned API responses.
func testState(t *testing.T) engine.State {
	t.Helper()
	state, err := engine.NewState(engine.Config{Width: 10, Height: 8})
	if err != nil {
		t.Fatalf("Failed to create test state: %v", err)
	}
	return state
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return content.Text
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"status": "healthy",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/health", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["status"] != expectedResponse["status"] {
		t.Errorf("Expected status %v, got %v", expectedResponse["status"], response["status"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/games", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/games", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorMessage(t *testing.T) {
	// REST errors carry {"error": msg}; the client should surface the message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "game not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/games/missing", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if err.Error() != "game not found" {
		t.Errorf("Expected 'game not found', got: %v", err)
	}
}

func TestClient_handleCreateGame(t *testing.T) {
	state := testState(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/games" {
			t.Errorf("Expected POST /api/games, got %s %s", r.Method, r.URL.Path)
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["mode"] != "challenge" {
			t.Errorf("Expected mode challenge in request body, got %v", body["mode"])
		}

		resp := service.GameInfo{
			ID:    "test-game-123",
			State: state,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := toolRequest("create_game", map[string]interface{}{
		"mode": "challenge",
	})

	result, err := client.handleCreateGame(ctx, request)
	if err != nil {
		t.Fatalf("handleCreateGame failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "test-game-123") {
		t.Errorf("Expected game ID in result, got: %s", text)
	}
	if !strings.Contains(text, "Legend:") {
		t.Errorf("Expected grid legend in result, got: %s", text)
	}
}

func TestClient_handleGetState(t *testing.T) {
	state := testState(t)
	state.Grid.SetType(engine.Position{Row: 2, Col: 3}, engine.Mud)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/games/test-game/state" {
			t.Errorf("Expected GET /api/games/test-game/state, got %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := toolRequest("get_state", map[string]interface{}{
		"game_id": "test-game",
	})

	result, err := client.handleGetState(ctx, request)
	if err != nil {
		t.Fatalf("handleGetState failed: %v", err)
	}

	text := resultText(t, result)
	expectedFields := []string{
		"Mode: sandbox",
		"Grid: 10x8",
		"Start: not set",
		"~",
		"Legend: S start, G goal",
	}
	for _, field := range expectedFields {
		if !strings.Contains(text, field) {
			t.Errorf("Expected '%s' in formatted output, got: %s", field, text)
		}
	}
}

func TestClient_handlePlaceCell(t *testing.T) {
	state := testState(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/games/test-game/moves" {
			t.Errorf("Expected POST /api/games/test-game/moves, got %s %s", r.Method, r.URL.Path)
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["action"] != "set_cell" {
			t.Errorf("Expected action set_cell, got %v", body["action"])
		}
		if body["row"] != float64(2) || body["col"] != float64(3) {
			t.Errorf("Expected row 2 col 3, got %v %v", body["row"], body["col"])
		}
		if body["cell_type"] != "wall" {
			t.Errorf("Expected cell_type wall, got %v", body["cell_type"])
		}

		json.NewEncoder(w).Encode(service.MoveResult{State: state})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := toolRequest("place_cell", map[string]interface{}{
		"game_id":   "test-game",
		"row":       float64(2),
		"col":       float64(3),
		"cell_type": "wall",
	})

	result, err := client.handlePlaceCell(ctx, request)
	if err != nil {
		t.Fatalf("handlePlaceCell failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Painted (2,3) as wall") {
		t.Errorf("Expected paint confirmation in result, got: %s", text)
	}
}

func TestClient_handlePlaceCell_MissingCoordinates(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := toolRequest("place_cell", map[string]interface{}{
		"game_id":   "test-game",
		"cell_type": "wall",
	})

	result, err := client.handlePlaceCell(ctx, request)
	if err != nil {
		t.Fatalf("handlePlaceCell failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "row and col are required") {
		t.Errorf("Expected missing-coordinate error, got: %s", text)
	}
}

func TestClient_handleFindPath(t *testing.T) {
	state := testState(t)
	state.LastResult = &engine.RunSummary{
		Algorithm:     engine.AStar,
		PathFound:     true,
		PathLength:    10,
		PathCost:      9,
		NodesExpanded: 24,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["action"] != "find_path" {
			t.Errorf("Expected action find_path, got %v", body["action"])
		}
		if body["algorithm"] != "astar" {
			t.Errorf("Expected algorithm astar, got %v", body["algorithm"])
		}

		json.NewEncoder(w).Encode(service.MoveResult{
			State: state,
			Events: []service.GameEvent{
				{Type: "path_found", Message: "astar found a path"},
			},
			Score: &service.ScoreInfo{Stars: 3, Points: 315, Bonus: 15, Mode: engine.Challenge},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := toolRequest("find_path", map[string]interface{}{
		"game_id":   "test-game",
		"algorithm": "astar",
		"intent":    "expecting cost 9 via the top corridor",
	})

	result, err := client.handleFindPath(ctx, request)
	if err != nil {
		t.Fatalf("handleFindPath failed: %v", err)
	}

	text := resultText(t, result)
	expectedFields := []string{
		"path_found: astar found a path",
		"⭐⭐⭐",
		"315 points",
		"Last search: astar found a 10-cell path, cost 9, expanded 24 cells",
	}
	for _, field := range expectedFields {
		if !strings.Contains(text, field) {
			t.Errorf("Expected '%s' in formatted output, got: %s", field, text)
		}
	}
}

func TestClient_handleCompareAlgorithms(t *testing.T) {
	state := testState(t)

	// Canned summaries keyed by the algorithm the client asks for
	summaries := map[string]*engine.RunSummary{
		"bfs":      {Algorithm: engine.BFS, PathFound: true, PathLength: 10, PathCost: 17, NodesExpanded: 44},
		"dijkstra": {Algorithm: engine.Dijkstra, PathFound: true, PathLength: 12, PathCost: 9, NodesExpanded: 58},
		"astar":    {Algorithm: engine.AStar, PathFound: true, PathLength: 12, PathCost: 9, NodesExpanded: 23},
	}

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		algo, _ := body["algorithm"].(string)
		summary, ok := summaries[algo]
		if !ok {
			t.Errorf("Unexpected algorithm in request: %v", body["algorithm"])
		}

		resultState := state
		resultState.LastResult = summary
		json.NewEncoder(w).Encode(service.MoveResult{State: resultState})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := toolRequest("compare_algorithms", map[string]interface{}{
		"game_id": "test-game",
	})

	result, err := client.handleCompareAlgorithms(ctx, request)
	if err != nil {
		t.Fatalf("handleCompareAlgorithms failed: %v", err)
	}

	if calls != 3 {
		t.Errorf("Expected 3 find_path calls, got %d", calls)
	}

	text := resultText(t, result)
	expectedFields := []string{
		"Algorithm comparison:",
		"bfs",
		"dijkstra",
		"astar",
		"44",
		"58",
		"23",
		"keeps the astar run",
	}
	for _, field := range expectedFields {
		if !strings.Contains(text, field) {
			t.Errorf("Expected '%s' in comparison output, got: %s", field, text)
		}
	}
}

func TestClient_handleListLevels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/levels" {
			t.Errorf("Expected GET /api/levels, got %s %s", r.Method, r.URL.Path)
		}

		resp := map[string]interface{}{
			"count": 2,
			"levels": []engine.Level{
				{ID: 1, Name: "First Steps", Difficulty: engine.Easy, Width: 10, Height: 5, ParCost: 9, ParNodes: 25},
				{ID: 2, Name: "The Wall", Difficulty: engine.Easy, Width: 12, Height: 8, ParCost: 15, ParNodes: 50},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleListLevels(ctx, toolRequest("list_levels", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleListLevels failed: %v", err)
	}

	text := resultText(t, result)
	expectedFields := []string{
		"Level Catalog (2 levels)",
		"First Steps",
		"The Wall",
		"par cost",
	}
	for _, field := range expectedFields {
		if !strings.Contains(text, field) {
			t.Errorf("Expected '%s' in level list, got: %s", field, text)
		}
	}
}

func TestClient_handleDescribeCell(t *testing.T) {
	state := testState(t)
	state.Grid.SetType(engine.Position{Row: 2, Col: 3}, engine.Mud)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(state)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := toolRequest("describe_cell", map[string]interface{}{
		"game_id": "test-game",
		"row":     float64(2),
		"col":     float64(3),
	})

	result, err := client.handleDescribeCell(ctx, request)
	if err != nil {
		t.Fatalf("handleDescribeCell failed: %v", err)
	}

	text := resultText(t, result)
	expectedFields := []string{
		"Cell at (2,3)",
		"Symbol: ~",
		"Type: mud",
		"Passable: true",
		"Cost to enter: 5",
	}
	for _, field := range expectedFields {
		if !strings.Contains(text, field) {
			t.Errorf("Expected '%s' in cell description, got: %s", field, text)
		}
	}
}

func TestClient_handleDescribeCell_OutOfBounds(t *testing.T) {
	state := testState(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(state)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := toolRequest("describe_cell", map[string]interface{}{
		"game_id": "test-game",
		"row":     float64(50),
		"col":     float64(50),
	})

	result, err := client.handleDescribeCell(ctx, request)
	if err != nil {
		t.Fatalf("handleDescribeCell failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "out of bounds") {
		t.Errorf("Expected out-of-bounds message, got: %s", text)
	}
	if !strings.Contains(text, "8 rows x 10 cols") {
		t.Errorf("Expected grid dimensions in message, got: %s", text)
	}
}

func TestRenderGrid(t *testing.T) {
	state := testState(t)
	state.Grid.SetType(engine.Position{Row: 0, Col: 1}, engine.Wall)
	state.Grid.SetType(engine.Position{Row: 0, Col: 2}, engine.Mud)
	state.Grid.Cells[1][0].InPath = true
	state.Grid.Cells[1][1].Visited = true

	result := renderGrid(&state)
	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")

	if len(lines) != 8 {
		t.Fatalf("Expected 8 rendered rows, got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], ".#~") {
		t.Errorf("Expected row 0 to start with '.#~', got %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], "*x") {
		t.Errorf("Expected row 1 to start with '*x' (path then expanded), got %q", lines[1])
	}
}

func TestRenderGrid_MarkersWinOverOverlay(t *testing.T) {
	state := testState(t)
	start := engine.Position{Row: 0, Col: 0}
	state.Grid.SetType(start, engine.Start)
	state.Start = &start
	state.Grid.Cells[0][0].InPath = true

	result := renderGrid(&state)
	if !strings.HasPrefix(result, "S") {
		t.Errorf("Expected start marker to win over path overlay, got %q", result[:1])
	}
}

func TestFormatState(t *testing.T) {
	state := testState(t)

	result := formatState(&state)

	expectedFields := []string{
		"Mode: sandbox",
		"Algorithm: bfs",
		"Grid: 10x8",
		"Start: not set",
		"Goal: not set",
		"Legend: S start, G goal, # wall, ~ mud, ≈ water, * path, x expanded",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatState_ChallengeLevel(t *testing.T) {
	state := testState(t)
	state.Mode = engine.Challenge
	state.LevelIndex = 3
	state.LevelName = "Mud Crossing"
	state.ParCost = 12
	state.ParNodes = 60
	start := engine.Position{Row: 2, Col: 0}
	goal := engine.Position{Row: 2, Col: 9}
	state.Start = &start
	state.Goal = &goal

	result := formatState(&state)

	expectedFields := []string{
		"Mode: challenge",
		"Level 3: Mud Crossing (par cost 12, par nodes 60)",
		"Start: (2,0) | Goal: (2,9)",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatState_NoPathFound(t *testing.T) {
	state := testState(t)
	state.LastResult = &engine.RunSummary{
		Algorithm:     engine.Dijkstra,
		PathFound:     false,
		NodesExpanded: 31,
	}

	result := formatState(&state)

	if !strings.Contains(result, "dijkstra found no path after expanding 31 cells") {
		t.Errorf("Expected no-path summary in output, got: %s", result)
	}
}

func TestFormatScore(t *testing.T) {
	score := &service.ScoreInfo{Stars: 2, Points: 200, Mode: engine.Challenge}

	result := formatScore(score)

	if !strings.Contains(result, "⭐⭐") {
		t.Errorf("Expected two stars, got: %s", result)
	}
	if strings.Contains(result, "⭐⭐⭐") {
		t.Errorf("Expected exactly two stars, got: %s", result)
	}
	if !strings.Contains(result, "200 points") {
		t.Errorf("Expected points in output, got: %s", result)
	}
	if !strings.Contains(result, "[challenge]") {
		t.Errorf("Expected grading mode in output, got: %s", result)
	}

	if formatScore(nil) != "" {
		t.Error("Expected empty string for nil score")
	}
}

func TestFormatScore_Bonus(t *testing.T) {
	score := &service.ScoreInfo{Stars: 3, Points: 340, Bonus: 40, Mode: engine.Challenge}

	result := formatScore(score)

	if !strings.Contains(result, "includes 40 bonus") {
		t.Errorf("Expected bonus callout, got: %s", result)
	}
}

func TestFormatMoveResult(t *testing.T) {
	state := testState(t)
	moveResult := &service.MoveResult{
		State: state,
		Events: []service.GameEvent{
			{Type: "maze_generated", Message: "Generated a 10x8 maze"},
		},
		Score: &service.ScoreInfo{Stars: 1, Points: 100, Mode: engine.Sandbox},
	}

	result := formatMoveResult(moveResult)

	expectedFields := []string{
		"maze_generated: Generated a 10x8 maze",
		"Score: ⭐ 100 points",
		"Mode: sandbox",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Moves: []service.MoveRecord{
			{Seq: 1, Request: engine.MoveRequest{Action: engine.ActionSetStart}, Success: true},
			{Seq: 2, Request: engine.MoveRequest{Action: engine.ActionFindPath, Algorithm: engine.AStar}, Success: true},
			{Seq: 3, Request: engine.MoveRequest{Action: engine.ActionNextLevel}, Success: false, Error: "not in challenge mode"},
		},
		TotalMoves: 3,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}

	result := formatHistory(history)

	expectedFields := []string{
		"Move History (Page 1/1)",
		"Total: 3",
		"1. set_start ✓",
		"2. find_path(astar) ✓",
		"3. next_level ✗ (not in challenge mode)",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	result, err := client.handleGameInstructions(ctx, toolRequest("game_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	expectedContent := []string{
		"GridPath Pathfinding Lab - Complete Instructions",
		"GAME OBJECTIVE:",
		"GRID LEGEND:",
		"MOVEMENT MODEL:",
		"THE THREE ALGORITHMS:",
		"SCORING:",
		"STRATEGY NOTES FOR AI AGENTS:",
		"CHALLENGE PROGRESSION:",
		"TYPICAL SESSION:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	// Verifies the client can be created and initialized without errors
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
