package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"GridPath Pathfinding Lab",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`GridPath Pathfinding Lab - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build grids, place a start (S) and goal (G), and run search algorithms to
find paths. Challenge mode walks a 10-level catalog with par scores; sandbox
mode is a free editor.

AVAILABLE TOOLS:
- create_game: Create a new game (sandbox or challenge)
- list_games: List all active games
- get_state: Render the current grid and last search result
- place_cell: Paint one cell (empty/wall/mud/water)
- set_start / set_goal: Place the markers
- find_path: Run one algorithm (bfs/dijkstra/astar) and score it
- compare_algorithms: Run all three algorithms and tabulate them
- generate_maze: Replace the grid with a generated maze
- clear_grid: Wipe the grid (or reload the level in challenge mode)
- load_level / next_level: Navigate the challenge catalog
- list_levels: Show the level catalog with pars
- reset_game: Rebuild the game from its creation config
- move_history: View past moves
- describe_cell: Inspect one cell's type, cost and passability
- game_instructions: Get comprehensive rules and strategy notes

NOTE: The 'intent' parameter on find_path/compare_algorithms is a rubber
duck - predict the outcome before running and compare with what happens!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Game lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new game. Sandbox mode gives an empty grid; challenge mode starts the level catalog.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Caller-chosen game ID (optional, lowercase letters, digits, - and _)",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"sandbox", "challenge"},
					"description": "Play mode (default sandbox)",
				},
				"difficulty": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"easy", "medium", "hard"},
					"description": "Preset grid size for sandbox games (default medium, 20x15)",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Explicit grid width 5-50 (overrides difficulty)",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Explicit grid height 5-50 (overrides difficulty)",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Starting catalog level for challenge mode (default 1)",
				},
			},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_state",
		Description: "Get the current game state with an ASCII rendering of the grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGetState)

	// Grid editing
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_cell",
		Description: "Paint one grid cell. Painting over a marker removes the marker.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column (0-based)",
				},
				"cell_type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"empty", "wall", "mud", "water"},
					"description": "Cell type: empty costs 1, mud 5, water 10, wall is impassable",
				},
			},
			Required: []string{"game_id", "row", "col", "cell_type"},
		},
	}, c.handlePlaceCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_start",
		Description: "Place the start marker (S). Any previous start cell becomes empty.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column (0-based)",
				},
			},
			Required: []string{"game_id", "row", "col"},
		},
	}, c.handleSetStart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_goal",
		Description: "Place the goal marker (G). Any previous goal cell becomes empty.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column (0-based)",
				},
			},
			Required: []string{"game_id", "row", "col"},
		},
	}, c.handleSetGoal)

	// Search
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Run a search algorithm from start to goal and score the result. BFS ignores terrain costs; Dijkstra and A* minimize them.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"algorithm": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"bfs", "dijkstra", "astar"},
					"description": "Algorithm to run (defaults to the game's current algorithm)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Predict the path cost and expansion count before running (rubber duck)",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "compare_algorithms",
		Description: "Run bfs, dijkstra and astar on the current grid and tabulate path cost and cells expanded. The game keeps the last run as its current result.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Predict which algorithm expands the fewest cells before running (rubber duck)",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleCompareAlgorithms)

	// Grid generation and levels
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "generate_maze",
		Description: "Replace the grid with a generated maze including start, goal and terrain patches",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Maze width 5-50 (defaults to the current grid width)",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Maze height 5-50 (defaults to the current grid height)",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGenerateMaze)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_grid",
		Description: "Clear the grid. Sandbox games get an empty grid of the same size; challenge games reload the current level.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleClearGrid)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "load_level",
		Description: "Load a catalog level by number and switch the game to challenge mode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Level number (1-based)",
				},
			},
			Required: []string{"game_id", "level"},
		},
	}, c.handleLoadLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_level",
		Description: "Advance to the next catalog level (challenge mode only)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleNextLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List the built-in level catalog with par scores",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	// Bookkeeping
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleResetGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one grid cell: its type, movement cost and passability. Useful for verifying terrain before planning.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column (0-based)",
				},
			},
			Required: []string{"game_id", "row", "col"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// move posts one move to the REST API
func (c *Client) move(gameID string, body map[string]interface{}) (*service.MoveResult, error) {
	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/moves", gameID), body, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Tool handlers

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	body := map[string]interface{}{}
	if gameID, _ := args["game_id"].(string); gameID != "" {
		body["id"] = gameID
	}
	if mode, _ := args["mode"].(string); mode != "" {
		body["mode"] = mode
	}
	if difficulty, _ := args["difficulty"].(string); difficulty != "" {
		body["difficulty"] = difficulty
	}
	if width, ok := args["width"].(float64); ok {
		body["width"] = int(width)
	}
	if height, ok := args["height"].(float64); ok {
		body["height"] = int(height)
	}
	if level, ok := args["level"].(float64); ok {
		body["level"] = int(level)
	}

	var info service.GameInfo
	err := c.apiCall("POST", "/api/games", body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game: %s\n\n%s", info.ID, formatState(&info.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                 `json:"count"`
		Games []*service.GameInfo `json:"games"`
	}

	err := c.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		result += fmt.Sprintf("- %s (%s %s, %dx%d, %d moves, created %s)\n",
			g.ID, g.State.Mode, levelTag(&g.State),
			g.State.Grid.Width, g.State.Grid.Height,
			g.MoveCount, g.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var state engine.State
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/state", gameID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatState(&state)), nil
}

func (c *Client) handlePlaceCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	cellType, _ := args["cell_type"].(string)

	row, rowOK := args["row"].(float64)
	col, colOK := args["col"].(float64)
	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	result, err := c.move(gameID, map[string]interface{}{
		"action":    "set_cell",
		"row":       int(row),
		"col":       int(col),
		"cell_type": cellType,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Painted (%d,%d) as %s\n\n%s", int(row), int(col), cellType, formatState(&result.State))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleSetStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.placeMarker(request, "set_start", "start")
}

func (c *Client) handleSetGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.placeMarker(request, "set_goal", "goal")
}

func (c *Client) placeMarker(request mcp.CallToolRequest, action, label string) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	row, rowOK := args["row"].(float64)
	col, colOK := args["col"].(float64)
	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	result, err := c.move(gameID, map[string]interface{}{
		"action": action,
		"row":    int(row),
		"col":    int(col),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Placed %s at (%d,%d)\n\n%s", label, int(row), int(col), formatState(&result.State))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	algorithm, _ := args["algorithm"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{"action": "find_path"}
	if algorithm != "" {
		body["algorithm"] = algorithm
	}

	result, err := c.move(gameID, body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (c *Client) handleCompareAlgorithms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	algorithms := []engine.Algorithm{engine.BFS, engine.Dijkstra, engine.AStar}
	summaries := make([]*engine.RunSummary, 0, len(algorithms))
	var finalState *engine.State

	for _, algo := range algorithms {
		result, err := c.move(gameID, map[string]interface{}{
			"action":    "find_path",
			"algorithm": string(algo),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %s", algo, err.Error())), nil
		}
		summaries = append(summaries, result.State.LastResult)
		finalState = &result.State
	}

	var b strings.Builder
	b.WriteString("Algorithm comparison:\n\n")
	b.WriteString(fmt.Sprintf("%-10s %-7s %-6s %-6s %s\n", "Algorithm", "Found", "Path", "Cost", "Expanded"))
	for _, s := range summaries {
		if s == nil {
			continue
		}
		found := "no"
		if s.PathFound {
			found = "yes"
		}
		b.WriteString(fmt.Sprintf("%-10s %-7s %-6d %-6d %d\n",
			s.Algorithm, found, s.PathLength, s.PathCost, s.NodesExpanded))
	}

	b.WriteString("\nBFS minimizes hops and ignores terrain; Dijkstra and A* minimize cost.\n")
	b.WriteString("A* uses the Manhattan heuristic to expand fewer cells than Dijkstra.\n")
	b.WriteString("The game keeps the astar run as its current result.\n\n")
	if finalState != nil {
		b.WriteString(renderGrid(finalState))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGenerateMaze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	body := map[string]interface{}{"action": "generate_maze"}
	if width, ok := args["width"].(float64); ok {
		body["width"] = int(width)
	}
	if height, ok := args["height"].(float64); ok {
		body["height"] = int(height)
	}

	result, err := c.move(gameID, body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Generated a %dx%d maze\n\n%s",
		result.State.Grid.Width, result.State.Grid.Height, formatState(&result.State))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleClearGrid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	result, err := c.move(gameID, map[string]interface{}{"action": "clear"})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Grid cleared\n\n" + formatState(&result.State)), nil
}

func (c *Client) handleLoadLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	level, ok := args["level"].(float64)
	if !ok {
		return mcp.NewToolResultError("level is required"), nil
	}

	result, err := c.move(gameID, map[string]interface{}{
		"action": "load_level",
		"level":  int(level),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (c *Client) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	result, err := c.move(gameID, map[string]interface{}{"action": "next_level"})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count  int            `json:"count"`
		Levels []engine.Level `json:"levels"`
	}

	err := c.apiCall("GET", "/api/levels", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Level Catalog (%d levels):\n\n", response.Count)
	for _, lvl := range response.Levels {
		result += fmt.Sprintf("%2d. %-22s %-7s %2dx%-2d par cost %3d, par nodes %3d\n",
			lvl.ID, lvl.Name, lvl.Difficulty, lvl.Width, lvl.Height, lvl.ParCost, lvl.ParNodes)
		if lvl.Description != "" {
			result += fmt.Sprintf("    %s\n", lvl.Description)
		}
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var response struct {
		Message string       `json:"message"`
		State   engine.State `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/reset", gameID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatState(&response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/history%s", gameID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	row, rowOK := args["row"].(float64)
	col, colOK := args["col"].(float64)
	if !rowOK || !colOK {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	var state engine.State
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s/state", gameID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pos := engine.Position{Row: int(row), Col: int(col)}
	if !state.Grid.InBounds(pos) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Position (%d,%d) is out of bounds. The grid is %d rows x %d cols (0-based).",
			pos.Row, pos.Col, state.Grid.Height, state.Grid.Width)), nil
	}

	cell := state.Grid.Cells[pos.Row][pos.Col]
	passable := engine.IsPassable(cell.Type)

	var costLine string
	if passable {
		costLine = fmt.Sprintf("Cost to enter: %d", engine.CostOf(cell.Type))
	} else {
		costLine = "Cost to enter: impassable"
	}

	flags := make([]string, 0, 2)
	if cell.Visited {
		flags = append(flags, "expanded by the last search")
	}
	if cell.InPath {
		flags = append(flags, "on the last found path")
	}
	flagLine := "none"
	if len(flags) > 0 {
		flagLine = strings.Join(flags, ", ")
	}

	result := fmt.Sprintf(`Cell at (%d,%d):
Symbol: %c
Type: %s
Passable: %v
%s
Search flags: %s`,
		pos.Row, pos.Col,
		engine.SymbolFor(cell.Type),
		cell.Type,
		passable,
		costLine,
		flagLine)

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 GridPath Pathfinding Lab - Complete Instructions

GAME OBJECTIVE:
Learn how search algorithms behave by building grids and racing BFS,
Dijkstra and A* across them. Challenge mode walks a 10-level catalog with
par scores; sandbox mode is a free grid editor.

GRID LEGEND:
• S - Start marker (search origin)
• G - Goal marker (search target)
• . - Empty cell, cost 1
• ~ - Mud, cost 5
• ≈ - Water, cost 10
• # - Wall, impassable
• * - Cell on the last found path (state rendering only)
• x - Cell expanded by the last search (state rendering only)

MOVEMENT MODEL:
• Paths move in 4 directions (up/down/left/right), no diagonals
• The cost of a path is the sum of entry costs of every cell after the start
• Walls can never be entered; a fully walled-off goal is unreachable

THE THREE ALGORITHMS:
• bfs: Breadth-first search. Explores hop by hop and returns a path with
  the fewest CELLS, completely ignoring terrain cost. On weighted grids it
  happily marches through water. Use it to see why cost-awareness matters.
• dijkstra: Uniform-cost search. Always returns a cheapest path, but
  explores in every direction and expands many cells.
• astar: Dijkstra plus the Manhattan-distance heuristic. Returns the same
  cheapest cost while expanding fewer cells. The heuristic never
  overestimates on a 4-connected grid, so optimality is preserved.

SCORING:
• Challenge mode: 3 stars for beating both pars (cost and nodes expanded),
  2 stars for cost within 120% of par, 1 star otherwise. Points = stars x
  100 plus a margin bonus for beating the pars with room to spare.
• Sandbox mode: graded on efficiency relative to the grid size.

STRATEGY NOTES FOR AI AGENTS:
1. Read the grid row by row before planning; mud (~) and water (≈) look
   harmless but cost 5x and 10x an empty cell.
2. Use compare_algorithms on every new grid - predicting the table before
   running it is the core exercise.
3. Use describe_cell when unsure what a symbol at some position is.
4. To earn 3 stars, run astar: it matches dijkstra's cost while expanding
   fewer cells, and the node par is tuned for it.
5. BFS CAN be the right answer: on an unweighted grid (no mud or water)
   the fewest-cells path is also the cheapest.
6. generate_maze builds a perfect maze plus terrain patches - compare the
   algorithms on it for dramatic expansion differences.

CHALLENGE PROGRESSION:
• load_level jumps anywhere in the catalog; next_level advances in order
• next_level past the last level reports there are no more levels
• clear_grid in challenge mode reloads the current level fresh

TYPICAL SESSION:
1. create_game (mode=challenge)
2. get_state to read the grid
3. compare_algorithms to see the table
4. find_path (algorithm=astar) to bank a 3-star score
5. next_level and repeat

Good luck, and mind the water! 🌊`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

// levelTag describes the level position for list output
func levelTag(state *engine.State) string {
	if state.LevelIndex > 0 {
		return fmt.Sprintf("level %d", state.LevelIndex)
	}
	if state.LevelName != "" {
		return state.LevelName
	}
	return "custom grid"
}

// renderGrid draws the grid with search overlays: * marks the found path,
// x marks cells the search expanded. Markers and walls always win.
func renderGrid(state *engine.State) string {
	if len(state.Grid.Cells) == 0 {
		return "(no grid)\n"
	}

	var b strings.Builder
	for row := range state.Grid.Cells {
		for col := range state.Grid.Cells[row] {
			cell := state.Grid.Cells[row][col]
			ch := engine.SymbolFor(cell.Type)
			if cell.Type == engine.Empty {
				if cell.InPath {
					ch = '*'
				} else if cell.Visited {
					ch = 'x'
				}
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatState(state *engine.State) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	// Header
	b.WriteString(fmt.Sprintf("Mode: %s | Algorithm: %s | Grid: %dx%d\n",
		state.Mode, state.Algorithm, state.Grid.Width, state.Grid.Height))

	if state.LevelIndex > 0 || state.LevelName != "" {
		b.WriteString(fmt.Sprintf("Level %d: %s", state.LevelIndex, state.LevelName))
		if state.ParCost > 0 {
			b.WriteString(fmt.Sprintf(" (par cost %d, par nodes %d)", state.ParCost, state.ParNodes))
		}
		b.WriteString("\n")
	}

	if state.Start != nil {
		b.WriteString(fmt.Sprintf("Start: (%d,%d)", state.Start.Row, state.Start.Col))
	} else {
		b.WriteString("Start: not set")
	}
	if state.Goal != nil {
		b.WriteString(fmt.Sprintf(" | Goal: (%d,%d)\n", state.Goal.Row, state.Goal.Col))
	} else {
		b.WriteString(" | Goal: not set\n")
	}

	b.WriteString("\n")
	b.WriteString(renderGrid(state))

	// Last search
	if r := state.LastResult; r != nil {
		if r.PathFound {
			b.WriteString(fmt.Sprintf("\nLast search: %s found a %d-cell path, cost %d, expanded %d cells\n",
				r.Algorithm, r.PathLength, r.PathCost, r.NodesExpanded))
		} else {
			b.WriteString(fmt.Sprintf("\nLast search: %s found no path after expanding %d cells\n",
				r.Algorithm, r.NodesExpanded))
		}
	}

	b.WriteString("\nLegend: S start, G goal, # wall, ~ mud, ≈ water, * path, x expanded\n")
	return b.String()
}

func formatScore(score *service.ScoreInfo) string {
	if score == nil {
		return ""
	}
	stars := strings.Repeat("⭐", score.Stars)
	line := fmt.Sprintf("Score: %s %d points", stars, score.Points)
	if score.Bonus > 0 {
		line += fmt.Sprintf(" (includes %d bonus)", score.Bonus)
	}
	return line + fmt.Sprintf(" [%s]\n", score.Mode)
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder

	if len(result.Events) > 0 {
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
		b.WriteString("\n")
	}

	if s := formatScore(result.Score); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}

	b.WriteString(formatState(&result.State))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		line := fmt.Sprintf("%d. %s %s", move.Seq, move.Request.Action, status)
		if move.Request.Action == engine.ActionFindPath && move.Request.Algorithm != "" {
			line = fmt.Sprintf("%d. %s(%s) %s", move.Seq, move.Request.Action, move.Request.Algorithm, status)
		}
		if move.Error != "" {
			line += fmt.Sprintf(" (%s)", move.Error)
		}
		result += line + "\n"
	}

	return result
}
