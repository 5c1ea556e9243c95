package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Cell struct {
	Type    string `json:"type"`
	Visited bool   `json:"visited,omitempty"`
	InPath  bool   `json:"in_path,omitempty"`
}

type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]Cell `json:"cells"`
}

type RunSummary struct {
	Algorithm     string     `json:"algorithm"`
	PathFound     bool       `json:"path_found"`
	PathLength    int        `json:"path_length"`
	PathCost      int        `json:"path_cost"`
	NodesExpanded int        `json:"nodes_expanded"`
	Path          []Position `json:"path"`
}

type GameState struct {
	Grid       Grid        `json:"grid"`
	Start      *Position   `json:"start,omitempty"`
	Goal       *Position   `json:"goal,omitempty"`
	Algorithm  string      `json:"algorithm"`
	Mode       string      `json:"mode"`
	LevelIndex int         `json:"level_index"`
	LevelName  string      `json:"level_name,omitempty"`
	ParCost    int         `json:"par_cost,omitempty"`
	ParNodes   int         `json:"par_nodes,omitempty"`
	LastResult *RunSummary `json:"last_result,omitempty"`
}

type Score struct {
	Stars  int    `json:"stars"`
	Points int    `json:"points"`
	Bonus  int    `json:"bonus,omitempty"`
	Mode   string `json:"mode"`
}

type GameInfo struct {
	ID    string    `json:"id"`
	State GameState `json:"state"`
}

type MoveRequest struct {
	Action    string `json:"action"`
	Algorithm string `json:"algorithm,omitempty"`
	Level     *int   `json:"level,omitempty"`
}

type MoveResult struct {
	State GameState `json:"state"`
	Score *Score    `json:"score,omitempty"`
	Won   bool      `json:"won"`
}

type Client struct {
	baseURL string
	gameID  string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) call(method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) CreateGame(level int) (*GameState, error) {
	payload := map[string]interface{}{
		"mode":  "challenge",
		"level": level,
	}
	var info GameInfo
	if err := c.call("POST", "/api/games", payload, &info); err != nil {
		return nil, err
	}
	c.gameID = info.ID
	return &info.State, nil
}

func (c *Client) GetState() (*GameState, error) {
	var state GameState
	if err := c.call("GET", "/api/games/"+c.gameID+"/state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Move(req MoveRequest) (*MoveResult, error) {
	var result MoveResult
	if err := c.call("POST", "/api/games/"+c.gameID+"/moves", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) LevelCount() (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.call("GET", "/api/levels", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	gameID := flag.String("game", "", "Resume an existing game by ID")
	level := flag.Int("level", 0, "Play only this level (0 = whole catalog)")
	algorithms := flag.String("algorithms", "bfs,dijkstra,astar", "Comma-separated algorithms to race")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	algos := strings.Split(*algorithms, ",")
	for i := range algos {
		algos[i] = strings.TrimSpace(algos[i])
	}

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	levelCount, err := client.LevelCount()
	if err != nil {
		log.Fatalf("Failed to reach server: %v", err)
	}

	// Check for saved game ID
	sessionFile := ".gridpath-session"
	savedGameID := ""

	if *gameID != "" {
		savedGameID = *gameID
	} else if data, err := os.ReadFile(sessionFile); err == nil {
		savedGameID = string(bytes.TrimSpace(data))
	}

	var state *GameState
	if savedGameID != "" {
		client.gameID = savedGameID
		log.Printf("🔄 Resuming game: %s", client.gameID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume game (may be expired): %v", err)
			savedGameID = ""
		} else if state.Mode != "challenge" {
			log.Printf("⚠️  Game %s is a %s game; the solver needs challenge mode", client.gameID, state.Mode)
			savedGameID = ""
		}
	}

	if savedGameID == "" {
		startLevel := *level
		if startLevel == 0 {
			startLevel = 1
		}
		state, err = client.CreateGame(startLevel)
		if err != nil {
			log.Fatalf("Failed to create game: %v", err)
		}
		log.Printf("✨ Game created: %s", client.gameID)

		if err := os.WriteFile(sessionFile, []byte(client.gameID), 0644); err != nil {
			log.Printf("Warning: Failed to save game ID: %v", err)
		}
	}

	log.Printf("Catalog has %d levels - starting on level %d: %s",
		levelCount, state.LevelIndex, state.LevelName)

	solver := NewSolver(client, algos, time.Duration(*delayMs)*time.Millisecond, *verbose)

	var results []*LevelResult
	if *level > 0 {
		result, err := solver.PlayLevel(*level)
		if err != nil {
			log.Fatalf("Failed to play level %d: %v", *level, err)
		}
		results = []*LevelResult{result}
	} else {
		results, err = solver.PlayCatalog(levelCount)
		if err != nil {
			log.Fatalf("Failed to play catalog: %v", err)
		}
	}

	printReport(results)

	solved := 0
	for _, r := range results {
		if r.Best != nil && r.Best.PathFound {
			solved++
		}
	}

	if solved == len(results) {
		log.Printf("🎉 Solved all %d levels!", solved)
		log.Printf("Game: %s", client.gameID)
		os.Exit(0)
	}

	log.Printf("❌ Solved %d/%d levels", solved, len(results))
	log.Printf("Game: %s", client.gameID)
	os.Exit(1)
}
