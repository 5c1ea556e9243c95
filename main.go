// Command gridpath starts the grid pathfinding game server.
//
// It has two commands:
//  1. "serve" (default) - runs the HTTP server exposing the REST API,
//     WebSocket hub, and an /mcp HTTP endpoint
//  2. "mcp-stdio" - runs an MCP stdio server, reusing a running API server
//     when one is up and starting an internal one otherwise
//
// Configuration comes from flags, the environment (PORT, LEVELS_DIR,
// SESSIONS_DIR, NGROK_AUTHTOKEN, NGROK_DOMAIN), and an optional .env file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/algoquest/gridpath/api"
	"github.com/algoquest/gridpath/game/config"
	"github.com/algoquest/gridpath/game/service"
	"github.com/algoquest/gridpath/game/session"
	"github.com/algoquest/gridpath/transport/mcp"
	"github.com/algoquest/gridpath/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "GridPath Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "gridpath",
		Usage:   "grid pathfinding game server: REST API, WebSocket and MCP",
		Version: Version,
		Commands: []*cli.Command{
			serveCommand(),
			mcpStdioCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket hub and /mcp endpoint",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "levels-dir",
				Usage:   "directory with custom level pack JSON files (optional)",
				Sources: cli.EnvVars("LEVELS_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory for persisted games",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "expose the server through an ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: runServe,
	}
}

func mcpStdioCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp-stdio",
		Aliases: []string{"mcp"},
		Usage:   "run an MCP stdio server backed by the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:8080",
				Usage:   "base URL of a running API server to reuse",
				Sources: cli.EnvVars("API_URL"),
			},
			&cli.StringFlag{
				Name:    "levels-dir",
				Usage:   "directory with custom level pack JSON files (internal server only)",
				Sources: cli.EnvVars("LEVELS_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory for persisted games (internal server only)",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
		},
		Action: runMCPStdio,
	}
}

// runServe starts the HTTP server with the REST API, WebSocket hub, and an
// /mcp proxy endpoint, plus the background session routines. If ngrok is
// enabled it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	gameService, sessionManager, err := initializeServices(cmd.String("levels-dir"), cmd.String("sessions-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	hub := websocket.NewHub(gameService)
	go hub.Run()

	apiServer := api.NewServer(gameService, hub)

	port := int(cmd.Int("port"))
	addr := fmt.Sprintf("%s:%d", cmd.String("host"), port)
	baseURL := fmt.Sprintf("http://%s", addr)

	// The /mcp endpoint proxies tool calls through the same REST API the
	// stdio server uses
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHTTPHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go sessionCleanupRoutine(runCtx, sessionManager)
	go persistenceSyncRoutine(runCtx, sessionManager)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("[SERVER] %s v%s listening on %s", AppName, Version, addr)
		log.Printf("[SERVER] REST API: %s/api", baseURL)
		log.Printf("[SERVER] WebSocket: ws://%s/ws/{game_id}", addr)
		log.Printf("[SERVER] MCP endpoint: %s/mcp", baseURL)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(runCtx, cmd.String("ngrok-domain"), mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("[SERVER] Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[SERVER] HTTP server shutdown error: %v", err)
	}

	// Flush every live game so a restart picks them back up
	if err := sessionManager.SaveAll(); err != nil {
		log.Printf("[SERVER] Failed to save sessions on shutdown: %v", err)
	}

	wg.Wait()
	log.Println("[SERVER] Server stopped")
	return nil
}

// runMCPStdio runs an MCP stdio server. It reuses an already-running API
// server when one answers at the configured URL; otherwise it starts a
// minimal internal API bound to a random loopback port and targets that.
func runMCPStdio(ctx context.Context, cmd *cli.Command) error {
	baseURL := cmd.String("api-url")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(baseURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("[MCP] Using external API server at %s", baseURL)
	} else {
		log.Printf("[MCP] No API server at %s, starting an internal one", baseURL)

		gameService, _, err := initializeServices(cmd.String("levels-dir"), cmd.String("sessions-dir"))
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub(gameService)
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("[MCP] Internal HTTP server error: %v", err)
			}
		}()

		// Give the listener a moment before the first tool call arrives
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", listener.Addr())
		log.Printf("[MCP] Internal API server at %s", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Println("[MCP] stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// initializeServices wires persistence, the session manager and the optional
// level pack manager into a game service
func initializeServices(levelsDir, sessionsDir string) (service.GameService, *session.Manager, error) {
	persistence, err := session.NewFilePersistence(sessionsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadPersisted(); err != nil {
		log.Printf("[SESSION] Warning: failed to load persisted sessions: %v", err)
	}

	// Level packs are optional; without a pack directory the built-in
	// catalog is all there is
	var packManager service.PackManager
	if levelsDir != "" {
		pm, err := config.NewManager(levelsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create level pack manager: %w", err)
		}
		packManager = pm
	}

	gameService := service.NewGameService(sessionManager, packManager)
	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically drops games idle for more than a day.
// Persisted copies survive and reload on the next access.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpired(24 * time.Hour); removed > 0 {
				log.Printf("[SESSION] Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// persistenceSyncRoutine keeps memory in step with the sessions directory:
// deleting a session file on disk removes the game without a restart
func persistenceSyncRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := manager.PruneOrphans(); pruned > 0 {
				log.Printf("[SESSION] Pruned %d orphaned sessions from memory", pruned)
			}
		}
	}
}

// mcpHTTPHandler exposes the MCP server over a single POST endpoint so
// HTTP-capable MCP clients can skip stdio
func mcpHTTPHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(data)
	}
}

// runNgrokTunnel serves the router through a public ngrok endpoint. The auth
// token comes from NGROK_AUTHTOKEN; without it the tunnel is skipped.
func runNgrokTunnel(ctx context.Context, domain string, handler http.Handler) {
	authToken := os.Getenv("NGROK_AUTHTOKEN")
	if authToken == "" {
		log.Println("[NGROK] Tunnel requested but NGROK_AUTHTOKEN is not set; skipping")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("[NGROK] Using custom domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("[NGROK] Failed to start tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("[NGROK] Failed to close tunnel: %v", err)
		}
	}()

	url := tun.URL()
	log.Printf("[NGROK] Tunnel established: %s", url)
	log.Printf("[NGROK]   REST API: %s/api", url)
	log.Printf("[NGROK]   WebSocket: %s/ws/{game_id}", url)
	log.Printf("[NGROK]   MCP endpoint: %s/mcp", url)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("[NGROK] Server error: %v", err)
	}
	log.Println("[NGROK] Tunnel closed")
}
