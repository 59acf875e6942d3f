package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akrisanov/pinboard-mcp/internal/config"
	"github.com/akrisanov/pinboard-mcp/internal/mcp"
	"github.com/akrisanov/pinboard-mcp/internal/pinboard"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)

	// Best-effort: a missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := pinboard.NewLimiter(cfg.RateInterval)
	client := pinboard.NewClient(cfg, limiter, logger)

	// Verify the credential before any tool becomes reachable.
	lastUpdate, err := client.LastUpdate(pinboard.WithOperation(ctx, "startup"))
	if err != nil {
		logger.Fatalf("pinboard connection check failed: %v", err)
	}
	logger.Printf("connected to pinboard, last update %s", lastUpdate.Format("2006-01-02T15:04:05Z07:00"))

	server := mcp.NewServer(cfg, client, logger)
	var errRun error
	switch cfg.Transport {
	case "http", "streamable-http":
		logger.Printf("starting MCP HTTP transport on %s%s", cfg.HTTPAddr, cfg.HTTPPath)
		errRun = server.RunHTTP(ctx)
	default:
		logger.Printf("starting MCP stdio transport")
		errRun = server.Run(ctx)
	}
	if errRun != nil {
		logger.Fatalf("server stopped with error: %v", errRun)
	}
}
