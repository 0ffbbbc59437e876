// Package main runs the set configuration MCP server over stdio (for local
// editor use). The same server is mounted on the backend at /mcp when
// mcp_enabled is set.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/2beens/blueprintfitness/internal/config"
	"github.com/2beens/blueprintfitness/internal/execution"
	setsmcp "github.com/2beens/blueprintfitness/internal/sets/mcp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	engine := execution.NewEngine(log.StandardLogger(), cfg.Execution)
	server := setsmcp.NewServer(engine, cfg.Timing())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
