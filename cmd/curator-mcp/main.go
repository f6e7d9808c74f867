package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "curator/internal/adapters/mcp"
	"curator/internal/adapters/miniostore"
	"curator/internal/adapters/openaicls"
	"curator/internal/config"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("curator-mcp: %v", err)
	}

	storage, err := miniostore.New(cfg.Storage)
	if err != nil {
		log.Fatalf("curator-mcp: %v", err)
	}
	classifier := openaicls.New(cfg.Classifier, cfg.LabelSet())

	mcpServer := server.NewMCPServer(
		"curator-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterPipelineTools(mcpServer, storage, classifier, cfg)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("curator-mcp: %v", err)
	}
}
