// Command semcore-mcp exposes the symbol-table core as a Model Context
// Protocol server: resolve_symbol, list_class_members, and explain_scope
// tools over JSON tree fixtures, for editor and agent integrations.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/arborcode/semcore/internal/mcp"
)

func main() {
	var (
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("semcore-mcp v0.1.0")
		fmt.Println("Model Context Protocol server for the symbol-table core")
		os.Exit(0)
	}

	level := slog.LevelWarn
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	mcpServer := server.NewMCPServer(
		"semcore-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	srv := mcp.NewServer(logger)
	mcp.Register(mcpServer, srv)

	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatalf("server failed: %v", err)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer)
	log.Printf("starting HTTP server on port %d", *portFlag)
	if err := httpServer.Start(fmt.Sprintf(":%d", *portFlag)); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
