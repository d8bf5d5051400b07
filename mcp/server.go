// Package mcp exposes the catalog sync and read operations as MCP tools,
// the admin back-office trigger surface.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/melodika/melodika-sync/internal/pipeline"
	"github.com/melodika/melodika-sync/internal/store"
)

const (
	serverName    = "melodika-sync"
	serverVersion = "1.2.0"
)

// Deps carries the wired application services the tools operate on.
type Deps struct {
	Pipeline *pipeline.Pipeline
	Store    store.Store
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(deps Deps) error {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	registerTools(s, deps)

	return server.ServeStdio(s)
}
