// Package mcp exposes read-only zoom diagnostics over the Model Context
// Protocol. It never talks to the browser; it answers which display a point
// falls on and what zoom a window there would get.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/zoom"
)

const (
	ServerName    = "dpizoom"
	ServerVersion = "0.1.0"
)

// Server is the MCP diagnostics server.
type Server struct {
	mcpServer *mcpsdk.Server
	displays  platform.DisplaySource
	policy    zoom.Policy
	logger    *slog.Logger
}

// NewServer creates a server answering from displays with policy.
func NewServer(displays platform.DisplaySource, policy zoom.Policy, logger *slog.Logger) (*Server, error) {
	if displays == nil {
		return nil, fmt.Errorf("mcp server needs a display source")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		displays: displays,
		policy:   policy,
		logger:   logger,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run serves on the stdio transport, blocking until the client goes away.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the connected displays with their bounds in virtual screen pixels and the zoom factor browser windows on each one receive.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "evaluate_zoom",
		Description: "Given a window's top-left corner, report which display it is on and the zoom factor it would be set to. Windows outside every display keep their zoom, reported as matched=false.",
	}, s.handleEvaluateZoom)
}
