package mcpserver

import (
	"context"
	"time"

	"github.com/b0ase/path402/apps/assetroom/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DaemonInfo provides the state MCP tools read and drive.
type DaemonInfo interface {
	NodeID() string
	Uptime() time.Duration
	AgentSession() *session.Session
}

// MCPServer wraps the MCP protocol server with asset room tools.
type MCPServer struct {
	server *mcp.Server
	daemon DaemonInfo
}

// New creates an MCP server with all asset room tools registered.
func New(version string, daemon DaemonInfo) *MCPServer {
	s := &MCPServer{
		daemon: daemon,
		server: mcp.NewServer(
			&mcp.Implementation{
				Name:    "assetroom",
				Version: version,
			},
			&mcp.ServerOptions{
				Instructions: "Game Asset Control Room. One dashboard session is shared by all tools: read the dashboard, assets and stats, connect or disconnect the wallet, and toggle the owned-only filter.",
			},
		),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects.
func (s *MCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
