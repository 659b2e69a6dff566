package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/b0ase/path402/apps/assetroom/internal/session"
	"github.com/b0ase/path402/apps/assetroom/internal/view"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxWait bounds toggle_connection's wait option.
const maxWait = 10 * time.Second

// --- Input types ---

type emptyInput struct{}

type assetsInput struct {
	Limit int `json:"limit" jsonschema:"max number of assets to return (0 = all)"`
}

type toggleConnectionInput struct {
	Wait bool `json:"wait" jsonschema:"block until a started connect resolves"`
}

// registerTools adds all asset room MCP tools to the server.
func (s *MCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assetroom_dashboard",
		Description: "Full dashboard: load phase, wallet connection, filter, stats and visible assets",
	}, s.handleDashboard)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assetroom_assets",
		Description: "Visible assets with ownership flags, honoring the owned-only filter",
	}, s.handleAssets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assetroom_stats",
		Description: "Total assets, unique owners and the connected wallet's holdings",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assetroom_toggle_connection",
		Description: "Connect the wallet, or disconnect it when connected. Rejected while a connect is pending",
	}, s.handleToggleConnection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assetroom_toggle_filter",
		Description: "Flip the owned-only filter. Requires a connected wallet",
	}, s.handleToggleFilter)
}

// --- Handlers ---

func (s *MCPServer) handleDashboard(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	d := view.Build(s.daemon.AgentSession().Snapshot())

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	fmt.Fprintf(&b, "**Node ID:** `%s`\n", shortNodeID(s.daemon.NodeID()))
	fmt.Fprintf(&b, "**Uptime:** %s\n", s.daemon.Uptime().Round(time.Second))
	fmt.Fprintf(&b, "**Phase:** %s\n\n", d.Phase)

	writeControls(&b, d)
	if d.Error != "" {
		fmt.Fprintf(&b, "\n**Error:** %s\n", d.Error)
		return textResult(b.String()), nil, nil
	}
	if d.Stats != nil {
		b.WriteString("\n")
		writeStats(&b, *d.Stats)
	}
	if d.Skeletons == 0 {
		b.WriteString("\n")
		writeCards(&b, d, 0)
	}
	return textResult(b.String()), nil, nil
}

func (s *MCPServer) handleAssets(_ context.Context, _ *mcp.CallToolRequest, input assetsInput) (*mcp.CallToolResult, any, error) {
	d := view.Build(s.daemon.AgentSession().Snapshot())
	switch {
	case d.Error != "":
		return errResult(d.Error), nil, nil
	case d.Skeletons > 0:
		return textResult("Assets are still loading.\n"), nil, nil
	}

	var b strings.Builder
	writeCards(&b, d, input.Limit)
	return textResult(b.String()), nil, nil
}

func (s *MCPServer) handleStats(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	d := view.Build(s.daemon.AgentSession().Snapshot())
	if d.Error != "" {
		return errResult(d.Error), nil, nil
	}
	if d.Stats == nil {
		return textResult("Stats are available once assets have loaded.\n"), nil, nil
	}
	var b strings.Builder
	writeStats(&b, *d.Stats)
	return textResult(b.String()), nil, nil
}

func (s *MCPServer) handleToggleConnection(ctx context.Context, _ *mcp.CallToolRequest, input toggleConnectionInput) (*mcp.CallToolResult, any, error) {
	sess := s.daemon.AgentSession()
	state, err := sess.ToggleConnection()
	if errors.Is(err, session.ErrConnectInFlight) {
		return errResult("A wallet connect is already in progress."), nil, nil
	}
	if state == session.Connecting && input.Wait {
		waitCtx, cancel := context.WithTimeout(ctx, maxWait)
		defer cancel()
		if err := sess.AwaitConnection(waitCtx); err != nil {
			return errResult(fmt.Sprintf("connect still pending: %v", err)), nil, nil
		}
	}

	snap := sess.Snapshot()
	if snap.ConnectError != "" && snap.State() == session.Disconnected {
		return errResult(fmt.Sprintf("connect failed: %s", snap.ConnectError)), nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Wallet %s", snap.State())
	if snap.Address != "" {
		fmt.Fprintf(&b, " as `%s`", snap.Address)
	}
	b.WriteString(".\n")
	return textResult(b.String()), nil, nil
}

func (s *MCPServer) handleToggleFilter(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	on, err := s.daemon.AgentSession().ToggleOwnedOnlyFilter()
	if errors.Is(err, session.ErrFilterUnavailable) {
		return errResult("Connect a wallet before filtering to owned assets."), nil, nil
	}
	if on {
		return textResult("Showing owned assets only.\n"), nil, nil
	}
	return textResult("Showing all assets.\n"), nil, nil
}

// --- Formatting ---

func writeControls(b *strings.Builder, d view.Dashboard) {
	fmt.Fprintf(b, "## Wallet\n")
	if d.Banner != nil {
		fmt.Fprintf(b, "- Connected: `%s` (owns %d)\n", d.Banner.Address, d.Banner.OwnedCount)
	} else {
		fmt.Fprintf(b, "- %s\n", d.Connect.Label)
	}
	if d.ConnectError != "" {
		fmt.Fprintf(b, "- Last connect error: %s\n", d.ConnectError)
	}
	fmt.Fprintf(b, "- Filter: %s\n", d.Filter.Label)
}

func writeStats(b *strings.Builder, st view.Stats) {
	fmt.Fprintf(b, "## Stats\n")
	fmt.Fprintf(b, "- Total assets: **%d**\n", st.TotalAssets)
	fmt.Fprintf(b, "- Unique owners: **%d**\n", st.UniqueOwners)
	fmt.Fprintf(b, "- Your holdings: **%d**\n", st.OwnedCount)
}

func writeCards(b *strings.Builder, d view.Dashboard, limit int) {
	cards := d.Cards
	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	fmt.Fprintf(b, "## Assets (%d)\n\n", len(d.Cards))
	if d.Empty {
		fmt.Fprintf(b, "%s\n", d.EmptyMessage)
		return
	}
	fmt.Fprintf(b, "| ID | Name | Owner | Owned |\n")
	fmt.Fprintf(b, "|----|------|-------|-------|\n")
	for _, c := range cards {
		owned := ""
		if c.Owned {
			owned = "yes"
		}
		fmt.Fprintf(b, "| `%s` | %s | `%s` | %s |\n", c.ID, c.Name, c.Owner, owned)
	}
}

func shortNodeID(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
