// Package calendar_tools registers Google Calendar tools with the MCP server.
package calendar_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lvogt/calnotes/internal/calendar"
	"github.com/lvogt/calnotes/internal/server"
)

// getCalendarClient retrieves the lazily created Calendar client, or an
// error telling the user how to authorize when no token exists yet.
func getCalendarClient(sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClient()
	if client == nil {
		return nil, fmt.Errorf(`Google Calendar is not authorized yet. To authorize access:

1. Place your OAuth client credentials (credentials.json) in the calnotes config directory
2. Run: calnotes auth
3. Sign in with your Google account and grant Calendar access

You only need to authorize once. The token is refreshed automatically.`)
	}
	return client, nil
}

// RegisterCalendarTools registers all Calendar-related tools with the MCP server.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	return nil
}
