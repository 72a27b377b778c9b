// Package notes_tools registers note management tools with the MCP server.
package notes_tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lvogt/calnotes/internal/instrumentation"
	"github.com/lvogt/calnotes/internal/logging"
	"github.com/lvogt/calnotes/internal/notes"
	"github.com/lvogt/calnotes/internal/resources"
	"github.com/lvogt/calnotes/internal/server"
)

// ListChangedNotification is sent after a successful add so connected
// clients re-list resources.
const ListChangedNotification = "notifications/resources/list_changed"

// RegisterNoteTools registers all note-related tools with the MCP server.
func RegisterNoteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	addNoteTool := mcp.NewTool("notes_add",
		mcp.WithDescription("Add a new note to the server, or overwrite an existing note with the same name"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the note; becomes the note://<name> resource URI"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Content of the note"),
		),
	)

	s.AddTool(addNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAddNote(ctx, request, s, sc)
	})

	return nil
}

func handleAddNote(ctx context.Context, request mcp.CallToolRequest, s *mcpserver.MCPServer, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		sc.Metrics().RecordToolInvocation(ctx, "notes_add", instrumentation.StatusError, time.Since(start))
		return mcp.NewToolResultError("name is required"), nil
	}

	content, ok := args["content"].(string)
	if !ok || content == "" {
		sc.Metrics().RecordToolInvocation(ctx, "notes_add", instrumentation.StatusError, time.Since(start))
		return mcp.NewToolResultError("content is required"), nil
	}

	created := sc.Notes().Put(name, content)
	note := notes.Note{Name: name, Content: content}

	// Keep resources/list in sync: register a concrete entry for the new
	// note, then tell clients the list changed. Overwrites re-register the
	// same URI, which replaces the previous entry.
	resources.AddNoteResource(s, sc, note)
	s.SendNotificationToAllClients(ListChangedNotification, nil)

	if created {
		sc.Metrics().NoteAdded(ctx)
	}
	sc.Metrics().RecordToolInvocation(ctx, "notes_add", instrumentation.StatusSuccess, time.Since(start))

	slog.Debug("note stored", logging.Tool("notes_add"), logging.Note(name))

	verb := "Added"
	if !created {
		verb = "Updated"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s note %q (%s)", verb, name, note.URI())), nil
}
