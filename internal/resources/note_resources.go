// Package resources exposes stored notes as MCP resources under the
// note:// scheme.
package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lvogt/calnotes/internal/instrumentation"
	"github.com/lvogt/calnotes/internal/notes"
	"github.com/lvogt/calnotes/internal/server"
)

// NoteMIMEType is the MIME type reported for note resources.
const NoteMIMEType = "text/plain"

// RegisterNoteResources registers the note resource template and one
// concrete resource per note already in the store.
func RegisterNoteResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	template := mcp.NewResourceTemplate(
		"note://{name}",
		"Note",
		mcp.WithTemplateDescription("A stored note, addressed by name"),
		mcp.WithTemplateMIMEType(NoteMIMEType),
	)

	s.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleReadNote(ctx, request, sc)
	})

	for _, note := range sc.Notes().List() {
		AddNoteResource(s, sc, note)
	}

	return nil
}

// AddNoteResource registers a concrete resource entry for a note so it
// appears in resources/list. Re-adding a URI replaces the previous entry,
// so this is safe to call again when a note is overwritten.
func AddNoteResource(s *mcpserver.MCPServer, sc *server.ServerContext, note notes.Note) {
	resource := mcp.NewResource(
		note.URI(),
		note.Name,
		mcp.WithResourceDescription("Note: "+note.Name),
		mcp.WithMIMEType(NoteMIMEType),
	)

	s.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleReadNote(ctx, request, sc)
	})
}

// handleReadNote resolves a note:// URI against the store and returns its
// content. Unknown names and foreign URI schemes surface as not-found
// errors on the protocol.
func handleReadNote(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI

	content, err := sc.Notes().Resolve(uri)
	if err != nil {
		sc.Metrics().RecordResourceRead(ctx, instrumentation.StatusError)
		return nil, err
	}

	sc.Metrics().RecordResourceRead(ctx, instrumentation.StatusSuccess)

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: NoteMIMEType,
			Text:     content,
		},
	}, nil
}
