package resources

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lvogt/calnotes/internal/errortypes"
	"github.com/lvogt/calnotes/internal/notes"
	"github.com/lvogt/calnotes/internal/server"
)

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), server.Options{Notes: notes.NewStore()})
	if err != nil {
		t.Fatalf("NewServerContext failed: %v", err)
	}
	return sc
}

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestHandleReadNote(t *testing.T) {
	sc := newTestContext(t)
	sc.Notes().Put("todo", "buy milk")

	contents, err := handleReadNote(context.Background(), readRequest("note://todo"), sc)
	if err != nil {
		t.Fatalf("handleReadNote failed: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text contents, got %T", contents[0])
	}
	if text.URI != "note://todo" {
		t.Errorf("unexpected URI: %q", text.URI)
	}
	if text.MIMEType != NoteMIMEType {
		t.Errorf("unexpected MIME type: %q", text.MIMEType)
	}
	if text.Text != "buy milk" {
		t.Errorf("unexpected text: %q", text.Text)
	}
}

func TestHandleReadNoteUnknown(t *testing.T) {
	sc := newTestContext(t)

	_, err := handleReadNote(context.Background(), readRequest("note://missing"), sc)
	if !errortypes.IsNotFound(err) {
		t.Errorf("expected not_found for unknown note, got %v", err)
	}
}

func TestHandleReadNoteForeignScheme(t *testing.T) {
	sc := newTestContext(t)
	sc.Notes().Put("todo", "buy milk")

	_, err := handleReadNote(context.Background(), readRequest("file://todo"), sc)
	if !errortypes.IsNotFound(err) {
		t.Errorf("expected not_found for foreign scheme, got %v", err)
	}
}
