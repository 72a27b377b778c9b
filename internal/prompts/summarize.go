// Package prompts registers prompt templates with the MCP server.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lvogt/calnotes/internal/errortypes"
	"github.com/lvogt/calnotes/internal/instrumentation"
	"github.com/lvogt/calnotes/internal/notes"
	"github.com/lvogt/calnotes/internal/server"
)

// Summary styles accepted by the summarize-notes prompt.
const (
	StyleBrief    = "brief"
	StyleDetailed = "detailed"
)

// RegisterPrompts registers all prompts with the MCP server.
func RegisterPrompts(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	summarizePrompt := mcp.NewPrompt("summarize-notes",
		mcp.WithPromptDescription("Creates a summary of all stored notes"),
		mcp.WithArgument("style",
			mcp.ArgumentDescription("Summary style: 'brief' (default) or 'detailed'"),
		),
	)

	s.AddPrompt(summarizePrompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return handleSummarizeNotes(ctx, request, sc)
	})

	return nil
}

func handleSummarizeNotes(ctx context.Context, request mcp.GetPromptRequest, sc *server.ServerContext) (*mcp.GetPromptResult, error) {
	style := StyleBrief
	if styleVal, ok := request.Params.Arguments["style"]; ok && styleVal != "" {
		style = styleVal
	}

	text, err := BuildSummaryPrompt(sc.Notes().List(), style)
	if err != nil {
		sc.Metrics().RecordPromptRequest(ctx, "summarize-notes", instrumentation.StatusError)
		return nil, err
	}

	sc.Metrics().RecordPromptRequest(ctx, "summarize-notes", instrumentation.StatusSuccess)

	return mcp.NewGetPromptResult(
		"Summarize the current notes",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

// BuildSummaryPrompt renders the summarize-notes prompt text for the given
// notes and style. Unknown styles are rejected with an invalid-argument
// error rather than silently falling back to brief.
func BuildSummaryPrompt(all []notes.Note, style string) (string, error) {
	var detail string
	switch style {
	case StyleBrief:
		detail = ""
	case StyleDetailed:
		detail = " Give extensive details."
	default:
		return "", errortypes.InvalidArgument("unknown summary style: %s (expected %q or %q)", style, StyleBrief, StyleDetailed)
	}

	if len(all) == 0 {
		return "There are no notes stored yet.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the current notes to summarize:%s\n\n", detail)
	for _, note := range all {
		fmt.Fprintf(&b, "- %s: %s\n", note.Name, note.Content)
	}
	return b.String(), nil
}
