package logging

import (
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyTool      = "tool"
	KeyPrompt    = "prompt"
	KeyResource  = "resource"
	KeyNote      = "note"
	KeyCalendar  = "calendar"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Prompt returns a slog attribute for the prompt name.
func Prompt(prompt string) slog.Attr {
	return slog.String(KeyPrompt, prompt)
}

// Resource returns a slog attribute for a resource URI.
func Resource(uri string) slog.Attr {
	return slog.String(KeyResource, uri)
}

// Note returns a slog attribute for a note name.
func Note(name string) slog.Attr {
	return slog.String(KeyNote, name)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that slog omits from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
