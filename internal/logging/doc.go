// Package logging provides slog helpers shared across the server.
//
// The stdio transport owns stdout, so all logs go to stderr (and
// optionally to a debug log file). Attribute keys are defined once here
// so log lines stay greppable across packages.
package logging
