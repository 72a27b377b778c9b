// Package cmd implements the command-line interface for calnotes.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing notes and Google Calendar tools
//   - auth: Run the Google OAuth consent flow and store the token
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
