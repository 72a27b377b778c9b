// Package server holds the shared runtime state of the MCP server: the
// injected note store, the lazily created Google Calendar client, and the
// metrics and health endpoints used when running over HTTP.
package server
