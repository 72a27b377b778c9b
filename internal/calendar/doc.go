// Package calendar wraps the Google Calendar API for the MCP tools.
//
// The client is a pure passthrough: nothing is cached, every search hits
// Events.List and every create hits Events.Insert. API failures are
// classified into auth and upstream errors; auth failures trigger exactly
// one token refresh and retry before being surfaced.
package calendar
