package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lvogt/calnotes/internal/calendar"
	"github.com/lvogt/calnotes/internal/instrumentation"
	"github.com/lvogt/calnotes/internal/server"
)

// RegisterEventTools registers event-related tools with the MCP server.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchEventsTool := mcp.NewTool("calendar_search_events",
		mcp.WithDescription("Search calendar events within a time range, optionally filtered by a text query"),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for primary calendar)"),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start time for the range (RFC3339 format, e.g., '2026-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End time for the range (RFC3339 format, e.g., '2026-01-31T23:59:59Z')"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query to filter events"),
		),
	)

	s.AddTool(searchEventsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearchEvents(ctx, request, sc)
	})

	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a new calendar event and notify attendees"),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for primary calendar)"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title/summary"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339 format, e.g., '2026-01-15T14:00:00Z')"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End time (RFC3339 format, e.g., '2026-01-15T15:00:00Z')"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone (e.g., 'America/New_York'). Defaults to UTC."),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
	)

	s.AddTool(createEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCreateEvent(ctx, request, sc)
	})

	return nil
}

func handleSearchEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	calendarID := calendar.DefaultCalendarID
	if calIDVal, ok := args["calendarId"].(string); ok && calIDVal != "" {
		calendarID = calIDVal
	}

	timeMinStr, ok := args["timeMin"].(string)
	if !ok || timeMinStr == "" {
		return searchError(ctx, sc, start, "timeMin is required")
	}
	timeMin, err := time.Parse(time.RFC3339, timeMinStr)
	if err != nil {
		return searchError(ctx, sc, start, fmt.Sprintf("Invalid timeMin format: %v", err))
	}

	timeMaxStr, ok := args["timeMax"].(string)
	if !ok || timeMaxStr == "" {
		return searchError(ctx, sc, start, "timeMax is required")
	}
	timeMax, err := time.Parse(time.RFC3339, timeMaxStr)
	if err != nil {
		return searchError(ctx, sc, start, fmt.Sprintf("Invalid timeMax format: %v", err))
	}

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return searchError(ctx, sc, start, err.Error())
	}

	events, err := client.SearchEvents(ctx, calendarID, timeMin, timeMax, query)
	sc.Metrics().RecordCalendarOperation(ctx, "search", statusOf(err), time.Since(start))
	if err != nil {
		return searchError(ctx, sc, start, fmt.Sprintf("Failed to search events: %v", err))
	}

	sc.Metrics().RecordToolInvocation(ctx, "calendar_search_events", instrumentation.StatusSuccess, time.Since(start))
	return mcp.NewToolResultText(formatEvents(events)), nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	start := time.Now()
	args := request.GetArguments()

	calendarID := calendar.DefaultCalendarID
	if calIDVal, ok := args["calendarId"].(string); ok && calIDVal != "" {
		calendarID = calIDVal
	}

	summary, ok := args["summary"].(string)
	if !ok || summary == "" {
		return createError(ctx, sc, start, "summary is required")
	}

	startStr, ok := args["start"].(string)
	if !ok || startStr == "" {
		return createError(ctx, sc, start, "start is required")
	}
	eventStart, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return createError(ctx, sc, start, fmt.Sprintf("Invalid start format: %v", err))
	}

	endStr, ok := args["end"].(string)
	if !ok || endStr == "" {
		return createError(ctx, sc, start, "end is required")
	}
	eventEnd, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return createError(ctx, sc, start, fmt.Sprintf("Invalid end format: %v", err))
	}

	input := calendar.EventInput{
		Summary: summary,
		Start:   eventStart,
		End:     eventEnd,
	}

	if desc, ok := args["description"].(string); ok {
		input.Description = desc
	}
	if loc, ok := args["location"].(string); ok {
		input.Location = loc
	}
	if tz, ok := args["timeZone"].(string); ok {
		input.TimeZone = tz
	}
	if attendeesStr, ok := args["attendees"].(string); ok && attendeesStr != "" {
		for _, email := range strings.Split(attendeesStr, ",") {
			if email = strings.TrimSpace(email); email != "" {
				input.Attendees = append(input.Attendees, email)
			}
		}
	}

	client, err := getCalendarClient(sc)
	if err != nil {
		return createError(ctx, sc, start, err.Error())
	}

	created, err := client.CreateEvent(ctx, calendarID, input)
	sc.Metrics().RecordCalendarOperation(ctx, "create", statusOf(err), time.Since(start))
	if err != nil {
		return createError(ctx, sc, start, fmt.Sprintf("Failed to create event: %v", err))
	}

	sc.Metrics().RecordToolInvocation(ctx, "calendar_create_event", instrumentation.StatusSuccess, time.Since(start))

	result := fmt.Sprintf("Event created: %s\n", created.Summary)
	result += fmt.Sprintf("ID: %s\n", created.ID)
	result += fmt.Sprintf("Start: %s\n", created.Start.Format(time.RFC3339))
	result += fmt.Sprintf("End: %s\n", created.End.Format(time.RFC3339))
	if created.Location != "" {
		result += fmt.Sprintf("Location: %s\n", created.Location)
	}
	if len(created.Attendees) > 0 {
		result += fmt.Sprintf("Attendees notified: %d\n", len(created.Attendees))
	}

	return mcp.NewToolResultText(result), nil
}

// formatEvents renders search results as readable text.
func formatEvents(events []calendar.EventSummary) string {
	if len(events) == 0 {
		return "No events found in the given time range."
	}

	result := fmt.Sprintf("Found %d events:\n\n", len(events))
	for i, event := range events {
		result += fmt.Sprintf("%d. %s\n", i+1, event.Summary)
		result += fmt.Sprintf("   ID: %s\n", event.ID)
		result += fmt.Sprintf("   Start: %s\n", event.Start.Format(time.RFC3339))
		result += fmt.Sprintf("   End: %s\n", event.End.Format(time.RFC3339))
		if event.Location != "" {
			result += fmt.Sprintf("   Location: %s\n", event.Location)
		}
		if event.Status != "" {
			result += fmt.Sprintf("   Status: %s\n", event.Status)
		}
		if len(event.Attendees) > 0 {
			result += fmt.Sprintf("   Attendees: %d\n", len(event.Attendees))
		}
		result += "\n"
	}
	return result
}

func statusOf(err error) string {
	if err != nil {
		return instrumentation.StatusError
	}
	return instrumentation.StatusSuccess
}

func searchError(ctx context.Context, sc *server.ServerContext, start time.Time, msg string) (*mcp.CallToolResult, error) {
	sc.Metrics().RecordToolInvocation(ctx, "calendar_search_events", instrumentation.StatusError, time.Since(start))
	return mcp.NewToolResultError(msg), nil
}

func createError(ctx context.Context, sc *server.ServerContext, start time.Time, msg string) (*mcp.CallToolResult, error) {
	sc.Metrics().RecordToolInvocation(ctx, "calendar_create_event", instrumentation.StatusError, time.Since(start))
	return mcp.NewToolResultError(msg), nil
}
