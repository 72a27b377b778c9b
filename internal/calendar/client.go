package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/lvogt/calnotes/internal/google"
	"github.com/lvogt/calnotes/internal/instrumentation"
)

// maxSearchResults caps the number of events returned by a search.
const maxSearchResults = 10

// DefaultCalendarID addresses the user's primary calendar.
const DefaultCalendarID = "primary"

// Client wraps the Google Calendar service.
type Client struct {
	svc      *calendar.Service
	conf     *oauth2.Config
	provider google.TokenProvider
	metrics  *instrumentation.Metrics
}

// NewClient creates a Calendar client authenticated through the given
// token provider. It fails if no token has been granted yet.
// metrics may be nil; refreshes then go unrecorded.
func NewClient(ctx context.Context, conf *oauth2.Config, provider google.TokenProvider, metrics *instrumentation.Metrics) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	c := &Client{
		conf:     conf,
		provider: provider,
		metrics:  metrics,
	}
	if err := c.rebuild(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// rebuild creates the calendar service from the provider's current token.
func (c *Client) rebuild(ctx context.Context) error {
	token, err := c.provider.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get Google OAuth token: %w", err)
	}

	httpClient := google.NewHTTPClient(ctx, c.conf, token)
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create Calendar service: %w", err)
	}

	c.svc = svc
	return nil
}

// refreshCredentials forces a token refresh and rebuilds the service with
// the fresh token. Used by the retry-once policy.
func (c *Client) refreshCredentials(ctx context.Context) error {
	token, err := c.provider.ForceRefresh(ctx)
	if err != nil {
		c.metrics.RecordTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		return err
	}
	c.metrics.RecordTokenRefresh(ctx, instrumentation.OAuthResultSuccess)

	httpClient := google.NewHTTPClient(ctx, c.conf, token)
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to recreate Calendar service: %w", err)
	}

	c.svc = svc
	return nil
}

// SearchEvents fetches events in a calendar within a time range, optionally
// filtered by a free-text query. Results are expanded to single events and
// ordered by start time; at most ten events are returned.
func (c *Client) SearchEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]EventSummary, error) {
	var events *calendar.Events
	err := doWithReauth(ctx, func() error {
		call := c.svc.Events.List(calendarID).
			Context(ctx).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(maxSearchResults)

		if query != "" {
			call = call.Q(query)
		}

		var err error
		events, err = call.Do()
		return err
	}, c.refreshCredentials)
	if err != nil {
		return nil, err
	}

	summaries := make([]EventSummary, 0, len(events.Items))
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}
	return summaries, nil
}

// CreateEvent inserts a new event and returns it with the API-assigned ID.
// Attendees are notified of the invitation.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*EventSummary, error) {
	event := buildEvent(input)

	var created *calendar.Event
	err := doWithReauth(ctx, func() error {
		var err error
		created, err = c.svc.Events.Insert(calendarID, event).
			Context(ctx).
			SendUpdates("all").
			Do()
		return err
	}, c.refreshCredentials)
	if err != nil {
		return nil, err
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// buildEvent converts an EventInput into the API request body.
func buildEvent(input EventInput) *calendar.Event {
	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	return event
}
