package calendar

import (
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

func TestToEventSummaryNil(t *testing.T) {
	summary := toEventSummary(nil)
	if summary.ID != "" {
		t.Errorf("expected empty ID for nil event, got %s", summary.ID)
	}
}

func TestToEventSummary(t *testing.T) {
	event := &calendar.Event{
		Id:          "evt-1",
		Summary:     "Standup",
		Description: "Daily sync",
		Location:    "Room 2",
		Status:      "confirmed",
		Start:       &calendar.EventDateTime{DateTime: "2026-03-02T09:00:00Z"},
		End:         &calendar.EventDateTime{DateTime: "2026-03-02T09:15:00Z"},
		Creator:     &calendar.EventCreator{Email: "alice@example.com"},
		Organizer:   &calendar.EventOrganizer{Email: "bob@example.com"},
		Attendees: []*calendar.EventAttendee{
			{Email: "carol@example.com", DisplayName: "Carol", ResponseStatus: "accepted"},
			{Email: "dave@example.com", Optional: true},
		},
	}

	summary := toEventSummary(event)

	if summary.ID != "evt-1" || summary.Summary != "Standup" {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.Start.Format(time.RFC3339) != "2026-03-02T09:00:00Z" {
		t.Errorf("unexpected start: %v", summary.Start)
	}
	if summary.Creator != "alice@example.com" || summary.Organizer != "bob@example.com" {
		t.Errorf("unexpected creator/organizer: %q / %q", summary.Creator, summary.Organizer)
	}
	if len(summary.Attendees) != 2 {
		t.Fatalf("expected 2 attendees, got %d", len(summary.Attendees))
	}
	if summary.Attendees[0].ResponseStatus != "accepted" {
		t.Errorf("unexpected response status: %q", summary.Attendees[0].ResponseStatus)
	}
	if !summary.Attendees[1].Optional {
		t.Error("expected second attendee to be optional")
	}
}

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		name string
		edt  *calendar.EventDateTime
		want string
	}{
		{name: "nil", edt: nil, want: "0001-01-01T00:00:00Z"},
		{
			name: "dateTime",
			edt:  &calendar.EventDateTime{DateTime: "2026-03-02T09:00:00Z"},
			want: "2026-03-02T09:00:00Z",
		},
		{
			name: "all-day date",
			edt:  &calendar.EventDateTime{Date: "2026-03-02"},
			want: "2026-03-02T00:00:00Z",
		},
		{
			name: "garbage",
			edt:  &calendar.EventDateTime{DateTime: "not-a-time"},
			want: "0001-01-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseEventTime(tt.edt)
			if got.UTC().Format(time.RFC3339) != tt.want {
				t.Errorf("parseEventTime = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildEvent(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	input := EventInput{
		Summary:   "Planning",
		Start:     start,
		End:       start.Add(time.Hour),
		Attendees: []string{"a@example.com", "b@example.com"},
	}

	event := buildEvent(input)

	if event.Summary != "Planning" {
		t.Errorf("unexpected summary: %q", event.Summary)
	}
	if event.Start.TimeZone != "UTC" {
		t.Errorf("expected default time zone UTC, got %q", event.Start.TimeZone)
	}
	if event.Start.DateTime != "2026-03-02T09:00:00Z" {
		t.Errorf("unexpected start: %q", event.Start.DateTime)
	}
	if len(event.Attendees) != 2 || event.Attendees[0].Email != "a@example.com" {
		t.Errorf("unexpected attendees: %+v", event.Attendees)
	}

	input.TimeZone = "Europe/Berlin"
	event = buildEvent(input)
	if event.End.TimeZone != "Europe/Berlin" {
		t.Errorf("expected explicit time zone, got %q", event.End.TimeZone)
	}
}
