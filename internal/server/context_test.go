package server

import (
	"context"
	"testing"

	"github.com/lvogt/calnotes/internal/notes"
)

func newTestContext(t *testing.T) *ServerContext {
	t.Helper()
	sc, err := NewServerContext(context.Background(), Options{Notes: notes.NewStore()})
	if err != nil {
		t.Fatalf("NewServerContext failed: %v", err)
	}
	return sc
}

func TestNewServerContextRequiresStore(t *testing.T) {
	_, err := NewServerContext(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected error when note store is missing")
	}
}

func TestServerContextAccessors(t *testing.T) {
	sc := newTestContext(t)

	if sc.Notes() == nil {
		t.Error("expected note store")
	}
	if sc.Metrics() == nil {
		t.Error("expected non-nil metrics recorder even without instrumentation")
	}
	if sc.Context() == nil {
		t.Error("expected context")
	}
}

func TestCalendarClientWithoutCredentials(t *testing.T) {
	sc := newTestContext(t)

	if client := sc.CalendarClient(); client != nil {
		t.Error("expected nil Calendar client without OAuth configuration")
	}
}

func TestShutdownIdempotent(t *testing.T) {
	sc := newTestContext(t)

	if sc.IsShutdown() {
		t.Error("expected context not shut down initially")
	}

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("expected context to report shut down")
	}

	// Second shutdown must be a no-op.
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("second Shutdown failed: %v", err)
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("expected context to be canceled after shutdown")
	}
}
