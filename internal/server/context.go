package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/lvogt/calnotes/internal/calendar"
	"github.com/lvogt/calnotes/internal/google"
	"github.com/lvogt/calnotes/internal/instrumentation"
	"github.com/lvogt/calnotes/internal/notes"
)

// ServerContext holds the shared state of the MCP server. Handlers receive
// it explicitly; there is no package-level state.
type ServerContext struct {
	ctx            context.Context
	cancel         context.CancelFunc
	notes          *notes.Store
	oauthConf      *oauth2.Config
	tokenProvider  google.TokenProvider
	calendarClient *calendar.Client
	metrics        *instrumentation.Metrics
	mu             sync.RWMutex
	shutdown       bool
}

// Options configures a ServerContext.
type Options struct {
	// Notes is the note store handlers operate on. Required.
	Notes *notes.Store

	// OAuthConfig and TokenProvider back the Google Calendar client.
	// Both may be nil; calendar tools then report that authentication
	// is required.
	OAuthConfig   *oauth2.Config
	TokenProvider google.TokenProvider

	// Metrics is the recorder for tool and API metrics. May be nil.
	Metrics *instrumentation.Metrics
}

// NewServerContext creates a new server context. The Calendar client is not
// created here; it is built lazily on first use so the server starts even
// when no Google token has been granted yet.
func NewServerContext(ctx context.Context, opts Options) (*ServerContext, error) {
	if opts.Notes == nil {
		return nil, fmt.Errorf("note store is required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	metrics := opts.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		notes:         opts.Notes,
		oauthConf:     opts.OAuthConfig,
		tokenProvider: opts.TokenProvider,
		metrics:       metrics,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Notes returns the note store.
func (sc *ServerContext) Notes() *notes.Store {
	return sc.notes
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// CalendarClient returns the Google Calendar client, creating and caching it
// on first use. Returns nil if no OAuth credentials or token are available;
// callers should then tell the user to run the auth flow.
func (sc *ServerContext) CalendarClient() *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.calendarClient != nil {
		return sc.calendarClient
	}

	if sc.oauthConf == nil || sc.tokenProvider == nil || !sc.tokenProvider.HasToken() {
		return nil
	}

	client, err := calendar.NewClient(sc.ctx, sc.oauthConf, sc.tokenProvider, sc.metrics)
	if err != nil {
		slog.Warn("failed to create Calendar client", "error", err.Error())
		return nil
	}

	sc.calendarClient = client
	return client
}

// SetCalendarClient sets the Calendar client. Used by tests to inject fakes.
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClient = client
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
