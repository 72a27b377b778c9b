package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/oauth2"

	"github.com/lvogt/calnotes/internal/google"
	"github.com/lvogt/calnotes/internal/instrumentation"
	"github.com/lvogt/calnotes/internal/logging"
	"github.com/lvogt/calnotes/internal/notes"
	"github.com/lvogt/calnotes/internal/prompts"
	"github.com/lvogt/calnotes/internal/resources"
	"github.com/lvogt/calnotes/internal/server"
	"github.com/lvogt/calnotes/internal/tools/calendar_tools"
	"github.com/lvogt/calnotes/internal/tools/notes_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode       bool
		transport       string
		httpAddr        string
		credentialsPath string
		tokenPath       string
		logFile         string
		metricsEnabled  bool
		metricsAddr     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide note storage
and Google Calendar tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Google Calendar:
  Calendar tools need OAuth credentials. Place your OAuth client file
  (credentials.json) in the calnotes config directory, or point to it
  with --credentials or the CALNOTES_CREDENTIALS env var, then run
  'calnotes auth' once to grant access. The server starts without
  credentials; calendar tools then report that authorization is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabledSetting(cmd.Flags().Changed("metrics-enabled"), metricsEnabled),
				Addr:    metricsAddrSetting(cmd.Flags().Changed("metrics-addr"), metricsAddr),
			}
			return runServe(transport, debugMode, httpAddr, credentialsPath, tokenPath, logFile, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&credentialsPath, "credentials", "", "Path to the Google OAuth client file. Can also use CALNOTES_CREDENTIALS env var. Default: <config dir>/credentials.json")
	cmd.Flags().StringVar(&tokenPath, "token", "", "Path to the stored OAuth token. Can also use CALNOTES_TOKEN env var. Default: <config dir>/token.json")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Mirror logs to this file in addition to stderr")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr, credentialsPath, tokenPath, logFile string, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	closeLog, err := logging.Setup(debugMode, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	// OAuth credentials are optional at startup. Without them the calendar
	// tools ask the user to run the auth flow.
	oauthConf, tokenProvider := loadGoogleAuth(credentialsPath, tokenPath)

	serverContext, err := server.NewServerContext(shutdownCtx, server.Options{
		Notes:         notes.NewStore(),
		OAuthConfig:   oauthConf,
		TokenProvider: tokenProvider,
		Metrics:       provider.Metrics(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			slog.Warn("error during server context shutdown", logging.Err(err))
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("calnotes", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true), // Subscribe and listChanged
		mcpserver.WithPromptCapabilities(true),
	)

	// Register all tools, resources, and prompts
	if err := registerAll(mcpSrv, serverContext); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(mcpSrv, serverContext, httpAddr, shutdownCtx, metricsConfig, provider)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// metricsEnabledSetting resolves the metrics toggle: an explicit flag wins,
// then the METRICS_ENABLED env var, then the flag default.
func metricsEnabledSetting(flagChanged, flagValue bool) bool {
	if flagChanged {
		return flagValue
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		return v == "true"
	}
	return flagValue
}

// metricsAddrSetting resolves the metrics listen address the same way.
func metricsAddrSetting(flagChanged bool, flagValue string) string {
	if flagChanged {
		return flagValue
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		return v
	}
	return flagValue
}

// loadGoogleAuth loads the OAuth client configuration and token provider.
// Both are nil when no credentials file exists.
func loadGoogleAuth(credentialsPath, tokenPath string) (*oauth2.Config, google.TokenProvider) {
	if credentialsPath == "" {
		credentialsPath = google.CredentialsPath()
	}
	if tokenPath == "" {
		tokenPath = google.TokenPath()
	}

	conf, err := google.LoadOAuthConfig(credentialsPath)
	if err != nil {
		slog.Info("Google Calendar disabled until credentials are provided",
			"credentials", credentialsPath, logging.Err(err))
		return nil, nil
	}

	return conf, google.NewFileTokenProvider(conf, tokenPath)
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAll registers all MCP tools, resources, and prompts.
func registerAll(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type registration struct {
		name     string
		register func() error
	}

	registrations := []registration{
		{
			name: "Note tools",
			register: func() error {
				return notes_tools.RegisterNoteTools(mcpSrv, ctx)
			},
		},
		{
			name: "Calendar tools",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, ctx)
			},
		},
		{
			name: "Note resources",
			register: func() error {
				return resources.RegisterNoteResources(mcpSrv, ctx)
			},
		},
		{
			name: "Prompts",
			register: func() error {
				return prompts.RegisterPrompts(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStreamableHTTPServer(mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, ctx context.Context, metricsConfig MetricsConfig, instrProvider *instrumentation.Provider) error {
	healthChecker := server.NewHealthChecker(serverContext)

	// Start metrics server on its own port if enabled
	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && instrProvider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: instrProvider,
			HealthChecker:           healthChecker,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}()
	}

	// Mount the MCP handler behind the request-metrics middleware on our
	// own HTTP server instead of letting the streamable server listen
	// itself.
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv)
	mux := http.NewServeMux()
	mux.Handle("/mcp", serverContext.Metrics().WrapHTTPHandler(streamable))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	if metricsServer != nil {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsServer.Addr())
		fmt.Printf("  Health endpoints: %s/healthz, %s/readyz\n", metricsServer.Addr(), metricsServer.Addr())
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
