package cmd

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lvogt/calnotes/internal/notes"
	"github.com/lvogt/calnotes/internal/server"
)

func TestRegisterAll(t *testing.T) {
	sc, err := server.NewServerContext(context.Background(), server.Options{Notes: notes.NewStore()})
	if err != nil {
		t.Fatalf("NewServerContext failed: %v", err)
	}

	mcpSrv := mcpserver.NewMCPServer("calnotes", "test",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
		mcpserver.WithPromptCapabilities(true),
	)

	if err := registerAll(mcpSrv, sc); err != nil {
		t.Fatalf("registerAll failed: %v", err)
	}
}

func TestLoadGoogleAuthMissingCredentials(t *testing.T) {
	conf, provider := loadGoogleAuth(t.TempDir()+"/credentials.json", t.TempDir()+"/token.json")
	if conf != nil || provider != nil {
		t.Error("expected nil config and provider when credentials are missing")
	}
}

func TestMetricsEnabledSetting(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		flagChanged bool
		flagValue   bool
		want        bool
	}{
		{name: "default without env", flagValue: true, want: true},
		{name: "env disables default", env: "false", flagValue: true, want: false},
		{name: "env enables", env: "true", flagValue: false, want: true},
		{name: "explicit flag beats env", env: "false", flagChanged: true, flagValue: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("METRICS_ENABLED", tt.env)
			} else {
				t.Setenv("METRICS_ENABLED", "")
			}
			if got := metricsEnabledSetting(tt.flagChanged, tt.flagValue); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMetricsAddrSetting(t *testing.T) {
	t.Setenv("METRICS_ADDR", ":9191")

	if got := metricsAddrSetting(false, ":9090"); got != ":9191" {
		t.Errorf("expected env address :9191, got %q", got)
	}
	if got := metricsAddrSetting(true, ":9090"); got != ":9090" {
		t.Errorf("expected explicit flag address :9090, got %q", got)
	}
}
