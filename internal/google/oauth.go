package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

const (
	// CredentialsFileName is the default name of the OAuth client secret file.
	CredentialsFileName = "credentials.json"

	// TokenFileName is the default name of the cached token file.
	TokenFileName = "token.json"

	envCredentials = "CALNOTES_CREDENTIALS"
	envToken       = "CALNOTES_TOKEN"
)

// OAuthScopes are the Google OAuth scopes the server requests.
// Changing them invalidates cached tokens; users must re-run `calnotes auth`.
var OAuthScopes = []string{
	calendar.CalendarScope,
}

// ConfigDir returns the directory where credentials and tokens live.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "calnotes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "calnotes"
	}
	return filepath.Join(home, ".config", "calnotes")
}

// CredentialsPath returns the path of the OAuth client secret file,
// honoring the CALNOTES_CREDENTIALS environment variable.
func CredentialsPath() string {
	if p := os.Getenv(envCredentials); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), CredentialsFileName)
}

// TokenPath returns the path of the cached token file,
// honoring the CALNOTES_TOKEN environment variable.
func TokenPath() string {
	if p := os.Getenv(envToken); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), TokenFileName)
}

// LoadOAuthConfig reads the client secret file and builds the OAuth2
// configuration with the calendar scope.
func LoadOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret file %s: %w", credentialsPath, err)
	}

	conf, err := google.ConfigFromJSON(b, OAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file: %w", err)
	}

	return conf, nil
}

// HasTokenAt reports whether a cached token exists at path.
func HasTokenAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadToken reads a JSON-encoded oauth2.Token from path.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no cached Google OAuth token: %w", err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes a JSON-encoded oauth2.Token to path, creating the
// parent directory if necessary. The file is chmod 0600.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

// NewHTTPClient returns an HTTP client that authenticates requests with
// the given token. HTTP/2 is disabled; the Google APIs occasionally reset
// HTTP/2 streams mid-response.
func NewHTTPClient(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) *http.Client {
	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, tok))

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client
}
