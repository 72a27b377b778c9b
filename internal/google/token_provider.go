package google

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// TokenProvider supplies OAuth tokens for Google API clients.
// The abstraction keeps the calendar client testable and allows token
// sources other than the local file cache.
type TokenProvider interface {
	// Token returns a usable OAuth token, refreshing it transparently
	// when the cached one has expired.
	Token(ctx context.Context) (*oauth2.Token, error)

	// ForceRefresh discards the cached access token and obtains a fresh
	// one from the refresh flow. Used by the retry-once policy after an
	// authentication failure.
	ForceRefresh(ctx context.Context) (*oauth2.Token, error)

	// HasToken reports whether a stored token exists.
	HasToken() bool
}

// FileTokenProvider reads tokens from the local token.json cache and
// persists refreshed tokens back to it.
type FileTokenProvider struct {
	conf      *oauth2.Config
	tokenPath string
}

// NewFileTokenProvider creates a provider over the token cache at tokenPath.
func NewFileTokenProvider(conf *oauth2.Config, tokenPath string) *FileTokenProvider {
	return &FileTokenProvider{
		conf:      conf,
		tokenPath: tokenPath,
	}
}

// Token returns the cached token, letting the OAuth2 token source refresh
// it when expired. A refreshed token is written back to the cache.
func (p *FileTokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	cached, err := LoadToken(p.tokenPath)
	if err != nil {
		return nil, err
	}

	tok, err := p.conf.TokenSource(ctx, cached).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain Google OAuth token: %w", err)
	}

	if tok.AccessToken != cached.AccessToken {
		if err := SaveToken(p.tokenPath, tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

// ForceRefresh obtains a fresh access token regardless of the cached
// token's expiry and persists it. The cached expiry is backdated so the
// token source has no choice but to run the refresh flow.
func (p *FileTokenProvider) ForceRefresh(ctx context.Context) (*oauth2.Token, error) {
	cached, err := LoadToken(p.tokenPath)
	if err != nil {
		return nil, err
	}
	if cached.RefreshToken == "" {
		return nil, fmt.Errorf("cached token has no refresh token; re-run `calnotes auth`")
	}

	cached.Expiry = time.Unix(1, 0)
	tok, err := p.conf.TokenSource(ctx, cached).Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	if err := SaveToken(p.tokenPath, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// HasToken reports whether the token cache file exists.
func (p *FileTokenProvider) HasToken() bool {
	return HasTokenAt(p.tokenPath)
}
