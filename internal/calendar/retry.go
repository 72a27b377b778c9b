package calendar

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/lvogt/calnotes/internal/errortypes"
)

// classify maps a raw Google API error onto a coded error kind.
// HTTP 401 and token-endpoint failures mean the credentials were rejected;
// everything else from the API is an upstream failure.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return errortypes.Auth(err, "Google OAuth token rejected")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized {
			return errortypes.Auth(err, "Google Calendar API rejected credentials")
		}
		return errortypes.Upstream(err, "Google Calendar API error (HTTP %d)", apiErr.Code)
	}

	return errortypes.Upstream(err, "Google Calendar API call failed")
}

// doWithReauth runs op, and on an auth failure refreshes the credentials
// exactly once and retries op once. Any other failure, and any failure of
// the retried op, surfaces immediately. This keeps the refresh policy
// explicit instead of hiding a retry inside the HTTP client.
func doWithReauth(ctx context.Context, op func() error, refresh func(context.Context) error) error {
	err := classify(op())
	if err == nil || !errortypes.IsAuth(err) {
		return err
	}

	if rerr := refresh(ctx); rerr != nil {
		return errortypes.Auth(rerr, "credentials expired and refresh failed")
	}

	return classify(op())
}
