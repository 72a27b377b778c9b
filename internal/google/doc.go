// Package google handles OAuth2 authentication against Google APIs.
//
// Client credentials are loaded once from a local credentials.json (the
// "installed app" format downloaded from the Google Cloud Console); the
// granted token is cached next to it in token.json. Refresh is modelled as
// an explicit force-refresh on the token provider rather than an implicit
// retry hidden inside the HTTP client.
package google
