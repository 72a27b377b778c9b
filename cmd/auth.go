package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvogt/calnotes/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		credentialsPath string
		tokenPath       string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Calendar",
		Long: `Run the Google OAuth consent flow and store the resulting token.

Reads the OAuth client file (credentials.json), opens a consent URL in the
browser, and waits for the redirect on a local port. The granted token is
written next to the credentials and refreshed automatically from then on.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, credentialsPath, tokenPath)
		},
	}

	cmd.Flags().StringVar(&credentialsPath, "credentials", "", "Path to the Google OAuth client file. Can also use CALNOTES_CREDENTIALS env var. Default: <config dir>/credentials.json")
	cmd.Flags().StringVar(&tokenPath, "token", "", "Path to write the OAuth token to. Can also use CALNOTES_TOKEN env var. Default: <config dir>/token.json")

	return cmd
}

func runAuth(cmd *cobra.Command, credentialsPath, tokenPath string) error {
	if credentialsPath == "" {
		credentialsPath = google.CredentialsPath()
	}
	if tokenPath == "" {
		tokenPath = google.TokenPath()
	}

	conf, err := google.LoadOAuthConfig(credentialsPath)
	if err != nil {
		return fmt.Errorf(`failed to load OAuth client file %s: %w

Create an OAuth client ID (type "Desktop app") in the Google Cloud console,
download its JSON, and save it at the path above`, credentialsPath, err)
	}

	token, err := google.RunInstalledAppFlow(cmd.Context(), conf, cmd.Printf)
	if err != nil {
		return fmt.Errorf("consent flow failed: %w", err)
	}

	if err := google.SaveToken(tokenPath, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	cmd.Printf("Token saved to %s\n", tokenPath)
	return nil
}
