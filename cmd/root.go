package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the calnotes application
var rootCmd = &cobra.Command{
	Use:   "calnotes",
	Short: "MCP server for notes and Google Calendar",
	Long: `calnotes is a Model Context Protocol (MCP) server that gives AI
assistants a small note store and access to Google Calendar.

Notes are exposed as note:// resources and managed with tools; the
summarize-notes prompt turns the stored notes into a summarization request.
Calendar tools search the user's calendar and create events on it.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calnotes version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
