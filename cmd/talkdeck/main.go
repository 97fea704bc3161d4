package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talkdeck/talkdeck/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "talkdeck",
		Short: "Reactive state server for browsing engineering talks",
		Long: `Talkdeck serves a talks catalog with live filtering, favorites,
viewing history, and user preferences.

The talk collection is loaded from an RSS/Atom feed and exposed over a
JSON API with a WebSocket event stream. Favorites and preferences are
persisted to a configurable backend (memory, SQLite, or S3).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
