// Package cmd provides Cobra CLI commands for harpoon.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reklai/harpoon-telescope/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "harpoon",
		Short: "Pinned tab slots and named sessions for your browser",
		Long: `Harpoon keeps up to four pinned browser tabs in numbered slots and
lets you save the set as a named session to restore later.

Run 'harpoon serve' to start the daemon the browser extension connects to.
The other subcommands read and edit the stored slots and sessions directly;
edits made while the daemon is running are overwritten by its next save.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "serve", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
