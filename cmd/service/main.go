// Package main is the quotebook command. `serve` (the default) runs the HTTP
// API and `audit` reports broken references in the store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// flags shared by every subcommand.
type flags struct {
	profile  string
	logLevel string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	serve := newServeCommand(f)

	root := &cobra.Command{
		Use:           "quotebook",
		Short:         "Quotes, comments and the users who write them",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.PersistentFlags().StringVar(&f.profile, "profile", "",
		"configuration profile loaded from configs/<profile>.yaml (default $APP_ENVIRONMENT or local)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "",
		"override log.level (trace, debug, info, warn, error)")

	root.AddCommand(serve, newAuditCommand(f))

	return root
}
