// Package cli implements the homelibrary command line: the HTTP server and
// database maintenance commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/homelibrary/internal/config"
	"github.com/mrlokans/homelibrary/internal/logging"
)

// app carries state shared by all commands of one invocation.
type app struct {
	version string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:           "homelibrary",
		Short:         "Home library tracker backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()

			logger, err := logging.New(a.cfg.Log.Level, a.cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	serve := newServeCommand(a)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		newMigrateCommand(a),
		newResetDBCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
