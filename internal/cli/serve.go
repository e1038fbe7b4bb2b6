package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/homelibrary/internal/entrypoint"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		port   int32
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.HTTP.Port = port
			}
			if cmd.Flags().Changed("db") {
				a.cfg.Database.Path = dbPath
			}
			return entrypoint.Run(a.cfg, a.version, a.logger)
		},
	}

	cmd.Flags().Int32Var(&port, "port", 3000, "HTTP port (overrides PORT)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file (overrides DATABASE_FILE)")
	return cmd
}
