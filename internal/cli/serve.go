package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"repo-analyzer-agent/internal"
	"repo-analyzer-agent/internal/config"
	"repo-analyzer-agent/internal/web"
)

func newServeCommand(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Launch the interactive analysis form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.ListenAddr, "Address the form listens on")

	return cmd
}

// serve blocks until the command context is cancelled
func (app *App) serve(cmd *cobra.Command, addr string) error {
	if !app.Config.HasCredential() {
		slog.Warn("Analyses will fail until the API key is set", "env", config.CredentialEnvVar)
	}

	var fetcher internal.RepositoryInfoFetcher
	if app.Config.FetchRepoInfo {
		fetcher = app.fetcher()
	}

	server := web.NewServer(app.Config, app.analyzer(), fetcher)
	return server.ListenAndServe(cmd.Context(), addr)
}
