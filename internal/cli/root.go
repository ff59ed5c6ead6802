package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"repo-analyzer-agent/internal"
	"repo-analyzer-agent/internal/config"
	"repo-analyzer-agent/internal/git"
	"repo-analyzer-agent/internal/llm/providers"
)

// App holds the dependencies shared by all commands
type App struct {
	Config    *config.Config
	LLMClient providers.LLMClient            // defaults to Gemini
	Fetcher   internal.RepositoryInfoFetcher // defaults to a resolver built from Config
}

// Execute runs the command line with the loaded configuration
func Execute(ctx context.Context, cfg *config.Config) error {
	return NewRootCommand(&App{Config: cfg}).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Without a subcommand the form is launched.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "repo-analyzer",
		Short: "Analyze a GitHub repository with Gemini and URL context",
		Long: `Repo Analyzer Agent sends a GitHub repository URL to a Gemini model with the
URL context tool enabled and returns a four-section markdown report:
project summary, key technologies, potential use cases and complexity.

Run without a subcommand to launch the interactive form.
Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd, app.Config.ListenAddr)
		},
	}

	root.AddCommand(
		newAnalyzeCommand(app),
		newModelsCommand(app),
		newServeCommand(app),
	)

	return root
}

func (app *App) analyzer() *internal.RepoAnalyzer {
	if app.LLMClient == nil {
		app.LLMClient = providers.NewGemini(app.Config)
	}
	return internal.NewRepoAnalyzer(app.LLMClient)
}

// fetcher returns the metadata source, or nil when it cannot be built
func (app *App) fetcher() internal.RepositoryInfoFetcher {
	if app.Fetcher != nil {
		return app.Fetcher
	}

	resolver, err := git.NewResolver(app.Config)
	if err != nil {
		slog.Warn("Repository metadata disabled", "error", err)
		return nil
	}
	app.Fetcher = resolver
	return app.Fetcher
}
