package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"repo-analyzer-agent/internal"
	"repo-analyzer-agent/internal/config"
	"repo-analyzer-agent/internal/report"
)

func newAnalyzeCommand(app *App) *cobra.Command {
	var (
		url          string
		model        string
		showRepoInfo bool
	)

	cmd := &cobra.Command{
		Use:   "analyze --url <repository-url>",
		Short: "Analyze one repository and print the report",
		Example: `  repo-analyzer analyze --url https://github.com/openai/gpt-oss
  repo-analyzer analyze --url https://github.com/ollama/ollama --model gemini-2.5-pro`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "--- GitHub Repo Analyzer CLI ---")

			if !app.Config.HasCredential() {
				fmt.Fprintf(out, "Error: %s not found. Please create a .env file with your key.\n", config.CredentialEnvVar)
				return nil
			}

			var fetcher internal.RepositoryInfoFetcher
			if showRepoInfo || app.Config.FetchRepoInfo {
				fetcher = app.fetcher()
			}

			req := internal.AnalysisRequest{RepositoryURL: url, Model: model}
			result, info := app.analyzer().AnalyzeWithRepositoryInfo(cmd.Context(), req, internal.LogObserver{}, fetcher)

			return report.RenderCLI(out, result.AnalysisText(), result.TimingText(), info)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "URL of the GitHub repository to analyze")
	cmd.Flags().StringVar(&model, "model", app.Config.DefaultModel(), "Name of the gemini model to use")
	cmd.Flags().BoolVar(&showRepoInfo, "show-repo-info", false, "Print repository metadata above the analysis")
	cmd.MarkFlagRequired("url")

	return cmd
}
