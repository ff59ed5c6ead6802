package github

import (
	"log/slog"
	"net/http"

	"repo-analyzer-agent/internal/config"
	"repo-analyzer-agent/internal/git/github/graphql"
	"repo-analyzer-agent/internal/git/github/rest"
	"repo-analyzer-agent/internal/git/types"
)

// NewProvider creates a GitHub metadata provider based on configuration.
// Returns GraphQL-based provider if RAA_GITHUB_USE_GRAPHQL=true and a token is set, otherwise REST-based.
func NewProvider(cfg *config.Config, httpClient *http.Client) types.MetadataProvider {
	if cfg.GitHubUseGraphQL && cfg.GitHubToken != "" {
		slog.Info("Using GitHub GraphQL API")
		return graphql.NewFetcher(cfg.GitHubToken, httpClient)
	}

	slog.Debug("Using GitHub REST API")
	return rest.NewFetcher(cfg.GitHubToken, httpClient)
}
