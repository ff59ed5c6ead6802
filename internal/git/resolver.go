package git

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"repo-analyzer-agent/internal/config"
	"repo-analyzer-agent/internal/git/github"
	"repo-analyzer-agent/internal/git/gitlab"
	"repo-analyzer-agent/internal/git/types"
	httputil "repo-analyzer-agent/internal/http"
)

// metadataTimeout bounds each metadata request; the card is optional
const metadataTimeout = 15 * time.Second

// Resolver routes a repository URL to the hosting platform that recognises it
type Resolver struct {
	providers []types.MetadataProvider
}

// NewResolver creates a resolver with the GitHub and GitLab providers configured by cfg
func NewResolver(cfg *config.Config) (*Resolver, error) {
	httpClient := httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout: metadataTimeout,
		Service: "git",
	})

	gitlabFetcher, err := gitlab.NewFetcher(cfg.GitLabBaseURL, cfg.GitLabToken, httpClient)
	if err != nil {
		return nil, err
	}

	return NewResolverWithProviders(github.NewProvider(cfg, httpClient), gitlabFetcher), nil
}

// NewResolverWithProviders creates a resolver over explicit providers, checked in order
func NewResolverWithProviders(providers ...types.MetadataProvider) *Resolver {
	return &Resolver{providers: providers}
}

// ProviderFor returns the first provider that recognises the URL
func (r *Resolver) ProviderFor(repositoryURL string) (types.MetadataProvider, error) {
	for _, provider := range r.providers {
		if provider.IsRepositoryURL(repositoryURL) {
			return provider, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedURL, repositoryURL)
}

// FetchRepositoryInfo fetches display metadata for any supported repository URL
func (r *Resolver) FetchRepositoryInfo(ctx context.Context, repositoryURL string) (*types.RepositoryInfo, error) {
	provider, err := r.ProviderFor(repositoryURL)
	if err != nil {
		return nil, err
	}

	slog.Debug("Fetching repository metadata", "platform", provider.Name(), "url", repositoryURL)

	info, err := provider.FetchRepositoryInfo(ctx, repositoryURL)
	if err != nil {
		return nil, fmt.Errorf("%s metadata: %w", provider.Name(), err)
	}
	return info, nil
}
