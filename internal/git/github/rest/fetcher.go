package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v80/github"

	ghshared "repo-analyzer-agent/internal/git/github/shared"
	"repo-analyzer-agent/internal/git/types"
)

// Fetcher implements MetadataProvider using GitHub's REST API
type Fetcher struct {
	client *github.Client
}

// NewFetcher creates a new GitHub REST-based fetcher
func NewFetcher(token string, httpClient *http.Client) *Fetcher {
	return &Fetcher{
		client: ghshared.NewRESTClient(token, httpClient),
	}
}

// Name returns the platform name
func (f *Fetcher) Name() string {
	return "GitHub"
}

// IsRepositoryURL checks if a URL is a GitHub repository URL
func (f *Fetcher) IsRepositoryURL(url string) bool {
	return ghshared.RepoURLRegex.MatchString(url)
}

// FetchRepositoryInfo fetches repository metadata via GET /repos/{owner}/{repo}
func (f *Fetcher) FetchRepositoryInfo(ctx context.Context, repositoryURL string) (*types.RepositoryInfo, error) {
	owner, repo, err := ghshared.ParseRepositoryURL(repositoryURL)
	if err != nil {
		return nil, err
	}

	repository, resp, err := f.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", owner, repo, err)
	}

	slog.Debug("GitHub API response", "repo", owner+"/"+repo, "rate_limit_remaining", resp.Rate.Remaining)

	return &types.RepositoryInfo{
		Platform:      f.Name(),
		FullName:      repository.GetFullName(),
		Description:   repository.GetDescription(),
		URL:           repository.GetHTMLURL(),
		DefaultBranch: repository.GetDefaultBranch(),
		Language:      repository.GetLanguage(),
		Stars:         repository.GetStargazersCount(),
		Forks:         repository.GetForksCount(),
		Topics:        repository.Topics,
		UpdatedAt:     repository.GetUpdatedAt().Time,
	}, nil
}
