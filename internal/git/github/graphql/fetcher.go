package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shurcooL/githubv4"

	ghshared "repo-analyzer-agent/internal/git/github/shared"
	"repo-analyzer-agent/internal/git/types"
)

// Fetcher implements MetadataProvider using GitHub's GraphQL API.
// One query returns everything the REST fetcher needs two calls for (repository and topics).
type Fetcher struct {
	client *githubv4.Client
}

// NewFetcher creates a new GitHub GraphQL-based fetcher; a token is required by the GraphQL API
func NewFetcher(token string, httpClient *http.Client) *Fetcher {
	return &Fetcher{
		client: newClient(token, httpClient),
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

// repositoryQuery selects the display metadata of one repository
type repositoryQuery struct {
	Repository struct {
		NameWithOwner    string
		Description      string
		URL              string
		StargazerCount   int
		ForkCount        int
		UpdatedAt        time.Time
		PrimaryLanguage  *struct{ Name string }
		DefaultBranchRef *struct{ Name string }
		RepositoryTopics struct {
			Nodes []struct {
				Topic struct{ Name string }
			}
		} `graphql:"repositoryTopics(first: 20)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// FetchRepositoryInfo fetches repository metadata with a single GraphQL query
func (f *Fetcher) FetchRepositoryInfo(ctx context.Context, repositoryURL string) (*types.RepositoryInfo, error) {
	owner, repo, err := ghshared.ParseRepositoryURL(repositoryURL)
	if err != nil {
		return nil, err
	}

	slog.Debug("Fetching GitHub repository via GraphQL", "owner", owner, "repo", repo)

	var q repositoryQuery
	variables := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}
	if err := f.client.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to query repository %s/%s: %w", owner, repo, err)
	}

	r := q.Repository
	info := &types.RepositoryInfo{
		Platform:    f.Name(),
		FullName:    r.NameWithOwner,
		Description: r.Description,
		URL:         r.URL,
		Stars:       r.StargazerCount,
		Forks:       r.ForkCount,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.PrimaryLanguage != nil {
		info.Language = r.PrimaryLanguage.Name
	}
	if r.DefaultBranchRef != nil {
		info.DefaultBranch = r.DefaultBranchRef.Name
	}
	for _, node := range r.RepositoryTopics.Nodes {
		info.Topics = append(info.Topics, node.Topic.Name)
	}

	return info, nil
}
