package gitlab

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/gitlab-org/api/client-go"

	"repo-analyzer-agent/internal/git/types"
)

// Fetcher implements MetadataProvider for projects hosted on one GitLab instance
type Fetcher struct {
	client *gitlab.Client
	host   string
}

// NewFetcher creates a fetcher for the GitLab instance at baseURL
func NewFetcher(baseURL, token string, httpClient *http.Client) (*Fetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitLab base URL %s: %w", baseURL, err)
	}

	client, err := NewClient(baseURL, token, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &Fetcher{client: client, host: strings.ToLower(u.Host)}, nil
}

// Name returns the platform name
func (f *Fetcher) Name() string {
	return "GitLab"
}

// IsRepositoryURL checks if a URL points at a project on the configured GitLab host
func (f *Fetcher) IsRepositoryURL(repositoryURL string) bool {
	_, err := f.projectPath(repositoryURL)
	return err == nil
}

// FetchRepositoryInfo fetches project metadata via GET /projects/:id
func (f *Fetcher) FetchRepositoryInfo(ctx context.Context, repositoryURL string) (*types.RepositoryInfo, error) {
	path, err := f.projectPath(repositoryURL)
	if err != nil {
		return nil, err
	}

	slog.Debug("Fetching GitLab project", "project", path)

	project, _, err := f.client.Projects.GetProject(path, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %s: %w", path, err)
	}

	info := &types.RepositoryInfo{
		Platform:      f.Name(),
		FullName:      project.PathWithNamespace,
		Description:   project.Description,
		URL:           project.WebURL,
		DefaultBranch: project.DefaultBranch,
		Stars:         int(project.StarCount),
		Forks:         int(project.ForksCount),
		Topics:        project.Topics,
	}
	if project.LastActivityAt != nil {
		info.UpdatedAt = *project.LastActivityAt
	}

	return info, nil
}

// projectPath extracts "group/subgroup/project" from a project URL, dropping "/-/..." suffixes and ".git"
func (f *Fetcher) projectPath(repositoryURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(repositoryURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || strings.ToLower(u.Host) != f.host {
		return "", fmt.Errorf("invalid GitLab project URL format: %s", repositoryURL)
	}

	path := u.Path
	if idx := strings.Index(path, "/-/"); idx >= 0 {
		path = path[:idx]
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")

	if strings.Count(path, "/") < 1 {
		return "", fmt.Errorf("invalid GitLab project URL format: %s", repositoryURL)
	}
	return path, nil
}
