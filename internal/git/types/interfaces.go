package types

import (
	"context"
)

// MetadataProvider represents a git hosting platform (GitHub, GitLab, etc.)
type MetadataProvider interface {
	// IsRepositoryURL checks if a URL points at a repository on this platform
	IsRepositoryURL(url string) bool

	// FetchRepositoryInfo fetches display metadata for a repository URL
	FetchRepositoryInfo(ctx context.Context, repositoryURL string) (*RepositoryInfo, error)

	// Name returns the platform name (e.g., "GitHub", "GitLab")
	Name() string
}
