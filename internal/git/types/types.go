package types

import (
	"errors"
	"time"
)

// ErrUnsupportedURL is returned when no metadata provider recognises a repository URL
var ErrUnsupportedURL = errors.New("unsupported repository URL")

// RepositoryInfo is display metadata for a repository, platform-agnostic.
// It is shown next to the analysis and never sent to the model.
type RepositoryInfo struct {
	Platform      string    `json:"platform"`       // "GitHub" or "GitLab"
	FullName      string    `json:"full_name"`      // owner/repo or group/subgroup/project
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	DefaultBranch string    `json:"default_branch"`
	Language      string    `json:"language,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	Topics        []string  `json:"topics,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
