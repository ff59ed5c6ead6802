package shared

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/go-github/v80/github"
)

// RepoURLRegex matches GitHub repository URLs, including deep links into the repository
var RepoURLRegex = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?/?(?:[/?#].*)?$`)

// ParseRepositoryURL extracts owner and repo from a GitHub repository URL
func ParseRepositoryURL(repositoryURL string) (owner, repo string, err error) {
	matches := RepoURLRegex.FindStringSubmatch(strings.TrimSpace(repositoryURL))
	if len(matches) != 3 {
		return "", "", fmt.Errorf("invalid GitHub repository URL format: %s", repositoryURL)
	}
	return matches[1], matches[2], nil
}

// NewRESTClient creates a go-github client; an empty token makes unauthenticated requests
func NewRESTClient(token string, httpClient *http.Client) *github.Client {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}
