package gitlab

import (
	"net/http"

	"gitlab.com/gitlab-org/api/client-go"
)

// NewClient creates a GitLab API client for baseURL; an empty token makes anonymous requests
func NewClient(baseURL, token string, httpClient *http.Client) (*gitlab.Client, error) {
	opts := []gitlab.ClientOptionFunc{gitlab.WithBaseURL(baseURL)}
	if httpClient != nil {
		opts = append(opts, gitlab.WithHTTPClient(httpClient))
	}
	return gitlab.NewClient(token, opts...)
}
