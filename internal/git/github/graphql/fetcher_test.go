package graphql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	endpoint := server.URL + "/graphql"
	return &Fetcher{client: githubv4.NewEnterpriseClient(endpoint, newAuthenticatedHTTPClient("gh-token", server.Client()))}
}

func TestFetcher_Name(t *testing.T) {
	fetcher := &Fetcher{}
	assert.Equal(t, "GitHub", fetcher.Name())
}

func TestFetcher_IsRepositoryURL(t *testing.T) {
	fetcher := &Fetcher{}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/openai/gpt-oss", true},
		{"https://github.com/owner/repo/compare/v1.0.0...v1.1.0", true},
		{"https://github.com/owner", false},
		{"https://gitlab.com/owner/repo", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, fetcher.IsRepositoryURL(tt.url))
		})
	}
}

func TestFetcher_FetchRepositoryInfo(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if assert.NoError(t, json.Unmarshal(body, &req)) {
			assert.Contains(t, req.Query, "repository(owner: $owner, name: $name)")
			assert.Equal(t, "huggingface", req.Variables["owner"])
			assert.Equal(t, "transformers", req.Variables["name"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"repository": {
			"nameWithOwner": "huggingface/transformers",
			"description": "State-of-the-art Machine Learning",
			"url": "https://github.com/huggingface/transformers",
			"stargazerCount": 150000,
			"forkCount": 30000,
			"updatedAt": "2025-09-01T00:00:00Z",
			"primaryLanguage": {"name": "Python"},
			"defaultBranchRef": {"name": "main"},
			"repositoryTopics": {"nodes": [{"topic": {"name": "nlp"}}, {"topic": {"name": "pytorch"}}]}
		}}}`))
	})

	info, err := fetcher.FetchRepositoryInfo(context.Background(), "https://github.com/huggingface/transformers")
	require.NoError(t, err)

	assert.Equal(t, "GitHub", info.Platform)
	assert.Equal(t, "huggingface/transformers", info.FullName)
	assert.Equal(t, "Python", info.Language)
	assert.Equal(t, "main", info.DefaultBranch)
	assert.Equal(t, 150000, info.Stars)
	assert.Equal(t, 30000, info.Forks)
	assert.Equal(t, []string{"nlp", "pytorch"}, info.Topics)
	assert.Equal(t, 2025, info.UpdatedAt.Year())
}

func TestFetcher_FetchRepositoryInfo_NullableFields(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"repository": {
			"nameWithOwner": "empty/repo",
			"description": "",
			"url": "https://github.com/empty/repo",
			"stargazerCount": 0,
			"forkCount": 0,
			"updatedAt": "2024-01-01T00:00:00Z",
			"primaryLanguage": null,
			"defaultBranchRef": null,
			"repositoryTopics": {"nodes": []}
		}}}`))
	})

	info, err := fetcher.FetchRepositoryInfo(context.Background(), "https://github.com/empty/repo")
	require.NoError(t, err)
	assert.Empty(t, info.Language)
	assert.Empty(t, info.DefaultBranch)
	assert.Empty(t, info.Topics)
}

func TestFetcher_FetchRepositoryInfo_GraphQLError(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"repository": null}, "errors": [{"message": "Could not resolve to a Repository with the name 'openai/missing'."}]}`))
	})

	_, err := fetcher.FetchRepositoryInfo(context.Background(), "https://github.com/openai/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query repository openai/missing")
}
