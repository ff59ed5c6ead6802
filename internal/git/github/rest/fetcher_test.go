package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetcher := NewFetcher("gh-token", server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	fetcher.client.BaseURL = baseURL
	return fetcher
}

func TestFetcher_Name(t *testing.T) {
	fetcher := &Fetcher{}
	assert.Equal(t, "GitHub", fetcher.Name())
}

func TestFetcher_IsRepositoryURL(t *testing.T) {
	fetcher := &Fetcher{}

	assert.True(t, fetcher.IsRepositoryURL("https://github.com/openai/gpt-oss"))
	assert.True(t, fetcher.IsRepositoryURL("https://github.com/ollama/ollama/blob/main/README.md"))
	assert.False(t, fetcher.IsRepositoryURL("https://gitlab.com/gitlab-org/gitlab"))
	assert.False(t, fetcher.IsRepositoryURL("https://github.com/openai"))
}

func TestFetcher_FetchRepositoryInfo(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/openai/gpt-oss", r.URL.Path)
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"full_name": "openai/gpt-oss",
			"description": "gpt-oss-120b and gpt-oss-20b are two open-weight language models",
			"html_url": "https://github.com/openai/gpt-oss",
			"default_branch": "main",
			"language": "Python",
			"stargazers_count": 18000,
			"forks_count": 1500,
			"topics": ["llm", "open-weights"],
			"updated_at": "2025-08-20T10:00:00Z"
		}`))
	})

	info, err := fetcher.FetchRepositoryInfo(context.Background(), "https://github.com/openai/gpt-oss")
	require.NoError(t, err)

	assert.Equal(t, "GitHub", info.Platform)
	assert.Equal(t, "openai/gpt-oss", info.FullName)
	assert.Equal(t, "https://github.com/openai/gpt-oss", info.URL)
	assert.Equal(t, "main", info.DefaultBranch)
	assert.Equal(t, "Python", info.Language)
	assert.Equal(t, 18000, info.Stars)
	assert.Equal(t, 1500, info.Forks)
	assert.Equal(t, []string{"llm", "open-weights"}, info.Topics)
	assert.Equal(t, time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC), info.UpdatedAt.UTC())
}

func TestFetcher_FetchRepositoryInfo_NotFound(t *testing.T) {
	fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	})

	_, err := fetcher.FetchRepositoryInfo(context.Background(), "https://github.com/openai/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch repository openai/missing")
}

func TestFetcher_FetchRepositoryInfo_InvalidURL(t *testing.T) {
	fetcher := &Fetcher{}

	_, err := fetcher.FetchRepositoryInfo(context.Background(), "https://example.com/a/b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid GitHub repository URL format")
}
