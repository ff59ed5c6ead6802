package internal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-analyzer-agent/internal/git/types"
)

// mockInfoFetcher implements RepositoryInfoFetcher for testing
type mockInfoFetcher struct {
	info  *types.RepositoryInfo
	err   error
	calls atomic.Int32
}

func (m *mockInfoFetcher) FetchRepositoryInfo(ctx context.Context, repositoryURL string) (*types.RepositoryInfo, error) {
	m.calls.Add(1)
	return m.info, m.err
}

func TestAnalyzeWithRepositoryInfo_ReturnsBoth(t *testing.T) {
	client := &mockLLMClient{response: fixedReport}
	fetcher := &mockInfoFetcher{info: &types.RepositoryInfo{FullName: "openai/gpt-oss", Stars: 10}}
	analyzer := NewRepoAnalyzer(client)

	result, info := analyzer.AnalyzeWithRepositoryInfo(context.Background(),
		AnalysisRequest{RepositoryURL: "https://github.com/openai/gpt-oss", Model: "gemini-2.5-flash"}, nil, fetcher)

	assert.True(t, result.OK())
	assert.Equal(t, fixedReport, result.AnalysisText())
	require.NotNil(t, info)
	assert.Equal(t, "openai/gpt-oss", info.FullName)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestAnalyzeWithRepositoryInfo_MetadataFailureIsIgnored(t *testing.T) {
	client := &mockLLMClient{response: fixedReport}
	fetcher := &mockInfoFetcher{err: errors.New("rate limited")}
	analyzer := NewRepoAnalyzer(client)

	result, info := analyzer.AnalyzeWithRepositoryInfo(context.Background(),
		AnalysisRequest{RepositoryURL: "https://github.com/openai/gpt-oss", Model: "gemini-2.5-flash"}, nil, fetcher)

	assert.True(t, result.OK())
	assert.Nil(t, info)
}

func TestAnalyzeWithRepositoryInfo_InvalidInputSkipsMetadata(t *testing.T) {
	client := &mockLLMClient{response: fixedReport}
	fetcher := &mockInfoFetcher{info: &types.RepositoryInfo{FullName: "x/y"}}
	analyzer := NewRepoAnalyzer(client)

	result, info := analyzer.AnalyzeWithRepositoryInfo(context.Background(),
		AnalysisRequest{RepositoryURL: "", Model: "gemini-2.5-flash"}, nil, fetcher)

	assert.Equal(t, ResultInvalidInput, result.Kind)
	assert.Nil(t, info)
	assert.Equal(t, int32(0), fetcher.calls.Load())
	assert.Equal(t, 0, client.callCount)
}

func TestAnalyzeWithRepositoryInfo_NilFetcher(t *testing.T) {
	client := &mockLLMClient{response: fixedReport}
	analyzer := NewRepoAnalyzer(client)

	result, info := analyzer.AnalyzeWithRepositoryInfo(context.Background(),
		AnalysisRequest{RepositoryURL: "https://github.com/openai/gpt-oss", Model: "gemini-2.5-flash"}, nil, nil)

	assert.True(t, result.OK())
	assert.Nil(t, info)
	assert.Equal(t, 1, client.callCount)
}
