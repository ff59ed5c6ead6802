package internal

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"repo-analyzer-agent/internal/git/types"
)

// RepositoryInfoFetcher fetches display metadata for a repository URL
type RepositoryInfoFetcher interface {
	FetchRepositoryInfo(ctx context.Context, repositoryURL string) (*types.RepositoryInfo, error)
}

// AnalyzeWithRepositoryInfo runs Analyze and, when fetcher is set, the metadata lookup in parallel.
// A metadata failure is logged and yields nil info; it never changes the analysis result.
func (ra *RepoAnalyzer) AnalyzeWithRepositoryInfo(ctx context.Context, req AnalysisRequest, observer Observer, fetcher RepositoryInfoFetcher) (AnalysisResult, *types.RepositoryInfo) {
	if fetcher == nil || req.RepositoryURL == "" || req.Model == "" {
		return ra.Analyze(ctx, req, observer), nil
	}

	var g errgroup.Group
	var result AnalysisResult
	var info *types.RepositoryInfo

	g.Go(func() error {
		result = ra.Analyze(ctx, req, observer)
		return nil
	})

	g.Go(func() error {
		fetched, err := fetcher.FetchRepositoryInfo(ctx, req.RepositoryURL)
		if err != nil {
			slog.Warn("Repository metadata unavailable", "url", req.RepositoryURL, "error", err)
			return nil
		}
		info = fetched
		return nil
	})

	_ = g.Wait()
	return result, info
}
