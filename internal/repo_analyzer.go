package internal

import (
	"context"
	"log/slog"
	"time"

	llmerrors "repo-analyzer-agent/internal/llm/errors"
	"repo-analyzer-agent/internal/llm/prompts"
	"repo-analyzer-agent/internal/llm/providers"
)

// RepoAnalyzer asks an LLM to summarize a repository from its URL.
// It keeps no state between calls and is safe for concurrent use.
type RepoAnalyzer struct {
	llmClient providers.LLMClient
	now       func() time.Time
}

// Option configures a RepoAnalyzer
type Option func(*RepoAnalyzer)

// WithClock replaces the clock used to time the LLM call
func WithClock(now func() time.Time) Option {
	return func(ra *RepoAnalyzer) {
		ra.now = now
	}
}

func NewRepoAnalyzer(llmClient providers.LLMClient, opts ...Option) *RepoAnalyzer {
	ra := &RepoAnalyzer{
		llmClient: llmClient,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(ra)
	}
	return ra
}

// Analyze runs one analysis. Every failure is returned inside the result; observer may be nil.
func (ra *RepoAnalyzer) Analyze(ctx context.Context, req AnalysisRequest, observer Observer) AnalysisResult {
	if req.RepositoryURL == "" || req.Model == "" {
		slog.Debug("Analysis skipped: missing input", "has_url", req.RepositoryURL != "", "has_model", req.Model != "")
		return AnalysisResult{Kind: ResultInvalidInput, Model: req.Model}
	}

	notify(observer, ProgressInitiating, initiatingMessage())

	prompt := prompts.BuildRepositoryAnalysisPrompt(req.RepositoryURL)

	notify(observer, ProgressAnalyzing, analyzingMessage(req.Model))
	slog.Info("Sending request to LLM", "provider", ra.llmClient.Name(), "model", req.Model, "url", req.RepositoryURL)

	start := ra.now()
	report, err := ra.llmClient.Generate(ctx, prompt, req.Model)
	elapsed := ra.now().Sub(start)

	notify(observer, ProgressDone, doneMessage())

	if err != nil {
		kind := llmerrors.KindOf(err)
		slog.Error("Error communicating with LLM", "model", req.Model, "error_kind", kind.String(), "error", err)
		return AnalysisResult{
			Kind:      ResultProviderError,
			Model:     req.Model,
			Err:       err,
			ErrorKind: kind,
		}
	}

	slog.Info("Received response from LLM", "model", req.Model, "duration", elapsed, "chars", len(report))
	if missing := prompts.MissingSections(report); len(missing) > 0 {
		slog.Warn("LLM report is missing sections", "model", req.Model, "missing", missing)
	}
	return AnalysisResult{
		Kind:     ResultOK,
		Model:    req.Model,
		Report:   report,
		Duration: elapsed,
	}
}

func notify(observer Observer, fraction float64, message string) {
	if observer != nil {
		observer.Progress(fraction, message)
	}
}
