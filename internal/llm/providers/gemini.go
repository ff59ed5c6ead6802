package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"repo-analyzer-agent/internal/config"
	httputil "repo-analyzer-agent/internal/http"
	llmerrors "repo-analyzer-agent/internal/llm/errors"
)

const geminiProviderName = "Gemini"

// GeminiClient calls the Gemini API with the URL-context tool enabled so the model
// can fetch the repository page named in the prompt
type GeminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	client     *genai.Client
	clientErr  error // reported by the first Generate call
}

// NewGemini builds the SDK client once; a construction failure surfaces as an analysis error
func NewGemini(cfg *config.Config) LLMClient {
	g := &GeminiClient{
		apiKey:  cfg.GeminiAPIKey,
		baseURL: cfg.GeminiBaseURL,
		httpClient: httputil.NewHTTPClient(httputil.HTTPClientOptions{
			Timeout:       time.Duration(cfg.ModelTimeoutSeconds) * time.Second,
			SkipSSLVerify: cfg.ModelSkipSSLVerify,
			Service:       "gemini",
		}),
	}

	if g.apiKey != "" {
		g.client, g.clientErr = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:      g.apiKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  g.httpClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
		})
	}

	return g
}

func (g *GeminiClient) Name() string {
	return geminiProviderName
}

// Generate performs exactly one generateContent call; it does not retry
func (g *GeminiClient) Generate(ctx context.Context, prompt, model string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%s is not set", config.CredentialEnvVar)
	}

	if g.clientErr != nil {
		return "", fmt.Errorf("create client: %w", g.clientErr)
	}
	if g.client == nil {
		return "", fmt.Errorf("create client: %s client not initialized", geminiProviderName)
	}

	generateConfig := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{URLContext: &genai.URLContext{}},
		},
	}

	slog.Debug("Sending repository analysis request to LLM", "provider", geminiProviderName, "model", model)

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), generateConfig)
	if err != nil {
		return "", toProviderError(model, err)
	}

	if resp.UsageMetadata != nil {
		slog.Debug("Gemini API token usage",
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"total_tokens", resp.UsageMetadata.TotalTokenCount)
	}

	return firstCandidateText(resp)
}

// firstCandidateText joins the non-thought text parts of the first candidate in order.
// Other candidates are ignored.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response: %w", llmerrors.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in first candidate: %w", llmerrors.ErrEmptyResponse)
	}

	if meta := candidate.URLContextMetadata; meta != nil {
		slog.Debug("Gemini URL context retrieval", "urls", len(meta.URLMetadata))
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		text.WriteString(part.Text)
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("no text in first candidate: %w", llmerrors.ErrEmptyResponse)
	}

	return text.String(), nil
}

// toProviderError converts SDK API errors into ProviderError; transport errors are wrapped as-is
func toProviderError(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return llmerrors.NewProviderError(geminiProviderName, model, apiErr.Code, apiErr.Status, apiErr.Message)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return llmerrors.NewProviderError(geminiProviderName, model, apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message)
	}

	return fmt.Errorf("generate content: %w", err)
}
