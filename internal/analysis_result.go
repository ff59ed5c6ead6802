package internal

import (
	"fmt"
	"time"

	llmerrors "repo-analyzer-agent/internal/llm/errors"
)

// InvalidInputMessage is shown in both output fields when the URL or model is missing
const InvalidInputMessage = "Please enter a GitHub repository URL to begin and select a model."

// errorComponentTag identifies this component in user-facing error text
const errorComponentTag = "<repoAnalyzerAgent>"

// ResultKind tags the outcome of one analysis
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultInvalidInput
	ResultProviderError
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultInvalidInput:
		return "invalid_input"
	case ResultProviderError:
		return "provider_error"
	default:
		return "unknown"
	}
}

// AnalysisRequest is the input of one analysis
type AnalysisRequest struct {
	RepositoryURL string
	Model         string
}

// AnalysisResult is the tagged outcome of one analysis.
// Text for presentation is produced by AnalysisText and TimingText.
type AnalysisResult struct {
	Kind      ResultKind
	Model     string
	Report    string        // set when Kind is ResultOK
	Duration  time.Duration // set when Kind is ResultOK
	Err       error         // set when Kind is ResultProviderError
	ErrorKind llmerrors.Kind
}

// OK reports whether the model produced a report
func (r AnalysisResult) OK() bool {
	return r.Kind == ResultOK
}

// AnalysisText returns the report, the invalid-input prompt, or the error message
func (r AnalysisResult) AnalysisText() string {
	switch r.Kind {
	case ResultOK:
		return r.Report
	case ResultInvalidInput:
		return InvalidInputMessage
	default:
		return fmt.Sprintf("Error %s communicating with LLM %s: %v", errorComponentTag, r.Model, r.Err)
	}
}

// TimingText returns the formatted processing time on success, the invalid-input prompt, or "" on failure
func (r AnalysisResult) TimingText() string {
	switch r.Kind {
	case ResultOK:
		return FormatDuration(r.Duration)
	case ResultInvalidInput:
		return InvalidInputMessage
	default:
		return ""
	}
}

// FormatDuration renders an elapsed time as "*LLM processing time: X.XX seconds.*"
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("*LLM processing time: %.2f seconds.*", d.Seconds())
}
