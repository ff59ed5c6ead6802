package web

import "repo-analyzer-agent/internal/git/types"

// Client message types
const (
	msgSubmit = "submit"
	msgStop   = "stop"
	msgClear  = "clear"
)

// Server message types
const (
	msgProgress = "progress"
	msgResult   = "result"
	msgCleared  = "cleared"
	msgStopped  = "stopped"
	msgError    = "error"
)

// clientMessage is any message sent by the form
type clientMessage struct {
	Type  string `json:"type"`
	URL   string `json:"url,omitempty"`
	Model string `json:"model,omitempty"`
}

type progressMessage struct {
	Type         string  `json:"type"`
	SubmissionID string  `json:"submission_id"`
	Fraction     float64 `json:"fraction"`
	Message      string  `json:"message"`
}

type resultMessage struct {
	Type             string                `json:"type"`
	SubmissionID     string                `json:"submission_id"`
	Status           string                `json:"status"`
	ErrorKind        string                `json:"error_kind,omitempty"`
	AnalysisMarkdown string                `json:"analysis_markdown"`
	AnalysisHTML     string                `json:"analysis_html"`
	Timing           string                `json:"timing"`
	Repository       *types.RepositoryInfo `json:"repository,omitempty"`
}

// clearedMessage resets every field of the form; Model is the default model
type clearedMessage struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Analysis string `json:"analysis"`
	Timing   string `json:"timing"`
	Model    string `json:"model"`
}

type stoppedMessage struct {
	Type         string `json:"type"`
	SubmissionID string `json:"submission_id"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// analyzeRequest is the body of POST /api/analyze
type analyzeRequest struct {
	URL   string `json:"url"`
	Model string `json:"model"`
}

// analyzeResponse carries the same two strings the CLI prints
type analyzeResponse struct {
	Analysis   string                `json:"analysis"`
	Timing     string                `json:"timing"`
	Status     string                `json:"status"`
	Repository *types.RepositoryInfo `json:"repository,omitempty"`
}

type configResponse struct {
	Models        []string `json:"models"`
	DefaultModel  string   `json:"default_model"`
	Examples      []string `json:"examples"`
	FetchRepoInfo bool     `json:"fetch_repo_info"`
}
