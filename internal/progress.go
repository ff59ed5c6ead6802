package internal

import "log/slog"

// Progress markers emitted by RepoAnalyzer.Analyze
const (
	ProgressInitiating = 0.0
	ProgressAnalyzing  = 0.5
	ProgressDone       = 1.0
)

// Observer receives advisory progress notifications; it never affects the analysis outcome
type Observer interface {
	Progress(fraction float64, message string)
}

// ObserverFunc adapts a plain function to Observer
type ObserverFunc func(fraction float64, message string)

func (f ObserverFunc) Progress(fraction float64, message string) {
	f(fraction, message)
}

// LogObserver reports progress through the default slog logger
type LogObserver struct{}

func (LogObserver) Progress(fraction float64, message string) {
	slog.Info(message, "progress", fraction)
}

func initiatingMessage() string {
	return "Initiating github repo analysis..."
}

func analyzingMessage(model string) string {
	return "Step (1/2) Analyzing content with LLM -> " + model + "..."
}

func doneMessage() string {
	return "Step (2/2) Done!"
}
