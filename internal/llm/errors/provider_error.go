package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind tags why a provider call failed
type Kind int

const (
	KindUnknown Kind = iota
	KindModelNotFound
	KindAuthentication
	KindQuotaExceeded
	KindContextWindow
	KindEmptyResponse
	KindCanceled
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindModelNotFound:
		return "model_not_found"
	case KindAuthentication:
		return "authentication"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindContextWindow:
		return "context_window"
	case KindEmptyResponse:
		return "empty_response"
	case KindCanceled:
		return "canceled"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ErrEmptyResponse is returned when the provider answers without any usable text
var ErrEmptyResponse = errors.New("empty response")

// ProviderError represents an error status returned by a remote LLM service
type ProviderError struct {
	Provider   string
	Model      string
	StatusCode int
	Status     string
	Message    string
	Kind       Kind
}

func (e *ProviderError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s API error %d %s: %s", e.Provider, e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// NewProviderError builds a ProviderError and classifies it from the status and message
func NewProviderError(provider, model string, statusCode int, status, message string) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Model:      model,
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
		Kind:       Classify(statusCode, status, message),
	}
}

var contextWindowIndicators = []string{
	"context length",
	"context window",
	"token limit",
	"maximum context",
	"input too large",
	"prompt is too long",
	"prompt too long",
	"maximum tokens",
	"exceeds maximum",
	"too many tokens",
	"input token count",
}

// Classify maps an HTTP status code, a provider status string and an error message to a Kind
func Classify(statusCode int, status, message string) Kind {
	status = strings.ToUpper(status)
	msg := strings.ToLower(message)

	switch {
	case statusCode == http.StatusNotFound || status == "NOT_FOUND":
		return KindModelNotFound
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden,
		status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED",
		strings.Contains(msg, "api key not valid"):
		return KindAuthentication
	case statusCode == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED":
		return KindQuotaExceeded
	}

	if statusCode == http.StatusBadRequest || statusCode == http.StatusRequestEntityTooLarge {
		for _, indicator := range contextWindowIndicators {
			if strings.Contains(msg, indicator) {
				return KindContextWindow
			}
		}
		if strings.Contains(msg, "model") && (strings.Contains(msg, "not found") || strings.Contains(msg, "is not supported")) {
			return KindModelNotFound
		}
	}

	return KindUnknown
}

// KindOf reports the Kind of any error returned by a provider call
func KindOf(err error) Kind {
	var providerErr *ProviderError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &providerErr):
		return providerErr.Kind
	case errors.Is(err, ErrEmptyResponse):
		return KindEmptyResponse
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindUnknown
	}
}
