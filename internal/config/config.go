package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// CredentialEnvVar is the environment variable holding the Gemini API key
const CredentialEnvVar = "GEMINI_API_KEY"

// valid log formats and levels
var (
	validLogFormats = []string{"text", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// DefaultModelList is offered when RAA_MODEL_LIST is not set; the first entry is the default model
var DefaultModelList = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
}

// DefaultExampleURLs are the repository presets shown in the interactive form
var DefaultExampleURLs = []string{
	"https://github.com/openai/gpt-oss",
	"https://github.com/facebookresearch/llama",
	"https://github.com/huggingface/transformers",
	"https://github.com/matlab-deep-learning/llms-with-matlab",
}

type Config struct {
	ExampleURLs         []string
	FetchRepoInfo       bool
	GeminiAPIKey        string
	GeminiBaseURL       string
	GitHubToken         string
	GitHubUseGraphQL    bool
	GitLabBaseURL       string
	GitLabToken         string
	ListenAddr          string
	LogFormat           string
	LogLevel            string
	ModelList           []string
	ModelSkipSSLVerify  bool
	ModelTimeoutSeconds int
}

// DefaultModel returns the first configured model
func (c *Config) DefaultModel() string {
	if len(c.ModelList) == 0 {
		return ""
	}
	return c.ModelList[0]
}

// HasCredential reports whether the Gemini API key is available
func (c *Config) HasCredential() bool {
	return c.GeminiAPIKey != ""
}

// Load reads an optional .env file into the process environment, then builds and validates a Config from it.
// The API key is not validated here so the CLI can report a missing credential in its own words.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return FromEnv()
}

// FromEnv creates a Config from environment variables without touching .env files
func FromEnv() (*Config, error) {

	// Parse model configuration
	geminiAPIKey := os.Getenv(CredentialEnvVar)
	geminiBaseURL := os.Getenv("RAA_GEMINI_BASE_URL")
	modelList := parseListEnvOrDefault("RAA_MODEL_LIST", DefaultModelList)

	modelSkipSSL, err := parseBoolEnvOrDefault("RAA_MODEL_SKIP_SSL_VERIFY", false)
	if err != nil {
		return nil, err
	}
	modelTimeoutSeconds, err := parseIntEnvOrDefault("RAA_MODEL_TIMEOUT_SECONDS", 0, 0, 3600)
	if err != nil {
		return nil, err
	}

	// Parse interactive form configuration
	listenAddr := getEnvOrDefault("RAA_LISTEN_ADDR", "127.0.0.1:7860")
	exampleURLs := parseListEnvOrDefault("RAA_EXAMPLE_URLS", DefaultExampleURLs)

	// Parse logging configuration
	logFormat := os.Getenv("RAA_LOG_FORMAT")
	logLevel := os.Getenv("RAA_LOG_LEVEL")

	// Parse repository metadata configuration
	fetchRepoInfo, err := parseBoolEnvOrDefault("RAA_FETCH_REPO_INFO", false)
	if err != nil {
		return nil, err
	}
	gitHubToken := os.Getenv("RAA_GITHUB_TOKEN")
	gitHubUseGraphQL, err := parseBoolEnvOrDefault("RAA_GITHUB_USE_GRAPHQL", false)
	if err != nil {
		return nil, err
	}
	gitLabBaseURL := getEnvOrDefault("RAA_GITLAB_BASE_URL", "https://gitlab.com")
	gitLabToken := os.Getenv("RAA_GITLAB_TOKEN")

	cfg := &Config{
		ExampleURLs:         exampleURLs,
		FetchRepoInfo:       fetchRepoInfo,
		GeminiAPIKey:        geminiAPIKey,
		GeminiBaseURL:       geminiBaseURL,
		GitHubToken:         gitHubToken,
		GitHubUseGraphQL:    gitHubUseGraphQL,
		GitLabBaseURL:       strings.TrimSuffix(gitLabBaseURL, "/"),
		GitLabToken:         gitLabToken,
		ListenAddr:          listenAddr,
		LogFormat:           logFormat,
		LogLevel:            logLevel,
		ModelList:           modelList,
		ModelSkipSSLVerify:  modelSkipSSL,
		ModelTimeoutSeconds: modelTimeoutSeconds,
	}

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv loads the given dotenv file if present; variables already set in the environment win
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("Loaded environment file", "path", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// parseListEnvOrDefault splits a comma-separated environment variable, dropping blank entries
func parseListEnvOrDefault(key string, defaultVal []string) []string {
	str, ok := os.LookupEnv(key)
	if !ok {
		return slices.Clone(defaultVal)
	}

	var items []string
	for item := range strings.SplitSeq(str, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseIntEnvOrDefault parses an integer environment variable with range validation or returns a default value if not set
func parseIntEnvOrDefault(key string, defaultVal, min, max int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer, got: %s", key, str)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, val)
	}

	return val, nil
}

// parseBoolEnvOrDefault parses a boolean environment variable or returns a default value if not set
func parseBoolEnvOrDefault(key string, defaultVal bool) (bool, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.ParseBool(str)
	if err != nil {
		return false, fmt.Errorf("%s must be a valid boolean, got: %s", key, str)
	}

	return val, nil
}

// validateConfig performs all validation on the loaded configuration
func validateConfig(cfg *Config) error {

	// Validate model configuration
	if len(cfg.ModelList) == 0 {
		return fmt.Errorf("RAA_MODEL_LIST must contain at least one model")
	}
	if cfg.GeminiBaseURL != "" {
		if err := validateBaseURL(cfg.GeminiBaseURL); err != nil {
			return fmt.Errorf("RAA_GEMINI_BASE_URL %w", err)
		}
	}

	// Validate logging configuration
	if cfg.LogFormat != "" {
		if !slices.Contains(validLogFormats, strings.ToLower(cfg.LogFormat)) {
			return fmt.Errorf("RAA_LOG_FORMAT must be one of: %v; got: %s", validLogFormats, cfg.LogFormat)
		}
	}
	if cfg.LogLevel != "" {
		if !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
			return fmt.Errorf("RAA_LOG_LEVEL must be one of: %v; got: %s", validLogLevels, cfg.LogLevel)
		}
	}

	// Validate repository metadata configuration
	if err := validateBaseURL(cfg.GitLabBaseURL); err != nil {
		return fmt.Errorf("RAA_GITLAB_BASE_URL %w", err)
	}
	if cfg.GitHubUseGraphQL && cfg.GitHubToken == "" {
		return fmt.Errorf("RAA_GITHUB_TOKEN environment variable is required when RAA_GITHUB_USE_GRAPHQL is enabled")
	}

	if cfg.ListenAddr == "" {
		return fmt.Errorf("RAA_LISTEN_ADDR must not be empty")
	}

	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("must be an absolute http(s) URL, got: %s", raw)
	}
	return nil
}
