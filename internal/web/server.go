package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"repo-analyzer-agent/internal"
	"repo-analyzer-agent/internal/config"
)

//go:embed templates/index.html
var indexTemplateText string

var indexTemplate = template.Must(template.New("index").Parse(indexTemplateText))

const shutdownTimeout = 5 * time.Second

// Server serves the interactive analysis form
type Server struct {
	config   *config.Config
	analyzer *internal.RepoAnalyzer
	fetcher  internal.RepositoryInfoFetcher // nil disables the repository card
	upgrader websocket.Upgrader
}

// NewServer creates a form server; fetcher may be nil
func NewServer(cfg *config.Config, analyzer *internal.RepoAnalyzer, fetcher internal.RepositoryInfoFetcher) *Server {
	return &Server{
		config:   cfg,
		analyzer: analyzer,
		fetcher:  fetcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16384,
		},
	}
}

// Handler returns the routes of the form server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "repo-analyzer-agent",
		})
	})

	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Launching analysis form", "url", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("form server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Debug("Shutting down analysis form")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type indexData struct {
	Models       []string
	DefaultModel string
	Examples     []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Models:       s.config.ModelList,
		DefaultModel: s.config.DefaultModel(),
		Examples:     s.config.ExampleURLs,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.Error("Failed to render form", "error", err)
	}
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configResponse{
		Models:        s.config.ModelList,
		DefaultModel:  s.config.DefaultModel(),
		Examples:      s.config.ExampleURLs,
		FetchRepoInfo: s.fetcher != nil,
	})
}

// handleAnalyze runs one analysis synchronously; a closed request abandons the LLM call
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorMessage{Type: msgError, Message: "invalid request body: " + err.Error()})
		return
	}

	result, info := s.analyzer.AnalyzeWithRepositoryInfo(r.Context(),
		internal.AnalysisRequest{RepositoryURL: req.URL, Model: req.Model}, nil, s.fetcher)

	writeJSON(w, http.StatusOK, analyzeResponse{
		Analysis:   result.AnalysisText(),
		Timing:     result.TimingText(),
		Status:     result.Kind.String(),
		Repository: info,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}
