package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"repo-analyzer-agent/internal/git/types"
)

//go:embed cli_report.tmpl
var cliTemplateText string

var cliTemplate *template.Template

// markdown renders model output for the browser; raw HTML in the input is not passed through
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func init() {
	cliTemplate = template.Must(
		template.New("cli").Funcs(templateFuncs()).Parse(cliTemplateText),
	)
}

// templateFuncs returns all custom template functions
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join":       strings.Join,
		"formatDate": formatDate,
	}
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// CLIData holds everything the CLI report template prints
type CLIData struct {
	Analysis   string
	Timing     string
	Repository *types.RepositoryInfo // optional
}

// RenderCLI writes the analysis and timing sections, preceded by a repository card when info is set.
// Both strings are printed as-is, so error text and the form prompt appear exactly as produced.
func RenderCLI(w io.Writer, analysisText, timingText string, info *types.RepositoryInfo) error {
	data := &CLIData{
		Analysis:   analysisText,
		Timing:     timingText,
		Repository: info,
	}

	var buf bytes.Buffer
	if err := cliTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute CLI template: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// MarkdownToHTML converts the model's markdown report to an HTML fragment
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
