package prompts

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

//go:embed repository_analysis_v1.md
var repositoryAnalysisTemplateV1 string

var repositoryAnalysisTemplate *template.Template

func init() {
	repositoryAnalysisTemplate = template.Must(
		template.New("repository_analysis").Option("missingkey=error").Parse(repositoryAnalysisTemplateV1),
	)
}

// SectionTitles lists the report sections the prompt asks for, in order
var SectionTitles = []string{
	"Project Summary",
	"Key Technologies & Libraries",
	"Potential Use Cases",
	"Complexity",
}

// PromptData holds the data for the repository analysis template
type PromptData struct {
	RepositoryURL string
}

// BuildRepositoryAnalysisPrompt renders the analysis instructions for a repository URL.
// The URL is embedded verbatim; its validity is left to the remote service.
func BuildRepositoryAnalysisPrompt(repositoryURL string) string {
	var buf bytes.Buffer
	// text/template does not escape, and PromptData always satisfies the template
	if err := repositoryAnalysisTemplate.Execute(&buf, PromptData{RepositoryURL: repositoryURL}); err != nil {
		panic("repository analysis template: " + err.Error())
	}
	return buf.String()
}

// MissingSections returns the section titles absent from a model report, in prompt order
func MissingSections(report string) []string {
	var missing []string
	for _, title := range SectionTitles {
		if !strings.Contains(report, title) {
			missing = append(missing, title)
		}
	}
	return missing
}
