package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRepositoryAnalysisPrompt_EmbedsURL(t *testing.T) {
	url := "https://github.com/openai/gpt-oss"
	prompt := BuildRepositoryAnalysisPrompt(url)

	assert.Contains(t, prompt, "---\n"+url+"\n---")
	assert.Contains(t, prompt, "You are an expert senior AI researcher")
}

func TestBuildRepositoryAnalysisPrompt_SectionsInOrder(t *testing.T) {
	prompt := BuildRepositoryAnalysisPrompt("https://github.com/ollama/ollama")

	last := -1
	for _, title := range SectionTitles {
		pos := strings.Index(prompt, title)
		if assert.GreaterOrEqual(t, pos, 0, "missing section %q", title) {
			assert.Greater(t, pos, last, "section %q out of order", title)
			last = pos
		}
	}

	for _, level := range []string{"Beginner", "Intermediate", "Advanced"} {
		assert.Contains(t, prompt, level)
	}
}

func TestBuildRepositoryAnalysisPrompt_Deterministic(t *testing.T) {
	url := "https://github.com/huggingface/transformers"
	assert.Equal(t, BuildRepositoryAnalysisPrompt(url), BuildRepositoryAnalysisPrompt(url))
}

func TestBuildRepositoryAnalysisPrompt_NoValidation(t *testing.T) {
	tests := []string{
		"not a url",
		"",
		"{{.RepositoryURL}}",
		"https://example.com/<script>?q=a&b=c",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			prompt := BuildRepositoryAnalysisPrompt(input)
			assert.Contains(t, prompt, "---\n"+input+"\n---")
		})
	}
}

func TestBuildRepositoryAnalysisPrompt_DistinctURLs(t *testing.T) {
	a := BuildRepositoryAnalysisPrompt("https://github.com/a/a")
	b := BuildRepositoryAnalysisPrompt("https://github.com/b/b")
	assert.NotEqual(t, a, b)
}

func TestMissingSections(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   []string
	}{
		{
			name:   "complete report",
			report: "### 🚀 Project Summary\nx\n### 🛠️ Key Technologies & Libraries\n- Go\n### 💡 Potential Use Cases\n- CLI\n### 📈 Complexity\nBeginner",
			want:   nil,
		},
		{
			name:   "summary only",
			report: "### 🚀 Project Summary\nx",
			want:   []string{"Key Technologies & Libraries", "Potential Use Cases", "Complexity"},
		},
		{
			name:   "empty report",
			report: "",
			want:   SectionTitles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingSections(tt.report))
		})
	}
}
