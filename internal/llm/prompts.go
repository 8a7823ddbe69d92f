package llm

import (
	_ "embed"
	"os"
	"strings"
)

//go:embed prompts/system.txt
var defaultSystemPrompt string

// SystemPrompt returns the conversation instructions for the resume
// assistant. A template file at path overrides the embedded default so
// operators can tune the prompt without a rebuild; a missing or empty file
// falls back silently.
func SystemPrompt(path string) string {
	if strings.TrimSpace(path) != "" {
		if data, err := os.ReadFile(path); err == nil {
			if text := strings.TrimSpace(string(data)); text != "" {
				return text
			}
		}
	}
	return strings.TrimSpace(defaultSystemPrompt)
}
