package extract

import (
	"encoding/json"
	"strings"

	"resume-chat-backend/internal/resume"
	"resume-chat-backend/internal/shared/telemetry"
)

// Resume scans an assistant reply for a triple-backtick fenced block and
// decodes its contents as a resume record. The second return is false when
// the reply carries no usable block: no fence, malformed JSON, or a top-level
// value that is not an object. Those cases are logged and swallowed; the
// conversational reply must still reach the caller.
func Resume(reply string) (*resume.Record, bool) {
	parts := strings.Split(reply, "```")
	if len(parts) < 2 {
		return nil, false
	}

	// First fenced region only, with an optional language hint token.
	body := parts[1]
	if rest, ok := strings.CutPrefix(body, "json"); ok {
		body = rest
	}
	body = strings.TrimSpace(body)

	if !strings.HasPrefix(body, "{") {
		telemetry.Info("extract.skipped", map[string]any{
			"reason": "fenced block is not a JSON object",
		})
		return nil, false
	}

	var record resume.Record
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		telemetry.Error("extract.parse_failed", map[string]any{
			"error": err.Error(),
		})
		return nil, false
	}
	return &record, true
}
