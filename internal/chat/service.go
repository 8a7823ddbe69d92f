package chat

import (
	"context"

	"resume-chat-backend/internal/extract"
	"resume-chat-backend/internal/llm"
	"resume-chat-backend/internal/resume"
	"resume-chat-backend/internal/shared/metrics"
	"resume-chat-backend/internal/shared/telemetry"
)

// FallbackReply is returned verbatim when the completion capability fails.
// The turn never surfaces an error to the caller.
const FallbackReply = "Sorry, something went wrong."

// Service is the conversation accumulator: it owns per-session dialogue
// history and the current resume record, and orchestrates completion calls.
type Service struct {
	LLM      llm.Client
	Sessions *Store
	Prompt   string
}

// Submit runs one conversational turn. The user message is appended to the
// session history before the completion call and stays there even when the
// call fails. A fenced resume block in the reply replaces the session's
// record in full; otherwise the previous record is kept. The returned record
// is nil until a first extraction succeeds.
func (s *Service) Submit(ctx context.Context, sessionID, userMessage string) (string, *resume.Record) {
	sess := s.Sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = append(sess.history, llm.Message{Role: llm.RoleUser, Content: userMessage})

	messages := make([]llm.Message, 0, len(sess.history)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: s.Prompt})
	messages = append(messages, sess.history...)

	reply, err := s.LLM.Complete(ctx, messages)
	if err != nil {
		metrics.IncChatTurnFailed()
		telemetry.Error("chat.completion_failed", map[string]any{
			"session_id": normalizeSessionID(sessionID),
			"error":      err.Error(),
			"turns":      len(sess.history),
		})
		return FallbackReply, nil
	}

	sess.history = append(sess.history, llm.Message{Role: llm.RoleAssistant, Content: reply})

	if record, ok := extract.Resume(reply); ok {
		// Last fenced block wins; no field-level merge with the prior record.
		sess.record = record
		metrics.IncExtraction()
	}
	metrics.IncChatTurn()
	return reply, sess.record
}

// Reset clears one session entirely.
func (s *Service) Reset(sessionID string) {
	s.Sessions.Reset(sessionID)
}

// History returns a copy of the session's conversation so far.
func (s *Service) History(sessionID string) []llm.Message {
	sess := s.Sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]llm.Message, len(sess.history))
	copy(out, sess.history)
	return out
}

// Record returns the session's current resume record, nil if none extracted.
func (s *Service) Record(sessionID string) *resume.Record {
	sess := s.Sessions.Get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.record
}
