package chat

import (
	"sync"

	"resume-chat-backend/internal/llm"
	"resume-chat-backend/internal/resume"
)

// DefaultSessionID is used when a caller supplies no session identity,
// preserving the single-implicit-session behavior.
const DefaultSessionID = "default"

// Session groups one append-only conversation history with the resume record
// extracted so far. The mutex serializes whole turns: history and record must
// never be mutated by two requests for the same session at once.
type Session struct {
	mu      sync.Mutex
	history []llm.Message
	record  *resume.Record
}

// Store keeps sessions keyed by caller-provided identifier, creating them on
// first use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore constructs an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func normalizeSessionID(id string) string {
	if id == "" {
		return DefaultSessionID
	}
	return id
}

// Get returns the session for id, creating it if absent.
func (s *Store) Get(id string) *Session {
	id = normalizeSessionID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{}
		s.sessions[id] = sess
	}
	return sess
}

// Reset drops the session's history and record. The next turn starts from an
// empty conversation.
func (s *Store) Reset(id string) {
	id = normalizeSessionID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
