package chat

import (
	"context"
	"errors"
	"testing"

	"resume-chat-backend/internal/llm"
)

type scriptedClient struct {
	replies []string
	err     error
	calls   [][]llm.Message
}

func (c *scriptedClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	c.calls = append(c.calls, messages)
	if c.err != nil {
		return "", c.err
	}
	reply := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return reply, nil
}

func newTestService(client llm.Client) *Service {
	return &Service{
		LLM:      client,
		Sessions: NewStore(),
		Prompt:   "collect resume facts",
	}
}

func TestSubmitPlainReplyKeepsRecordNil(t *testing.T) {
	client := &scriptedClient{replies: []string{"Nice to meet you! What do you do?"}}
	svc := newTestService(client)

	reply, record := svc.Submit(context.Background(), "", "Hi, I'm Jane")
	if reply != "Nice to meet you! What do you do?" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %#v", record)
	}

	history := svc.History("")
	if len(history) != 2 {
		t.Fatalf("expected 2 turns in history, got %d", len(history))
	}
	if history[0].Role != llm.RoleUser || history[1].Role != llm.RoleAssistant {
		t.Fatalf("unexpected history roles %#v", history)
	}
}

func TestSubmitPrependsSystemPromptAndFullHistory(t *testing.T) {
	client := &scriptedClient{replies: []string{"ok", "ok again"}}
	svc := newTestService(client)

	svc.Submit(context.Background(), "s1", "first")
	svc.Submit(context.Background(), "s1", "second")

	if len(client.calls) != 2 {
		t.Fatalf("expected 2 completion calls, got %d", len(client.calls))
	}
	second := client.calls[1]
	// system + user/assistant/user
	if len(second) != 4 {
		t.Fatalf("expected 4 messages on second call, got %d", len(second))
	}
	if second[0].Role != llm.RoleSystem || second[0].Content != "collect resume facts" {
		t.Fatalf("expected system instruction first, got %#v", second[0])
	}
	if second[3].Content != "second" {
		t.Fatalf("expected latest user turn last, got %#v", second[3])
	}
}

func TestSubmitExtractsAndReplacesRecord(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"Got it:\n```json\n{\"name\": \"Jane Doe\", \"skills\": [\"Go\"]}\n```",
		"Updated:\n```json\n{\"name\": \"Jane Doe\", \"title\": \"Engineer\"}\n```",
		"Anything else?",
	}}
	svc := newTestService(client)

	_, record := svc.Submit(context.Background(), "s1", "I'm Jane and I know Go")
	if record == nil || record.Name != "Jane Doe" || len(record.Skills) != 1 {
		t.Fatalf("expected extracted record, got %#v", record)
	}

	_, record = svc.Submit(context.Background(), "s1", "I'm an engineer")
	if record == nil || record.Title != "Engineer" {
		t.Fatalf("expected replacement record, got %#v", record)
	}
	// Whole-record replacement: skills from the first extraction are gone.
	if len(record.Skills) != 0 {
		t.Fatalf("expected no skills after replacement, got %#v", record.Skills)
	}

	_, record = svc.Submit(context.Background(), "s1", "no thanks")
	if record == nil || record.Title != "Engineer" {
		t.Fatalf("expected prior record retained on plain turn, got %#v", record)
	}
}

func TestSubmitCompletionFailure(t *testing.T) {
	client := &scriptedClient{err: errors.New("connection refused")}
	svc := newTestService(client)

	reply, record := svc.Submit(context.Background(), "s1", "hello?")
	if reply != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", reply)
	}
	if record != nil {
		t.Fatalf("expected nil record on failure, got %#v", record)
	}

	// The failed user turn is not rolled back.
	history := svc.History("s1")
	if len(history) != 1 || history[0].Content != "hello?" {
		t.Fatalf("expected user message retained in history, got %#v", history)
	}
}

func TestSessionsAreIsolatedAndResettable(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"```json\n{\"name\": \"Jane\"}\n```",
		"hello other session",
	}}
	svc := newTestService(client)

	svc.Submit(context.Background(), "a", "I'm Jane")
	svc.Submit(context.Background(), "b", "hi")

	if svc.Record("a") == nil {
		t.Fatal("expected record in session a")
	}
	if svc.Record("b") != nil {
		t.Fatal("expected no record in session b")
	}
	if got := len(svc.History("b")); got != 2 {
		t.Fatalf("expected 2 turns in session b, got %d", got)
	}

	svc.Reset("a")
	if svc.Record("a") != nil {
		t.Fatal("expected record cleared after reset")
	}
	if got := len(svc.History("a")); got != 0 {
		t.Fatalf("expected empty history after reset, got %d", got)
	}
}
