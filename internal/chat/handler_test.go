package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-chat-backend/internal/llm"
)

type stubClient struct {
	reply string
	err   error
}

func (s stubClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	return s.reply, s.err
}

func newChatRouter(client llm.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := &Service{LLM: client, Sessions: NewStore(), Prompt: "collect resume details"}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(resp, req)
	return resp
}

func TestChatReturnsReplyAndResumeData(t *testing.T) {
	reply := "Got it!\n```json\n{\"name\": \"Jane Doe\", \"skills\": [\"Go\"]}\n```"
	router := newChatRouter(stubClient{reply: reply})

	resp := postJSON(router, "/api/chat", `{"message": "My name is Jane Doe"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Reply      string          `json:"reply"`
		ResumeData json.RawMessage `json:"resume_data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Reply != reply {
		t.Fatalf("unexpected reply %q", out.Reply)
	}
	if !strings.Contains(string(out.ResumeData), "Jane Doe") {
		t.Fatalf("expected resume data, got %s", out.ResumeData)
	}
}

func TestChatWithoutExtractionReturnsNullData(t *testing.T) {
	router := newChatRouter(stubClient{reply: "Tell me about your work history."})

	resp := postJSON(router, "/api/chat", `{"message": "hi"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(out["resume_data"]) != "null" {
		t.Fatalf("expected null resume_data, got %s", out["resume_data"])
	}
}

func TestChatCompletionFailureReturnsFallback(t *testing.T) {
	router := newChatRouter(stubClient{err: errors.New("upstream down")})

	resp := postJSON(router, "/api/chat", `{"message": "hi"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Reply != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", out.Reply)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	router := newChatRouter(stubClient{reply: "ok"})

	for _, body := range []string{`{}`, `{"message": "   "}`} {
		resp := postJSON(router, "/api/chat", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.Code)
		}
	}
}

func TestChatSessionHeaderRoutesToSameSession(t *testing.T) {
	reply := "```json\n{\"name\": \"Jane Doe\"}\n```"
	gin.SetMode(gin.TestMode)
	svc := &Service{LLM: stubClient{reply: reply}, Sessions: NewStore(), Prompt: "p"}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "abc")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if svc.Record("abc") == nil {
		t.Fatal("expected record stored under header session")
	}
	if svc.Record(DefaultSessionID) != nil {
		t.Fatal("default session should be untouched")
	}
}

func TestResetClearsSession(t *testing.T) {
	reply := "```json\n{\"name\": \"Jane Doe\"}\n```"
	gin.SetMode(gin.TestMode)
	svc := &Service{LLM: stubClient{reply: reply}, Sessions: NewStore(), Prompt: "p"}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)

	if resp := postJSON(r, "/api/chat", `{"message": "hi"}`); resp.Code != http.StatusOK {
		t.Fatalf("chat: expected 200, got %d", resp.Code)
	}
	if len(svc.History(DefaultSessionID)) == 0 {
		t.Fatal("expected history before reset")
	}

	if resp := postJSON(r, "/api/chat/reset", `{}`); resp.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", resp.Code)
	}

	if got := len(svc.History(DefaultSessionID)); got != 0 {
		t.Fatalf("expected empty history after reset, got %d messages", got)
	}
	if svc.Record(DefaultSessionID) != nil {
		t.Fatal("expected no record after reset")
	}
}
