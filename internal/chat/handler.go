package chat

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-chat-backend/internal/shared/server/respond"
)

// Handler wires the chat endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the engine.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/chat", h.chat)
	r.POST("/api/chat/reset", h.reset)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Reply      string `json:"reply"`
	ResumeData any    `json:"resume_data"`
}

func sessionID(c *gin.Context, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	return strings.TrimSpace(c.GetHeader("X-Session-Id"))
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	reply, record := h.Svc.Submit(c.Request.Context(), sessionID(c, req.SessionID), req.Message)

	resp := chatResponse{Reply: reply}
	if record != nil {
		resp.ResumeData = record
	}
	respond.OK(c, resp)
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) reset(c *gin.Context) {
	var req resetRequest
	// Body is optional; an empty or absent body resets the default session.
	_ = c.ShouldBindJSON(&req)

	h.Svc.Reset(sessionID(c, req.SessionID))
	respond.OK(c, gin.H{"ok": true})
}
