package generatedresumes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-chat-backend/internal/resume"
	"resume-chat-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume generation routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/generate-resume", h.generate)
	r.GET("/download-resume/:filename", h.download)
}

type generateRequest struct {
	ResumeData json.RawMessage `json:"resume_data"`
}

type generateResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DownloadURL string `json:"download_url,omitempty"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	data := bytes.TrimSpace(req.ResumeData)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_data is required", nil)
		return
	}
	if data[0] != '{' {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_data must be an object", nil)
		return
	}

	var record resume.Record
	if err := json.Unmarshal(data, &record); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_data is malformed", nil)
		return
	}

	rec, err := h.Svc.Generate(c.Request.Context(), &record)
	if err != nil {
		respond.JSON(c, http.StatusInternalServerError, generateResponse{
			Success: false,
			Message: "Failed to generate resume",
		})
		return
	}

	respond.JSON(c, http.StatusOK, generateResponse{
		Success:     true,
		Message:     "Resume generated successfully",
		DownloadURL: "/download-resume/" + rec.FileName,
	})
}

func (h *Handler) download(c *gin.Context) {
	fileName := c.Param("filename")

	rec, rc, err := h.Svc.Download(c.Request.Context(), fileName)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume file not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to download resume", nil)
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.FileName))
	c.DataFromReader(http.StatusOK, rec.SizeBytes, rec.MimeType, rc, nil)
}
