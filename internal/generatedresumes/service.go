package generatedresumes

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"resume-chat-backend/internal/render"
	"resume-chat-backend/internal/resume"
	"resume-chat-backend/internal/shared/storage/object"
	"resume-chat-backend/internal/shared/telemetry"
	"resume-chat-backend/internal/shared/util"
)

const pdfMimeType = "application/pdf"

// Service contains business logic for generating and serving resume PDFs.
type Service struct {
	Renderer *render.Generator
	Store    object.ObjectStore
	Repo     Repo
}

// Generate renders the record to a PDF, saves it to object storage, and
// records the metadata. The returned record carries the public file name
// used to download it later.
func (s *Service) Generate(ctx context.Context, record *resume.Record) (GeneratedResume, error) {
	if record == nil {
		return GeneratedResume{}, ErrInvalidInput
	}

	fileName := fmt.Sprintf("resume_%s.pdf", uuid.NewString())

	tmpDir, err := os.MkdirTemp("", "render_*")
	if err != nil {
		return GeneratedResume{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, fileName)
	strategy, err := s.Renderer.Generate(ctx, record, outPath)
	if err != nil {
		return GeneratedResume{}, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		return GeneratedResume{}, fmt.Errorf("open rendered pdf: %w", err)
	}
	defer f.Close()

	storageKey, size, err := s.Store.Save(ctx, fileName, pdfMimeType, f)
	if err != nil {
		return GeneratedResume{}, fmt.Errorf("store pdf: %w", err)
	}

	rec := GeneratedResume{
		ID:         uuid.NewString(),
		FileName:   fileName,
		StorageKey: storageKey,
		Strategy:   strategy,
		MimeType:   pdfMimeType,
		SizeBytes:  size,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return GeneratedResume{}, fmt.Errorf("record metadata: %w", err)
	}

	telemetry.Info("resume.generated", map[string]any{
		"file_name": fileName,
		"strategy":  strategy,
		"bytes":     size,
	})
	return rec, nil
}

// Download opens a previously generated PDF for reading. The caller owns
// the returned reader.
func (s *Service) Download(ctx context.Context, fileName string) (GeneratedResume, io.ReadCloser, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return GeneratedResume{}, nil, ErrInvalidInput
	}

	rec, err := s.Repo.GetByFileName(ctx, sanitized)
	if err != nil {
		return GeneratedResume{}, nil, err
	}

	rc, err := s.Store.Open(ctx, rec.StorageKey)
	if err != nil {
		if os.IsNotExist(err) {
			return GeneratedResume{}, nil, ErrNotFound
		}
		return GeneratedResume{}, nil, fmt.Errorf("open stored pdf: %w", err)
	}
	return rec, rc, nil
}
