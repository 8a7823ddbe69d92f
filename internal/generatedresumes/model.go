package generatedresumes

import "time"

// GeneratedResume records one rendered PDF and where it is stored.
type GeneratedResume struct {
	ID         string
	FileName   string
	StorageKey string
	Strategy   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}
