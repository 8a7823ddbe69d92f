package generatedresumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	byName map[string]GeneratedResume
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byName: make(map[string]GeneratedResume)}
}

// Create stores a record keyed by file name.
func (r *MemoryRepo) Create(ctx context.Context, rec GeneratedResume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[rec.FileName] = rec
	return nil
}

// GetByFileName returns the record for a file name.
func (r *MemoryRepo) GetByFileName(ctx context.Context, fileName string) (GeneratedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byName[fileName]
	if !ok {
		return GeneratedResume{}, ErrNotFound
	}
	return rec, nil
}

// List returns records ordered newest-first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]GeneratedResume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]GeneratedResume, 0, len(r.byName))
	for _, rec := range r.byName {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
