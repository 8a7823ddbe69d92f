package generatedresumes

import "context"

// Repo persists generated resume metadata.
type Repo interface {
	Create(ctx context.Context, rec GeneratedResume) error
	GetByFileName(ctx context.Context, fileName string) (GeneratedResume, error)
	List(ctx context.Context, limit, offset int) ([]GeneratedResume, error)
}
