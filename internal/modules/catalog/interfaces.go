package catalog

import (
	"context"

	"studiocatalog/internal/domain"
)

// StudioRows is the remote record store the catalog talks to. The
// gorm-backed repository satisfies it; tests substitute mocks.
type StudioRows interface {
	SelectAll(ctx context.Context) ([]domain.Studio, error)
	SelectByID(ctx context.Context, id int64) (*domain.Studio, error)
	Insert(ctx context.Context, studio *domain.Studio) error
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.Studio, error)
	UpdateStats(ctx context.Context, id int64, stats domain.Stats) error
	Delete(ctx context.Context, id int64) error
}
