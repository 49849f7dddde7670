package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"studiocatalog/internal/domain"

	"gorm.io/gorm"
)

// StudioRepository is the record-store half of the remote backend: row
// CRUD on the studios table. Callers never touch gorm directly.
type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

// SelectAll returns every studio row, oldest first so the catalog
// order is stable across restarts.
func (r *StudioRepository) SelectAll(ctx context.Context) ([]domain.Studio, error) {
	var studios []domain.Studio
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&studios).Error
	return studios, err
}

// SelectByID fetches a single studio row. gorm.ErrRecordNotFound when
// the row does not exist.
func (r *StudioRepository) SelectByID(ctx context.Context, id int64) (*domain.Studio, error) {
	var studio domain.Studio
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&studio).Error
	if err != nil {
		return nil, err
	}
	return &studio, nil
}

// Insert creates the row and fills in the server-assigned ID and
// timestamps on the passed studio.
func (r *StudioRepository) Insert(ctx context.Context, studio *domain.Studio) error {
	return r.db.WithContext(ctx).Create(studio).Error
}

// Update applies a partial column update and returns the full row as
// the store now holds it, so callers can replace their copy wholesale.
func (r *StudioRepository) Update(ctx context.Context, id int64, fields map[string]any) (*domain.Studio, error) {
	prepared, err := marshalJSONColumns(fields)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&domain.Studio{}).
		Where("id = ?", id).
		Updates(prepared).Error
	if err != nil {
		return nil, err
	}
	return r.SelectByID(ctx, id)
}

// UpdateStats overwrites only the stats column of the row.
func (r *StudioRepository) UpdateStats(ctx context.Context, id int64, stats domain.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&domain.Studio{}).
		Where("id = ?", id).
		Update("stats", string(raw)).Error
}

// jsonColumns are stored serialized; map-style updates bypass the gorm
// serializer, so their values are marshalled here before the write.
var jsonColumns = map[string]bool{
	"images":   true,
	"features": true,
	"contact":  true,
	"stats":    true,
}

func marshalJSONColumns(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if !jsonColumns[k] {
			out[k] = v
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s column: %w", k, err)
		}
		out[k] = string(raw)
	}
	return out, nil
}

// Delete removes the row. Deleting an absent row is not an error.
func (r *StudioRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Studio{}).Error
}
