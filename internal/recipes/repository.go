package recipes

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository persists recipe submissions.
type Repository interface {
	Create(ctx context.Context, submission *Submission) error
	ListByStatus(ctx context.Context, status string) ([]Submission, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds a GORM-backed submission repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, submission *Submission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("inserting recipe submission: %w", err)
	}
	return nil
}

func (r *gormRepository) ListByStatus(ctx context.Context, status string) ([]Submission, error) {
	var out []Submission
	query := r.db.WithContext(ctx).Order("submitted_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing recipe submissions: %w", err)
	}
	return out, nil
}
