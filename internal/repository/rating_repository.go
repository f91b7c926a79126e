package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"projecthub/internal/model"
)

// RatingRepository defines rating persistence operations.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	Update(ctx context.Context, rating *model.Rating) error
	FindByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*model.Rating, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Rating, error)
	// WithTransaction executes a function against a transaction-scoped repository.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RatingRepository) error) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) Update(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *ratingRepository) FindByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Rating, error) {
	var ratings []model.Rating
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// WithTransaction executes a function within a database transaction.
func (r *ratingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RatingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &ratingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
