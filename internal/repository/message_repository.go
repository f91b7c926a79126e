package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"projecthub/internal/model"
)

// MessageRepository defines message persistence operations. The message log
// is append-only; each insert is independent and atomic.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.Message, error)
	ListBetween(ctx context.Context, first, second uuid.UUID) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByParticipant returns every message the user sent or received, newest
// first. The secondary ID ordering makes the scan deterministic when two
// messages share a timestamp.
func (r *messageRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListBetween returns the full thread between two users, oldest first.
func (r *messageRepository) ListBetween(ctx context.Context, first, second uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			first, second, second, first).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
