package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"projecthub/internal/cache"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

const conversationCacheTTL = 30 * time.Second

// Conversation is the derived per-counterpart view of the message log. It is
// computed at read time and never stored: one entry per distinct counterpart,
// holding only the most recent message between the pair.
type Conversation struct {
	UserID      uuid.UUID     `json:"user_id"`
	UserName    string        `json:"user_name"`
	LastMessage model.Message `json:"last_message"`
}

// MessageService handles direct messages and the conversation view.
type MessageService interface {
	ListConversations(ctx context.Context, callerID uuid.UUID) ([]Conversation, error)
	GetThread(ctx context.Context, callerID, otherID uuid.UUID) ([]model.Message, error)
	SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*model.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
}

// NewMessageService creates a new message service.
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

func conversationCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("conversations:%s", userID.String())
}

// ListConversations folds the caller's slice of the message log into one row
// per distinct counterpart, most recent first.
//
// The repository hands back messages ordered by (created_at, id) descending,
// so a single pass keeping the first message seen per counterpart yields the
// argmax deterministically: equal timestamps resolve to the larger ID, and
// two runs over the same log always pick the same winner. Appending winners
// in scan order also leaves the result sorted by recency.
func (s *messageService) ListConversations(ctx context.Context, callerID uuid.UUID) ([]Conversation, error) {
	if data, _ := s.cache.Get(ctx, conversationCacheKey(callerID)); data != nil {
		var cached []Conversation
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	messages, err := s.messageRepo.ListByParticipant(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	conversations := make([]Conversation, 0)
	taken := make(map[uuid.UUID]bool)
	for _, msg := range messages {
		counterpart := msg.SenderID
		if counterpart == callerID {
			counterpart = msg.ReceiverID
		}
		if taken[counterpart] {
			continue
		}
		taken[counterpart] = true
		conversations = append(conversations, Conversation{
			UserID:      counterpart,
			LastMessage: msg,
		})
	}

	counterpartIDs := make([]uuid.UUID, 0, len(conversations))
	for _, conv := range conversations {
		counterpartIDs = append(counterpartIDs, conv.UserID)
	}
	names, err := resolveUserNames(ctx, s.userRepo, counterpartIDs)
	if err != nil {
		return nil, err
	}
	for i := range conversations {
		conversations[i].UserName = names[conversations[i].UserID]
	}

	if payload, err := json.Marshal(conversations); err == nil {
		_ = s.cache.Set(ctx, conversationCacheKey(callerID), payload, conversationCacheTTL)
	}
	return conversations, nil
}

// GetThread returns every message between the two users, oldest first.
func (s *messageService) GetThread(ctx context.Context, callerID, otherID uuid.UUID) ([]model.Message, error) {
	messages, err := s.messageRepo.ListBetween(ctx, callerID, otherID)
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	return messages, nil
}

// SendMessage appends to the message log with a server timestamp. Both
// participants' conversation caches are invalidated so the write is visible
// to the very next read from either side.
func (s *messageService) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrEmptyContent
	}

	if _, err := s.userRepo.FindByID(ctx, receiverID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find receiver: %w", err)
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	_ = s.cache.Delete(ctx, conversationCacheKey(senderID))
	_ = s.cache.Delete(ctx, conversationCacheKey(receiverID))

	return message, nil
}
