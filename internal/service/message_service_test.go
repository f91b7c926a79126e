package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
)

type memMessageRepo struct {
	mu       sync.Mutex
	messages []model.Message
	nextID   uint
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Create(ctx context.Context, message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *memMessageRepo) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memMessageRepo) ListBetween(ctx context.Context, first, second uuid.UUID) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Message
	for _, m := range r.messages {
		if (m.SenderID == first && m.ReceiverID == second) || (m.SenderID == second && m.ReceiverID == first) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type messageFixture struct {
	messages *memMessageRepo
	users    *memUserRepo
	service  MessageService
}

func newMessageFixture() *messageFixture {
	f := &messageFixture{
		messages: newMemMessageRepo(),
		users:    newMemUserRepo(),
	}
	f.service = NewMessageService(f.messages, f.users, nil)
	return f
}

func (f *messageFixture) send(t *testing.T, sender, receiver uuid.UUID, content string, at time.Time) {
	t.Helper()
	msg := &model.Message{SenderID: sender, ReceiverID: receiver, Content: content, CreatedAt: at}
	assert.NoError(t, f.messages.Create(context.Background(), msg))
}

func TestMessageService_ListConversations_CollapsesPair(t *testing.T) {
	f := newMessageFixture()
	alice := f.users.add("alice")
	bob := f.users.add("bob")

	base := time.Now()
	f.send(t, alice, bob, "hi", base)
	f.send(t, bob, alice, "hello", base.Add(time.Second))

	conversations, err := f.service.ListConversations(context.Background(), alice)
	assert.NoError(t, err)
	assert.Len(t, conversations, 1, "both directions fold into one conversation")
	assert.Equal(t, bob, conversations[0].UserID)
	assert.Equal(t, "bob", conversations[0].UserName)
	assert.Equal(t, "hello", conversations[0].LastMessage.Content)
}

func TestMessageService_ListConversations_RecencyOrder(t *testing.T) {
	f := newMessageFixture()
	alice := f.users.add("alice")
	bob := f.users.add("bob")
	carol := f.users.add("carol")

	base := time.Now()
	f.send(t, alice, bob, "to bob", base)
	f.send(t, carol, alice, "from carol", base.Add(time.Second))

	conversations, err := f.service.ListConversations(context.Background(), alice)
	assert.NoError(t, err)
	assert.Len(t, conversations, 2)
	assert.Equal(t, carol, conversations[0].UserID, "most recent counterpart first")
	assert.Equal(t, bob, conversations[1].UserID)
}

func TestMessageService_ListConversations_EqualTimestampTieBreak(t *testing.T) {
	f := newMessageFixture()
	alice := f.users.add("alice")
	bob := f.users.add("bob")

	at := time.Now()
	f.send(t, alice, bob, "first write", at)
	f.send(t, bob, alice, "second write", at)

	// Same timestamp: the later insert (larger ID) wins, on every read.
	for i := 0; i < 3; i++ {
		conversations, err := f.service.ListConversations(context.Background(), alice)
		assert.NoError(t, err)
		assert.Len(t, conversations, 1)
		assert.Equal(t, "second write", conversations[0].LastMessage.Content)
	}
}

func TestMessageService_ListConversations_DeletedCounterpart(t *testing.T) {
	f := newMessageFixture()
	alice := f.users.add("alice")
	bob := f.users.add("bob")

	f.send(t, bob, alice, "before leaving", time.Now())
	assert.NoError(t, f.users.Delete(context.Background(), bob))

	conversations, err := f.service.ListConversations(context.Background(), alice)
	assert.NoError(t, err)
	assert.Len(t, conversations, 1)
	assert.Equal(t, "Unknown user", conversations[0].UserName)
	assert.Equal(t, "before leaving", conversations[0].LastMessage.Content)
}

func TestMessageService_ListConversations_Empty(t *testing.T) {
	f := newMessageFixture()
	alice := f.users.add("alice")

	conversations, err := f.service.ListConversations(context.Background(), alice)
	assert.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestMessageService_SendMessage(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		missingReceiver bool
		expectedError   error
	}{
		{name: "empty content", content: "", expectedError: apperrors.ErrEmptyContent},
		{name: "whitespace only", content: "  \t ", expectedError: apperrors.ErrEmptyContent},
		{name: "unknown receiver", content: "hello", missingReceiver: true, expectedError: apperrors.ErrUserNotFound},
		{name: "valid message", content: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMessageFixture()
			sender := f.users.add("sender")
			receiver := f.users.add("receiver")
			if tt.missingReceiver {
				receiver = uuid.New()
			}

			message, err := f.service.SendMessage(context.Background(), sender, receiver, tt.content)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, message)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.content, message.Content)
			assert.False(t, message.CreatedAt.IsZero(), "timestamp is server-assigned")
		})
	}
}

func TestMessageService_SendThenList(t *testing.T) {
	f := newMessageFixture()
	alice := f.users.add("alice")
	bob := f.users.add("bob")

	_, err := f.service.SendMessage(context.Background(), alice, bob, "just sent")
	assert.NoError(t, err)

	// The write must be visible to the very next conversation read.
	conversations, err := f.service.ListConversations(context.Background(), alice)
	assert.NoError(t, err)
	assert.Len(t, conversations, 1)
	assert.Equal(t, "just sent", conversations[0].LastMessage.Content)

	conversations, err = f.service.ListConversations(context.Background(), bob)
	assert.NoError(t, err)
	assert.Len(t, conversations, 1)
	assert.Equal(t, "just sent", conversations[0].LastMessage.Content)
}

func TestMessageService_GetThread(t *testing.T) {
	f := newMessageFixture()
	alice := f.users.add("alice")
	bob := f.users.add("bob")
	carol := f.users.add("carol")

	base := time.Now()
	f.send(t, alice, bob, "one", base)
	f.send(t, bob, alice, "two", base.Add(time.Second))
	f.send(t, alice, carol, "other thread", base.Add(2*time.Second))

	thread, err := f.service.GetThread(context.Background(), alice, bob)
	assert.NoError(t, err)
	assert.Len(t, thread, 2, "messages with other counterparts stay out")
	assert.Equal(t, "one", thread[0].Content)
	assert.Equal(t, "two", thread[1].Content)
}
