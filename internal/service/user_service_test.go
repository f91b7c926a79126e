package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "projecthub/internal/errors"
)

func TestUserService_GetUser(t *testing.T) {
	users := newMemUserRepo()
	service := NewUserService(users, nil)

	id := users.add("alice")

	user, err := service.GetUser(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Name)

	_, err = service.GetUser(context.Background(), uuid.New())
	assert.Equal(t, apperrors.ErrUserNotFound, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	users := newMemUserRepo()
	service := NewUserService(users, nil)

	owner := users.add("owner")
	stranger := users.add("stranger")

	update := ProfileUpdate{
		Name:           "Owner Renamed",
		Department:     "Computer Science",
		GraduationYear: 2026,
		Skills:         []string{"Go", "Redis"},
	}

	_, err := service.UpdateProfile(context.Background(), stranger, owner, update)
	assert.Equal(t, apperrors.ErrNotProfileOwner, err, "only the profile owner may edit it")

	user, err := service.UpdateProfile(context.Background(), owner, owner, update)
	assert.NoError(t, err)
	assert.Equal(t, "Owner Renamed", user.Name)
	assert.Equal(t, "Computer Science", user.Department)
	assert.Equal(t, []string{"Go", "Redis"}, []string(user.Skills))

	// Email and role are untouchable through profile updates.
	assert.Equal(t, "owner@example.com", user.Email)
}

func TestUserService_DeleteUser(t *testing.T) {
	users := newMemUserRepo()
	service := NewUserService(users, nil)

	id := users.add("doomed")

	assert.NoError(t, service.DeleteUser(context.Background(), id))

	_, err := service.GetUser(context.Background(), id)
	assert.Equal(t, apperrors.ErrUserNotFound, err)

	err = service.DeleteUser(context.Background(), id)
	assert.Equal(t, apperrors.ErrUserNotFound, err)
}
