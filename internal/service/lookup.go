package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projecthub/internal/repository"
)

// unknownUserLabel stands in for users that have been deleted. History that
// references them is kept, never dropped.
const unknownUserLabel = "Unknown user"

// resolveUserNames batch-resolves display names. IDs whose account no longer
// exists map to unknownUserLabel.
func resolveUserNames(ctx context.Context, repo repository.UserRepository, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		names[id] = unknownUserLabel
	}

	users, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve user names: %w", err)
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
