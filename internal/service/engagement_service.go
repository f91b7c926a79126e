package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"projecthub/internal/cache"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

// EngagementService maintains a project's rating ledger and comment log.
// Mutations to one project are serialized behind a per-project mutex so
// concurrent submissions never lose an update.
type EngagementService interface {
	SubmitRating(ctx context.Context, projectID, userID uuid.UUID, score int) (float64, error)
	AddComment(ctx context.Context, projectID, userID uuid.UUID, content string) (*model.Comment, error)
	ListComments(ctx context.Context, projectID uuid.UUID) ([]model.Comment, error)
}

type engagementService struct {
	projectRepo repository.ProjectRepository
	ratingRepo  repository.RatingRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
	// Mutex map for per-project locking
	projectMutexes sync.Map
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(
	projectRepo repository.ProjectRepository,
	ratingRepo repository.RatingRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) EngagementService {
	return &engagementService{
		projectRepo: projectRepo,
		ratingRepo:  ratingRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

// getMutex returns the mutex serializing mutations for one project.
func (s *engagementService) getMutex(projectID uuid.UUID) *sync.Mutex {
	value, _ := s.projectMutexes.LoadOrStore(projectID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// averageScore returns the arithmetic mean of the scores rounded to one
// decimal place, or nil for an empty set. "No opinions yet" is absent, not
// zero.
func averageScore(ratings []model.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}

// SubmitRating upserts the caller's score for a project and returns the new
// consensus rating. A second submission from the same user replaces the
// first in place.
func (s *engagementService) SubmitRating(ctx context.Context, projectID, userID uuid.UUID, score int) (float64, error) {
	if score < 1 || score > 5 {
		return 0, apperrors.ErrInvalidScore
	}

	mutex := s.getMutex(projectID)
	mutex.Lock()
	defer mutex.Unlock()

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, apperrors.ErrProjectNotFound
		}
		return 0, fmt.Errorf("find project: %w", err)
	}

	err := s.ratingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RatingRepository) error {
		existing, err := txRepo.FindByProjectAndUser(ctx, projectID, userID)
		if err == nil {
			existing.Score = score
			return txRepo.Update(ctx, existing)
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		createErr := txRepo.Create(ctx, &model.Rating{
			ProjectID: projectID,
			UserID:    userID,
			Score:     score,
		})
		if createErr == nil {
			return nil
		}
		// Another writer inserted the same (project, user) row first; retry
		// once as an update before surfacing a conflict.
		if createErr == gorm.ErrDuplicatedKey {
			existing, err := txRepo.FindByProjectAndUser(ctx, projectID, userID)
			if err != nil {
				return apperrors.ErrRatingConflict
			}
			existing.Score = score
			return txRepo.Update(ctx, existing)
		}
		return createErr
	})
	if err != nil {
		return 0, err
	}

	ratings, err := s.ratingRepo.ListByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("list ratings: %w", err)
	}

	_ = s.cache.Delete(ctx, projectCacheKey(projectID))

	// The set cannot be empty here; the caller's own rating was just written.
	return *averageScore(ratings), nil
}

// AddComment appends a comment with a server-assigned timestamp. Comments
// are never edited or removed afterwards.
func (s *engagementService) AddComment(ctx context.Context, projectID, userID uuid.UUID, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrEmptyContent
	}

	mutex := s.getMutex(projectID)
	mutex.Lock()
	defer mutex.Unlock()

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	comment := &model.Comment{
		ProjectID: projectID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	names, err := resolveUserNames(ctx, s.userRepo, []uuid.UUID{userID})
	if err == nil {
		comment.UserName = names[userID]
	} else {
		comment.UserName = unknownUserLabel
	}

	_ = s.cache.Delete(ctx, projectCacheKey(projectID))
	return comment, nil
}

// ListComments returns a project's comments in append order with author
// names resolved.
func (s *engagementService) ListComments(ctx context.Context, projectID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	comments, err := s.commentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	seen := make(map[uuid.UUID]bool, len(comments))
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}
	names, err := resolveUserNames(ctx, s.userRepo, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].UserName = names[comments[i].UserID]
	}
	return comments, nil
}
