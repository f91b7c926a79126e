package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"projecthub/internal/cache"
	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

const projectCacheTTL = 5 * time.Minute

// ProjectInput carries the creator-editable project fields.
type ProjectInput struct {
	Title                 string
	Description           string
	Technologies          []string
	ImplementationDetails string
	Resources             []model.Resource
}

// ProjectView is a project with its read-time derived fields attached.
// AverageRating is nil when nobody has rated yet; it is computed from the
// current rating set on every read and never persisted.
type ProjectView struct {
	model.Project
	CreatorName   string   `json:"creator_name"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	RatingCount   int      `json:"rating_count"`
}

// ProjectService handles project CRUD and ownership checks.
type ProjectService interface {
	ListProjects(ctx context.Context) ([]ProjectView, error)
	GetProject(ctx context.Context, id uuid.UUID) (*ProjectView, error)
	CreateProject(ctx context.Context, creatorID uuid.UUID, input ProjectInput) (*model.Project, error)
	UpdateProject(ctx context.Context, callerID, id uuid.UUID, input ProjectInput) (*model.Project, error)
	DeleteProject(ctx context.Context, callerID, id uuid.UUID) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	ratingRepo  repository.RatingRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
}

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		ratingRepo:  ratingRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

func projectCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("project:%s", id.String())
}

// ListProjects returns all projects with creator names resolved in one batch.
func (s *projectService) ListProjects(ctx context.Context) ([]ProjectView, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	creatorIDs := make([]uuid.UUID, 0, len(projects))
	seen := make(map[uuid.UUID]bool, len(projects))
	for _, p := range projects {
		if !seen[p.CreatorID] {
			seen[p.CreatorID] = true
			creatorIDs = append(creatorIDs, p.CreatorID)
		}
	}
	names, err := resolveUserNames(ctx, s.userRepo, creatorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		ratings, err := s.ratingRepo.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("list ratings for %s: %w", p.ID, err)
		}
		views = append(views, ProjectView{
			Project:       p,
			CreatorName:   names[p.CreatorID],
			AverageRating: averageScore(ratings),
			RatingCount:   len(ratings),
		})
	}
	return views, nil
}

// GetProject retrieves one project view, cached.
func (s *projectService) GetProject(ctx context.Context, id uuid.UUID) (*ProjectView, error) {
	if data, _ := s.cache.Get(ctx, projectCacheKey(id)); data != nil {
		var cached ProjectView
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	names, err := resolveUserNames(ctx, s.userRepo, []uuid.UUID{project.CreatorID})
	if err != nil {
		return nil, err
	}

	view := &ProjectView{
		Project:       *project,
		CreatorName:   names[project.CreatorID],
		AverageRating: averageScore(ratings),
		RatingCount:   len(ratings),
	}

	if payload, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, projectCacheKey(id), payload, projectCacheTTL)
	}
	return view, nil
}

func (s *projectService) CreateProject(ctx context.Context, creatorID uuid.UUID, input ProjectInput) (*model.Project, error) {
	project := &model.Project{
		Title:                 input.Title,
		Description:           input.Description,
		Technologies:          input.Technologies,
		CreatorID:             creatorID,
		ImplementationDetails: input.ImplementationDetails,
		Resources:             input.Resources,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// UpdateProject replaces the editable fields. Only the creator may update.
func (s *projectService) UpdateProject(ctx context.Context, callerID, id uuid.UUID, input ProjectInput) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	if project.CreatorID != callerID {
		return nil, apperrors.ErrNotProjectOwner
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Technologies = input.Technologies
	project.ImplementationDetails = input.ImplementationDetails
	project.Resources = input.Resources

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	_ = s.cache.Delete(ctx, projectCacheKey(id))
	return project, nil
}

// DeleteProject removes a project and its engagement records. Only the
// creator may delete.
func (s *projectService) DeleteProject(ctx context.Context, callerID, id uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProjectNotFound
		}
		return err
	}
	if project.CreatorID != callerID {
		return apperrors.ErrNotProjectOwner
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	_ = s.cache.Delete(ctx, projectCacheKey(id))
	return nil
}
