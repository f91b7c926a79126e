package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
)

type projectFixture struct {
	projects *memProjectRepo
	ratings  *memRatingRepo
	users    *memUserRepo
	service  ProjectService
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		projects: newMemProjectRepo(),
		ratings:  newMemRatingRepo(),
		users:    newMemUserRepo(),
	}
	f.service = NewProjectService(f.projects, f.ratings, f.users, nil)
	return f
}

func TestProjectService_CreateAndGet(t *testing.T) {
	f := newProjectFixture()
	creator := f.users.add("creator")

	project, err := f.service.CreateProject(context.Background(), creator, ProjectInput{
		Title:        "Campus Ride Share",
		Description:  "Commute matching",
		Technologies: []string{"Go", "MySQL"},
		Resources:    []model.Resource{{Title: "Repo", URL: "https://example.com/repo"}},
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, project.ID)
	assert.Equal(t, creator, project.CreatorID)

	view, err := f.service.GetProject(context.Background(), project.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Campus Ride Share", view.Title)
	assert.Equal(t, "creator", view.CreatorName)
	assert.Nil(t, view.AverageRating, "no ratings yet means absent, not zero")
	assert.Equal(t, 0, view.RatingCount)
}

func TestProjectService_GetProject_WithRatings(t *testing.T) {
	f := newProjectFixture()
	creator := f.users.add("creator")
	project, err := f.service.CreateProject(context.Background(), creator, ProjectInput{Title: "Rated", Description: "d"})
	assert.NoError(t, err)

	for _, score := range []int{4, 5} {
		assert.NoError(t, f.ratings.Create(context.Background(), &model.Rating{
			ProjectID: project.ID,
			UserID:    f.users.add("rater"),
			Score:     score,
		}))
	}

	view, err := f.service.GetProject(context.Background(), project.ID)
	assert.NoError(t, err)
	assert.NotNil(t, view.AverageRating)
	assert.Equal(t, 4.5, *view.AverageRating)
	assert.Equal(t, 2, view.RatingCount)
}

func TestProjectService_GetProject_NotFound(t *testing.T) {
	f := newProjectFixture()
	_, err := f.service.GetProject(context.Background(), uuid.New())
	assert.Equal(t, apperrors.ErrProjectNotFound, err)
}

func TestProjectService_UpdateProject_Ownership(t *testing.T) {
	f := newProjectFixture()
	owner := f.users.add("owner")
	stranger := f.users.add("stranger")
	project, err := f.service.CreateProject(context.Background(), owner, ProjectInput{Title: "Before", Description: "d"})
	assert.NoError(t, err)

	_, err = f.service.UpdateProject(context.Background(), stranger, project.ID, ProjectInput{Title: "Hijacked", Description: "d"})
	assert.Equal(t, apperrors.ErrNotProjectOwner, err)

	updated, err := f.service.UpdateProject(context.Background(), owner, project.ID, ProjectInput{Title: "After", Description: "d"})
	assert.NoError(t, err)
	assert.Equal(t, "After", updated.Title)

	view, err := f.service.GetProject(context.Background(), project.ID)
	assert.NoError(t, err)
	assert.Equal(t, "After", view.Title, "the stranger's write must not have landed")
}

func TestProjectService_DeleteProject_Ownership(t *testing.T) {
	f := newProjectFixture()
	owner := f.users.add("owner")
	stranger := f.users.add("stranger")
	project, err := f.service.CreateProject(context.Background(), owner, ProjectInput{Title: "Doomed", Description: "d"})
	assert.NoError(t, err)

	err = f.service.DeleteProject(context.Background(), stranger, project.ID)
	assert.Equal(t, apperrors.ErrNotProjectOwner, err)

	err = f.service.DeleteProject(context.Background(), owner, project.ID)
	assert.NoError(t, err)

	_, err = f.service.GetProject(context.Background(), project.ID)
	assert.Equal(t, apperrors.ErrProjectNotFound, err)

	err = f.service.DeleteProject(context.Background(), owner, project.ID)
	assert.Equal(t, apperrors.ErrProjectNotFound, err)
}

func TestProjectService_ListProjects(t *testing.T) {
	f := newProjectFixture()
	creator := f.users.add("creator")

	for _, title := range []string{"One", "Two"} {
		_, err := f.service.CreateProject(context.Background(), creator, ProjectInput{Title: title, Description: "d"})
		assert.NoError(t, err)
	}

	views, err := f.service.ListProjects(context.Background())
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, "creator", v.CreatorName)
		assert.Nil(t, v.AverageRating)
	}
}

func TestProjectService_ListProjects_DeletedCreator(t *testing.T) {
	f := newProjectFixture()
	creator := f.users.add("creator")
	_, err := f.service.CreateProject(context.Background(), creator, ProjectInput{Title: "Orphaned", Description: "d"})
	assert.NoError(t, err)

	assert.NoError(t, f.users.Delete(context.Background(), creator))

	views, err := f.service.ListProjects(context.Background())
	assert.NoError(t, err)
	assert.Len(t, views, 1, "the project outlives its creator")
	assert.Equal(t, "Unknown user", views[0].CreatorName)
}
