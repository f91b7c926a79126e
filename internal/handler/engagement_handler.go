package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"projecthub/internal/auth"
	"projecthub/internal/errors"
	"projecthub/internal/service"
)

// EngagementHandler handles project comment and rating endpoints.
type EngagementHandler struct {
	engagementService service.EngagementService
}

// NewEngagementHandler creates a new engagement handler.
func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// CommentRequest represents a comment submission.
type CommentRequest struct {
	Content string `json:"content"`
}

// RatingRequest represents a rating submission. Range checks belong to the
// service so an out-of-range score maps to the documented domain error.
type RatingRequest struct {
	Score int `json:"score"`
}

// RatingResponse carries the recomputed consensus rating.
type RatingResponse struct {
	AverageRating float64 `json:"average_rating"`
}

// AddComment godoc
// @Summary Comment on a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body CommentRequest true "Comment text"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/comments [post]
func (h *EngagementHandler) AddComment(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid project id",
			Code:  "INVALID_UUID",
		})
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.engagementService.AddComment(c.Request().Context(), projectID, callerID, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary List a project's comments
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/comments [get]
func (h *EngagementHandler) ListComments(c echo.Context) error {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid project id",
			Code:  "INVALID_UUID",
		})
	}

	comments, err := h.engagementService.ListComments(c.Request().Context(), projectID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, comments)
}

// SubmitRating godoc
// @Summary Rate a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body RatingRequest true "Score in [1,5]"
// @Success 200 {object} RatingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /projects/{id}/rating [post]
func (h *EngagementHandler) SubmitRating(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid project id",
			Code:  "INVALID_UUID",
		})
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	average, err := h.engagementService.SubmitRating(c.Request().Context(), projectID, callerID, req.Score)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, RatingResponse{AverageRating: average})
}
