package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"projecthub/internal/auth"
	"projecthub/internal/errors"
	"projecthub/internal/service"
)

// MessageHandler handles direct message endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// MessageRequest represents a message submission.
type MessageRequest struct {
	Content string `json:"content"`
}

// ListConversations godoc
// @Summary List the caller's conversations
// @Description One entry per distinct counterpart, holding the most recent message, newest first.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.Conversation
// @Failure 401 {object} errors.ErrorResponse
// @Router /messages/conversations [get]
func (h *MessageHandler) ListConversations(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	conversations, err := h.messageService.ListConversations(c.Request().Context(), callerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, conversations)
}

// GetThread godoc
// @Summary Get the thread with another user
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Counterpart user ID"
// @Success 200 {array} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /messages/{userId} [get]
func (h *MessageHandler) GetThread(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	otherID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_UUID",
		})
	}

	messages, err := h.messageService.GetThread(c.Request().Context(), callerID, otherID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Receiver user ID"
// @Param request body MessageRequest true "Message text"
// @Success 201 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages/{userId} [post]
func (h *MessageHandler) SendMessage(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	receiverID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_UUID",
		})
	}

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	message, err := h.messageService.SendMessage(c.Request().Context(), callerID, receiverID, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, message)
}
