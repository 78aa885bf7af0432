package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/middleware"
	"github.com/Shyam4142/Village-Vault/internal/models"
)

// AuthLogQuerier defines the read-side operations used by AuthLogHandler.
type AuthLogQuerier interface {
	ListAuthEvents(cqrs.ListAuthEventsQuery) ([]models.AuthEventView, error)
}

// AuthLogHandler serves the fraud-detection view: the caller's login
// timestamps, newest first.
type AuthLogHandler struct {
	queries AuthLogQuerier
}

type AuthEventsResponse struct {
	Email      string `json:"email"`
	AuthEvents []any  `json:"authEvents"`
}

func NewAuthLogHandler(queries AuthLogQuerier) *AuthLogHandler {
	return &AuthLogHandler{queries: queries}
}

func (h *AuthLogHandler) ListAuthEvents(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	email, _ := middleware.GetEmail(c)

	views, err := h.queries.ListAuthEvents(cqrs.ListAuthEventsQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list authentication history")
		return
	}

	eventsAny := make([]any, len(views))
	for i, v := range views {
		eventsAny[i] = v
	}
	c.JSON(http.StatusOK, AuthEventsResponse{Email: email, AuthEvents: eventsAny})
}
