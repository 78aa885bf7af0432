package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shyam4142/Village-Vault/internal/cqrs"
	"github.com/Shyam4142/Village-Vault/internal/middleware"
	"github.com/Shyam4142/Village-Vault/internal/models"
)

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetProfile(cqrs.GetProfileQuery) (*models.ProfileView, error)
}

// UserHandler serves the caller's own profile and balances.
type UserHandler struct {
	queries UserQuerier
}

func NewUserHandler(queries UserQuerier) *UserHandler {
	return &UserHandler{queries: queries}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetProfile(cqrs.GetProfileQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, view)
}
