package handlers

import (
	"net/http"

	"github.com/anonto42/devfeed/backend/internal/middleware"
	"github.com/anonto42/devfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.POST("/users/:userId/follow", h.FollowUser, auth...)
	g.DELETE("/users/:userId/follow", h.UnfollowUser, auth...)
}

// FollowUser makes the caller follow :userId
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}

	res, err := h.followService.Follow(c.Request().Context(), middleware.CurrentUserID(c), targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// UnfollowUser removes the caller's follow of :userId
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}

	res, err := h.followService.Unfollow(c.Request().Context(), middleware.CurrentUserID(c), targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}
