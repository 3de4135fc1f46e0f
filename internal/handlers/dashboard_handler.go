package handlers

import (
	"github.com/anonto42/devfeed/backend/internal/middleware"
	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the developer dashboard of a user
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterDashboardRoutes registers dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.GET("/users/:userId/dashboard/repositories", h.GetRepositories)
	g.GET("/users/:userId/dashboard/languages", h.GetLanguages)

	g.POST("/dashboard/repositories", h.AddRepository, auth...)
}

// AddRepository adds a repository card to the caller's dashboard
func (h *DashboardHandler) AddRepository(c echo.Context) error {
	var req models.CreateDashboardRepositoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	repo, err := h.dashboardService.AddRepository(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return created(c, repo)
}

// GetRepositories lists a user's repository cards
func (h *DashboardHandler) GetRepositories(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	repos, err := h.dashboardService.Repositories(c.Request().Context(), userID.Hex())
	if err != nil {
		return httpError(err)
	}
	return ok(c, repos)
}

// GetLanguages returns the language breakdown across a user's repositories
func (h *DashboardHandler) GetLanguages(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	shares, err := h.dashboardService.Languages(c.Request().Context(), userID.Hex())
	if err != nil {
		return httpError(err)
	}
	return ok(c, shares)
}
