package handlers

import (
	"net/http"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedHandler serves the discovery feed and the timelines
type FeedHandler struct {
	postService *services.PostService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postService *services.PostService) *FeedHandler {
	return &FeedHandler{postService: postService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
	g.GET("/users/:userId/posts", h.GetUserTimeline)
	g.GET("/users/:userId/posts/count", h.CountUserPosts)
}

// GetFeed returns the random discovery feed for ?type=random, and otherwise
// the aggregated timeline of ?user_id
func (h *FeedHandler) GetFeed(c echo.Context) error {
	var q models.TimelineQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	if q.Type == "random" {
		posts, err := h.postService.RandomFeed(c.Request().Context())
		if err != nil {
			return httpError(err)
		}
		return ok(c, posts)
	}

	if q.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required unless type=random")
	}
	userID, err := models.ParseObjectID("user_id", q.UserID)
	if err != nil {
		return httpError(err)
	}

	posts, err := h.postService.Timeline(c.Request().Context(), userID, models.Page{Offset: q.Offset, Limit: q.Limit})
	if err != nil {
		return httpError(err)
	}
	return ok(c, posts)
}

// GetUserTimeline returns the posts of one user, newest first
func (h *FeedHandler) GetUserTimeline(c echo.Context) error {
	var q models.UserPostsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	userID, err := models.ParseObjectID("userId", q.UserID)
	if err != nil {
		return httpError(err)
	}

	posts, err := h.postService.UserTimeline(c.Request().Context(), userID, models.Page{Offset: q.Offset, Limit: q.Limit})
	if err != nil {
		return httpError(err)
	}
	return ok(c, posts)
}

// CountUserPosts returns how many posts a user wrote
func (h *FeedHandler) CountUserPosts(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	n, err := h.postService.CountUserPosts(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, echo.Map{"user_id": userID.Hex(), "count": n})
}

func userIDParam(c echo.Context) (primitive.ObjectID, error) {
	var p models.UserIDParam
	if err := bindAndValidate(c, &p); err != nil {
		return primitive.NilObjectID, err
	}
	id, err := models.ParseObjectID("userId", p.UserID)
	if err != nil {
		return primitive.NilObjectID, httpError(err)
	}
	return id, nil
}
