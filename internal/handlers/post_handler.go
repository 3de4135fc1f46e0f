package handlers

import (
	"net/http"

	"github.com/anonto42/devfeed/backend/internal/middleware"
	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts and their likes
type PostHandler struct {
	postService *services.PostService
	likeService *services.LikeService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, likeService *services.LikeService) *PostHandler {
	return &PostHandler{
		postService: postService,
		likeService: likeService,
	}
}

// RegisterPostRoutes registers post-related routes. Mutations run behind auth.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.GET("/posts/:postId", h.GetPost)
	g.GET("/posts/:postId/likes", h.GetPostLikes)

	g.POST("/posts", h.CreatePost, auth...)
	g.DELETE("/posts/:postId", h.DeletePost, auth...)
	g.POST("/posts/:postId/likes", h.LikePost, auth...)
	g.DELETE("/posts/:postId/likes/:likeId", h.UnlikePost, auth...)
}

// CreatePost creates a new post with optional images
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return created(c, post)
}

// GetPost retrieves an enriched post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	post, err := h.postService.GetPost(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, post)
}

// GetPostLikes lists a post's likes; unknown posts have none
func (h *PostHandler) GetPostLikes(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	likes, err := h.postService.PostLikes(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, likes)
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), postID, middleware.CurrentUserID(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, models.Result(true))
}

// LikePost upserts the caller's like. The body userID must match the session.
func (h *PostHandler) LikePost(c echo.Context) error {
	var req models.CreatePostLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.likeService.LikePost(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// UnlikePost removes the caller's like
func (h *PostHandler) UnlikePost(c echo.Context) error {
	var req models.DeletePostLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.likeService.UnlikePost(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func postIDParam(c echo.Context) (primitive.ObjectID, error) {
	var p models.PostIDParam
	if err := bindAndValidate(c, &p); err != nil {
		return primitive.NilObjectID, err
	}
	id, err := models.ParseObjectID("postId", p.PostID)
	if err != nil {
		return primitive.NilObjectID, httpError(err)
	}
	return id, nil
}
