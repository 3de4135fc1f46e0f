package handlers

import (
	"net/http"

	"github.com/anonto42/devfeed/backend/internal/middleware"
	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and comment likes
type CommentHandler struct {
	commentService *services.CommentService
	likeService    *services.LikeService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService, likeService *services.LikeService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		likeService:    likeService,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth ...echo.MiddlewareFunc) {
	g.GET("/posts/:postId/comments", h.GetComments)
	g.GET("/posts/:postId/comments/:commentId/likes", h.GetCommentLikes)

	g.POST("/posts/:postId/comments", h.CreateComment, auth...)
	g.DELETE("/posts/:postId/comments/:commentId", h.DeleteComment, auth...)
	g.POST("/posts/:postId/comments/:commentId/likes", h.LikeComment, auth...)
	g.DELETE("/posts/:postId/comments/:commentId/likes/:likeId", h.UnlikeComment, auth...)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return created(c, comment)
}

// GetComments lists the comments of a post
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	comments, err := h.commentService.Comments(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, comments)
}

// DeleteComment removes the caller's comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	var p models.CommentPathParams
	if err := bindAndValidate(c, &p); err != nil {
		return err
	}
	postID, err := models.ParseObjectID("postId", p.PostID)
	if err != nil {
		return httpError(err)
	}
	commentID, err := models.ParseObjectID("commentId", p.CommentID)
	if err != nil {
		return httpError(err)
	}

	res, err := h.commentService.RemoveComment(c.Request().Context(), middleware.CurrentUserID(c), postID, commentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetCommentLikes lists the likes of a comment
func (h *CommentHandler) GetCommentLikes(c echo.Context) error {
	var p models.CommentPathParams
	if err := bindAndValidate(c, &p); err != nil {
		return err
	}
	commentID, err := models.ParseObjectID("commentId", p.CommentID)
	if err != nil {
		return httpError(err)
	}

	likes, err := h.likeService.CommentLikes(c.Request().Context(), commentID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, likes)
}

// LikeComment upserts the caller's like on a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	var req models.CreateCommentLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.likeService.LikeComment(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// UnlikeComment removes the caller's like on a comment
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	var req models.DeleteCommentLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.likeService.UnlikeComment(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}
