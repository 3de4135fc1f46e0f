package services

import (
	"context"
	"fmt"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeService upserts and removes likes on posts and comments. Creating a
// like that exists, or removing one that does not, answers Overlap instead
// of failing.
type LikeService struct {
	likes        repositories.LikeRepository
	commentLikes repositories.CommentLikeRepository
	comments     repositories.CommentRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(
	likes repositories.LikeRepository,
	commentLikes repositories.CommentLikeRepository,
	comments repositories.CommentRepository,
) *LikeService {
	return &LikeService{likes: likes, commentLikes: commentLikes, comments: comments}
}

// LikePost records req.UserID's like on req.PostID. The body user must be the session user.
func (s *LikeService) LikePost(ctx context.Context, actorID string, req models.CreatePostLikeRequest) (models.MutationResult, error) {
	userID, err := authorize(actorID, req.UserID)
	if err != nil {
		return models.MutationResult{}, err
	}
	postID, err := models.ParseObjectID("postId", req.PostID)
	if err != nil {
		return models.MutationResult{}, err
	}

	id, created, err := s.likes.UpsertLike(ctx, postID, userID)
	if err != nil {
		return models.MutationResult{}, err
	}
	if !created {
		return models.Result(false), nil
	}
	return models.Succeeded(id), nil
}

// UnlikePost removes the session user's like
func (s *LikeService) UnlikePost(ctx context.Context, actorID string, req models.DeletePostLikeRequest) (models.MutationResult, error) {
	userID, err := models.ParseObjectID("session user", actorID)
	if err != nil {
		return models.MutationResult{}, err
	}
	postID, err := models.ParseObjectID("postId", req.PostID)
	if err != nil {
		return models.MutationResult{}, err
	}
	likeID, err := models.ParseObjectID("likeId", req.LikeID)
	if err != nil {
		return models.MutationResult{}, err
	}

	n, err := s.likes.DeleteLike(ctx, postID, likeID, userID)
	if err != nil {
		return models.MutationResult{}, err
	}
	return models.Result(n > 0), nil
}

// LikeComment records req.UserID's like on a comment of req.PostID. An unknown
// comment, or one posted under another post, is models.ErrNotFound.
func (s *LikeService) LikeComment(ctx context.Context, actorID string, req models.CreateCommentLikeRequest) (models.MutationResult, error) {
	userID, err := authorize(actorID, req.UserID)
	if err != nil {
		return models.MutationResult{}, err
	}
	postID, err := models.ParseObjectID("postId", req.PostID)
	if err != nil {
		return models.MutationResult{}, err
	}
	commentID, err := models.ParseObjectID("commentId", req.CommentID)
	if err != nil {
		return models.MutationResult{}, err
	}

	if _, err := s.comments.GetComment(ctx, postID, commentID); err != nil {
		return models.MutationResult{}, err
	}

	id, created, err := s.commentLikes.UpsertCommentLike(ctx, postID, commentID, userID)
	if err != nil {
		return models.MutationResult{}, err
	}
	if !created {
		return models.Result(false), nil
	}
	return models.Succeeded(id), nil
}

// UnlikeComment removes the session user's like on a comment
func (s *LikeService) UnlikeComment(ctx context.Context, actorID string, req models.DeleteCommentLikeRequest) (models.MutationResult, error) {
	userID, err := models.ParseObjectID("session user", actorID)
	if err != nil {
		return models.MutationResult{}, err
	}
	postID, err := models.ParseObjectID("postId", req.PostID)
	if err != nil {
		return models.MutationResult{}, err
	}
	commentID, err := models.ParseObjectID("commentId", req.CommentID)
	if err != nil {
		return models.MutationResult{}, err
	}
	likeID, err := models.ParseObjectID("likeId", req.LikeID)
	if err != nil {
		return models.MutationResult{}, err
	}

	n, err := s.commentLikes.DeleteCommentLike(ctx, postID, commentID, likeID, userID)
	if err != nil {
		return models.MutationResult{}, err
	}
	return models.Result(n > 0), nil
}

// CommentLikes lists the likes on a comment
func (s *LikeService) CommentLikes(ctx context.Context, commentID primitive.ObjectID) ([]models.CommentLike, error) {
	return s.commentLikes.GetLikesByCommentID(ctx, commentID)
}

// authorize checks the body-supplied user against the session identity
func authorize(actorID, bodyUserID string) (primitive.ObjectID, error) {
	if bodyUserID == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: userID is required", models.ErrInvalidInput)
	}
	if bodyUserID != actorID {
		return primitive.NilObjectID, fmt.Errorf("act as %s: %w", bodyUserID, models.ErrPermissionDenied)
	}
	return models.ParseObjectID("userID", bodyUserID)
}
