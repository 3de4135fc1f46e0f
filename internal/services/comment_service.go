package services

import (
	"context"

	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService creates and removes comments
type CommentService struct {
	posts        repositories.PostRepository
	comments     repositories.CommentRepository
	commentLikes repositories.CommentLikeRepository
	log          logrus.FieldLogger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	commentLikes repositories.CommentLikeRepository,
	log logrus.FieldLogger,
) *CommentService {
	return &CommentService{
		posts:        posts,
		comments:     comments,
		commentLikes: commentLikes,
		log:          log.WithField("service", "comment"),
	}
}

// CreateComment attaches a comment by actorID to an existing post
func (s *CommentService) CreateComment(ctx context.Context, actorID string, req models.CreateCommentRequest) (*models.Comment, error) {
	userID, err := authorize(actorID, req.UserID)
	if err != nil {
		return nil, err
	}
	postID, err := models.ParseObjectID("postId", req.PostID)
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: req.Content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Comments lists a post's comments, oldest first
func (s *CommentService) Comments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return s.comments.GetCommentsByPostID(ctx, postID)
}

// RemoveComment deletes actorID's comment and its likes. It reports Overlap
// when no such comment exists.
func (s *CommentService) RemoveComment(ctx context.Context, actorID string, postID, commentID primitive.ObjectID) (models.MutationResult, error) {
	userID, err := models.ParseObjectID("session user", actorID)
	if err != nil {
		return models.MutationResult{}, err
	}
	n, err := s.comments.DeleteComment(ctx, postID, commentID, userID)
	if err != nil {
		return models.MutationResult{}, err
	}
	if n == 0 {
		return models.Result(false), nil
	}
	if err := s.commentLikes.DeleteLikesByCommentID(ctx, commentID); err != nil {
		s.log.WithError(err).WithField("comment_id", commentID.Hex()).Warn("comment removed but its likes were not")
	}
	return models.Result(true), nil
}
