package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostLike represents a like on a post. At most one exists per (user, post).
type PostLike struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TargetID  primitive.ObjectID `json:"target_id" bson:"target_id"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CommentLike represents a like on a comment. At most one exists per (user, comment).
type CommentLike struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PostID    primitive.ObjectID `json:"post_id" bson:"post_id"`
	TargetID  primitive.ObjectID `json:"target_id" bson:"target_id"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreatePostLikeRequest defines the request for POST /posts/:postId/likes
type CreatePostLikeRequest struct {
	PostID string `param:"postId" json:"-" validate:"required,objectid"`
	UserID string `json:"userID" validate:"required,objectid"`
}

// DeletePostLikeRequest binds /posts/:postId/likes/:likeId
type DeletePostLikeRequest struct {
	PostID string `param:"postId" json:"-" validate:"required,objectid"`
	LikeID string `param:"likeId" json:"-" validate:"required,objectid"`
}

// CreateCommentLikeRequest defines the request for POST /posts/:postId/comments/:commentId/likes
type CreateCommentLikeRequest struct {
	PostID    string `param:"postId" json:"-" validate:"required,objectid"`
	CommentID string `param:"commentId" json:"-" validate:"required,objectid"`
	UserID    string `json:"userID" validate:"required,objectid"`
}

// DeleteCommentLikeRequest binds /posts/:postId/comments/:commentId/likes/:likeId
type DeleteCommentLikeRequest struct {
	PostID    string `param:"postId" json:"-" validate:"required,objectid"`
	CommentID string `param:"commentId" json:"-" validate:"required,objectid"`
	LikeID    string `param:"likeId" json:"-" validate:"required,objectid"`
}
