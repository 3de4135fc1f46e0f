package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PostID    primitive.ObjectID `json:"post_id" bson:"post_id"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID  string `param:"postId" json:"-" validate:"required,objectid"`
	UserID  string `json:"userID" validate:"required,objectid"`
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CommentPathParams binds /posts/:postId/comments/:commentId
type CommentPathParams struct {
	PostID    string `param:"postId" json:"-" validate:"required,objectid"`
	CommentID string `param:"commentId" json:"-" validate:"required,objectid"`
}
