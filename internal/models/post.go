package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RandomSampleSize is the number of posts drawn for the discovery feed.
const RandomSampleSize = 20

// Post represents a post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"-" bson:"user_id,omitempty"` // author; only the joined user is exposed
	Author    *UserCompact       `json:"user,omitempty" bson:"user,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Link      *PostLink          `json:"link,omitempty" bson:"link,omitempty"`
	Tags      []string           `json:"tags" bson:"tags"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PostLink is the preview metadata of an external link attached to a post
type PostLink struct {
	URL         string `json:"url" bson:"url" validate:"required,url"`
	Title       string `json:"title,omitempty" bson:"title,omitempty" validate:"max=200"`
	Description string `json:"description,omitempty" bson:"description,omitempty" validate:"max=500"`
	Image       string `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,url"`
}

// EnrichedPost is a post merged with its comments, likes and images
type EnrichedPost struct {
	Post
	Comments []Comment  `json:"comments"`
	Likes    []PostLike `json:"likes"`
	Images   []Image    `json:"images"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	UserID  string    `json:"userID" validate:"required,objectid"`
	Title   string    `json:"title" validate:"required,min=1,max=100"`
	Content string    `json:"content" validate:"required,min=1"`
	Link    *PostLink `json:"link,omitempty" validate:"omitempty"`
	Tags    []string  `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
	Images  []string  `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

// PostIDParam binds the :postId path segment
type PostIDParam struct {
	PostID string `param:"postId" json:"-" validate:"required,objectid"`
}

// TimelineQuery binds the query of GET /posts
type TimelineQuery struct {
	Type   string `query:"type" json:"-" validate:"omitempty,oneof=random"`
	UserID string `query:"user_id" json:"-" validate:"omitempty,objectid"`
	Offset int64  `query:"offset" json:"-" validate:"min=0"`
	Limit  int64  `query:"limit" json:"-" validate:"min=0,max=100"`
}

// UserPostsQuery binds GET /users/:userId/posts
type UserPostsQuery struct {
	UserID string `param:"userId" json:"-" validate:"required,objectid"`
	Offset int64  `query:"offset" json:"-" validate:"min=0"`
	Limit  int64  `query:"limit" json:"-" validate:"min=0,max=100"`
}

// Page is an offset/limit window over a newest-first listing. A zero Limit means unbounded.
type Page struct {
	Offset int64
	Limit  int64
}
