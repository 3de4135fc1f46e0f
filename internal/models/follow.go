package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow represents a follow edge from FollowerID to FolloweeID
type Follow struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FollowerID primitive.ObjectID `json:"follower_id" bson:"follower_id"`
	FolloweeID primitive.ObjectID `json:"followee_id" bson:"followee_id"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// FollowRequest binds /users/:userId/follow
type FollowRequest struct {
	UserID string `param:"userId" json:"-" validate:"required,objectid"`
}
