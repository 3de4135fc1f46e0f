package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Image is a picture attached to a post
type Image struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TargetID primitive.ObjectID `json:"target_id" bson:"target_id"`
	URL      string             `json:"url" bson:"url"`
}
