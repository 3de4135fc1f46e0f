package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the social database
const (
	UsersCollection        = "users"
	PostsCollection        = "posts"
	CommentsCollection     = "comments"
	PostLikesCollection    = "post_likes"
	CommentLikesCollection = "comment_likes"
	ImagesCollection       = "images"
	FollowsCollection      = "follows"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// (user_id, target_id) and (follower_id, followee_id) indexes make the like
// and follow upserts converge to a single document under concurrent requests.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "firebase_uid", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		PostsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		CommentsCollection: {
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		PostLikesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "target_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "target_id", Value: 1}}},
		},
		CommentLikesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "target_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "post_id", Value: 1}}},
		},
		ImagesCollection: {
			{Keys: bson.D{{Key: "target_id", Value: 1}}},
		},
		FollowsCollection: {
			{Keys: bson.D{{Key: "follower_id", Value: 1}, {Key: "followee_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
