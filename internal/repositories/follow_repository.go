package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) (primitive.ObjectID, bool, error)
	DeleteFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) (int64, error)
	GetFolloweeIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection(FollowsCollection)}
}

func (r *MongoFollowRepository) CreateFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	filter := bson.M{"follower_id": followerID, "followee_id": followeeID}
	return upsertOnce(ctx, r.collection, filter, bson.M{
		"follower_id": followerID,
		"followee_id": followeeID,
		"created_at":  time.Now().UTC(),
	})
}

func (r *MongoFollowRepository) DeleteFollow(ctx context.Context, followerID, followeeID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"follower_id": followerID, "followee_id": followeeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// GetFolloweeIDs returns the ids followerID follows, in no particular order
func (r *MongoFollowRepository) GetFolloweeIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"followee_id": 1, "_id": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"follower_id": followerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var edges []struct {
		FolloweeID primitive.ObjectID `bson:"followee_id"`
	}
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.FolloweeID)
	}
	return ids, nil
}
