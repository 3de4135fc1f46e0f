package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/devfeed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	SampleRandomPosts(ctx context.Context, size int) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, page models.Page) ([]models.Post, error)
	CountPostsByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(PostsCollection)}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// DeletePost deletes a post by ID and reports how many documents were removed
func (r *MongoPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// GetPostByID retrieves a post joined with its author
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipeline = append(pipeline, authorStages()...)

	posts, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("post %s: %w", id.Hex(), models.ErrNotFound)
	}
	return &posts[0], nil
}

// SampleRandomPosts draws a uniform sample of at most size posts, newest first
func (r *MongoPostRepository) SampleRandomPosts(ctx context.Context, size int) ([]models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": size}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	pipeline = append(pipeline, authorStages()...)
	return r.aggregate(ctx, pipeline)
}

// GetPostsByAuthors lists posts written by any of authorIDs, newest first
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, page models.Page) ([]models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": bson.M{"$in": authorIDs}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	if page.Offset > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: page.Offset}})
	}
	if page.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: page.Limit}})
	}
	pipeline = append(pipeline, authorStages()...)
	return r.aggregate(ctx, pipeline)
}

// CountPostsByUserID counts the posts written by a user
func (r *MongoPostRepository) CountPostsByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *MongoPostRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Post, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// authorStages joins the minimal author projection and drops the raw author id.
// Posts whose author no longer exists are dropped by the unwind.
func authorStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         UsersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"user._id":           1,
			"user.username":      1,
			"user.profile_image": 1,
			"title":              1,
			"content":            1,
			"link":               1,
			"tags":               1,
			"created_at":         1,
			"updated_at":         1,
		}}},
	}
}
