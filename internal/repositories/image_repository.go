package repositories

import (
	"context"

	"github.com/anonto42/devfeed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ImageRepository defines the interface for post image operations
type ImageRepository interface {
	InsertImages(ctx context.Context, postID primitive.ObjectID, urls []string) ([]models.Image, error)
	GetImagesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Image, error)
	DeleteImagesByPostID(ctx context.Context, postID primitive.ObjectID) error
}

// MongoImageRepository implements ImageRepository for MongoDB
type MongoImageRepository struct {
	collection *mongo.Collection
}

// NewMongoImageRepository creates a new MongoImageRepository
func NewMongoImageRepository(db *mongo.Database) *MongoImageRepository {
	return &MongoImageRepository{collection: db.Collection(ImagesCollection)}
}

// InsertImages batch-inserts one image per url, preserving order
func (r *MongoImageRepository) InsertImages(ctx context.Context, postID primitive.ObjectID, urls []string) ([]models.Image, error) {
	images := make([]models.Image, len(urls))
	docs := make([]interface{}, len(urls))
	for i, u := range urls {
		images[i] = models.Image{ID: primitive.NewObjectID(), TargetID: postID, URL: u}
		docs[i] = images[i]
	}
	if len(docs) == 0 {
		return images, nil
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *MongoImageRepository) GetImagesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Image, error) {
	return findAll[models.Image](ctx, r.collection, bson.M{"target_id": postID})
}

func (r *MongoImageRepository) DeleteImagesByPostID(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"target_id": postID})
	return err
}
