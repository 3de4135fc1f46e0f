package repositories

import (
	"context"
	"time"

	"github.com/anonto42/devfeed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeRepository defines the interface for post like data operations
type LikeRepository interface {
	UpsertLike(ctx context.Context, postID, userID primitive.ObjectID) (primitive.ObjectID, bool, error)
	DeleteLike(ctx context.Context, postID, likeID, userID primitive.ObjectID) (int64, error)
	GetLikesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.PostLike, error)
	DeleteLikesByPostID(ctx context.Context, postID primitive.ObjectID) error
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection(PostLikesCollection)}
}

// UpsertLike records that userID likes postID. It returns the new like id and
// true, or false when the user had already liked the post.
func (r *MongoLikeRepository) UpsertLike(ctx context.Context, postID, userID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	filter := bson.M{"user_id": userID, "target_id": postID}
	return upsertOnce(ctx, r.collection, filter, bson.M{
		"user_id":    userID,
		"target_id":  postID,
		"created_at": time.Now().UTC(),
	})
}

// DeleteLike removes the user's like by composite key
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, postID, likeID, userID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": likeID, "target_id": postID, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// GetLikesByPostID lists the likes on a post
func (r *MongoLikeRepository) GetLikesByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.PostLike, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findAll[models.PostLike](ctx, r.collection, bson.M{"target_id": postID}, opts)
}

// DeleteLikesByPostID removes every like of a post
func (r *MongoLikeRepository) DeleteLikesByPostID(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"target_id": postID})
	return err
}

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	UpsertCommentLike(ctx context.Context, postID, commentID, userID primitive.ObjectID) (primitive.ObjectID, bool, error)
	DeleteCommentLike(ctx context.Context, postID, commentID, likeID, userID primitive.ObjectID) (int64, error)
	GetLikesByCommentID(ctx context.Context, commentID primitive.ObjectID) ([]models.CommentLike, error)
	DeleteLikesByCommentID(ctx context.Context, commentID primitive.ObjectID) error
	DeleteLikesByPostID(ctx context.Context, postID primitive.ObjectID) error
}

// MongoCommentLikeRepository implements CommentLikeRepository for MongoDB
type MongoCommentLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentLikeRepository creates a new MongoCommentLikeRepository
func NewMongoCommentLikeRepository(db *mongo.Database) *MongoCommentLikeRepository {
	return &MongoCommentLikeRepository{collection: db.Collection(CommentLikesCollection)}
}

func (r *MongoCommentLikeRepository) UpsertCommentLike(ctx context.Context, postID, commentID, userID primitive.ObjectID) (primitive.ObjectID, bool, error) {
	filter := bson.M{"user_id": userID, "target_id": commentID}
	return upsertOnce(ctx, r.collection, filter, bson.M{
		"user_id":    userID,
		"target_id":  commentID,
		"post_id":    postID,
		"created_at": time.Now().UTC(),
	})
}

func (r *MongoCommentLikeRepository) DeleteCommentLike(ctx context.Context, postID, commentID, likeID, userID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":       likeID,
		"post_id":   postID,
		"target_id": commentID,
		"user_id":   userID,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoCommentLikeRepository) GetLikesByCommentID(ctx context.Context, commentID primitive.ObjectID) ([]models.CommentLike, error) {
	return findAll[models.CommentLike](ctx, r.collection, bson.M{"target_id": commentID})
}

func (r *MongoCommentLikeRepository) DeleteLikesByCommentID(ctx context.Context, commentID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"target_id": commentID})
	return err
}

func (r *MongoCommentLikeRepository) DeleteLikesByPostID(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"post_id": postID})
	return err
}
