package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// upsertOnce inserts fields unless a document matching filter exists.
// created is false when the document was already there, including when a
// concurrent upsert won the race on the unique index.
func upsertOnce(ctx context.Context, coll *mongo.Collection, filter, fields bson.M) (id primitive.ObjectID, created bool, err error) {
	res, err := coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": fields}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, false, nil
		}
		return primitive.NilObjectID, false, err
	}
	if res.UpsertedID == nil {
		return primitive.NilObjectID, false, nil
	}
	id, _ = res.UpsertedID.(primitive.ObjectID)
	return id, true, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
