package comment

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
)

// MongoRepository stores comment documents in the comments collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Insert(ctx context.Context, c *Comment) (bson.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return bson.ObjectID{}, errs.Wrap(err, "create a post comment")
	}
	id, _ := result.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*Comment, error) {
	var c Comment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "get a single post comment")
	}
	return &c, nil
}

func (r *MongoRepository) FindByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Comment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return nil, errs.Wrap(err, "get all comments from a user")
	}

	var comments []Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, errs.Wrap(err, "get all comments from a user")
	}
	return comments, nil
}

func (r *MongoRepository) UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (int64, int64, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, errs.Wrap(err, "update a post comment")
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errs.Wrap(err, "delete a post comment")
	}
	return result.DeletedCount, nil
}
