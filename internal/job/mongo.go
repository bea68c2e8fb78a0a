package job

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
)

// MongoRepository stores job documents in the jobs collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Insert(ctx context.Context, j *Job) (bson.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, j)
	if err != nil {
		return bson.ObjectID{}, errs.Wrap(err, "create a job")
	}
	id, _ := result.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*Job, error) {
	var j Job
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "get a single job")
	}
	return &j, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]Job, error) {
	return r.find(ctx, bson.M{}, "get all jobs")
}

func (r *MongoRepository) FindByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Job, error) {
	return r.find(ctx, bson.M{"authorId": authorID}, "get all jobs from a user")
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, action string) ([]Job, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, action)
	}

	var jobs []Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, errs.Wrap(err, action)
	}
	return jobs, nil
}

func (r *MongoRepository) UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (int64, int64, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, errs.Wrap(err, "update a job's details")
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errs.Wrap(err, "delete a job")
	}
	return result.DeletedCount, nil
}
