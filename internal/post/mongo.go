package post

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
)

// MongoRepository stores post documents in the posts collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Insert(ctx context.Context, p *Post) (bson.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return bson.ObjectID{}, errs.Wrap(err, "create a post")
	}
	id, _ := result.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*Post, error) {
	var p Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "get a single post")
	}
	return &p, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]Post, error) {
	return r.find(ctx, bson.M{}, "get all posts")
}

func (r *MongoRepository) FindByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Post, error) {
	return r.find(ctx, bson.M{"authorId": authorID}, "get all posts from a user")
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, action string) ([]Post, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, action)
	}

	var posts []Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errs.Wrap(err, action)
	}
	return posts, nil
}

func (r *MongoRepository) UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (int64, int64, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, errs.Wrap(err, "update a post's details")
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errs.Wrap(err, "delete a post")
	}
	return result.DeletedCount, nil
}

// MongoTopicRepository stores topic documents in the topics collection.
type MongoTopicRepository struct {
	coll *mongo.Collection
}

func NewMongoTopicRepository(coll *mongo.Collection) *MongoTopicRepository {
	return &MongoTopicRepository{coll: coll}
}

func (r *MongoTopicRepository) Insert(ctx context.Context, t *Topic) (bson.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return bson.ObjectID{}, errs.Wrap(err, "create a topic")
	}
	id, _ := result.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *MongoTopicRepository) FindByName(ctx context.Context, name string) (*Topic, error) {
	var t Topic
	err := r.coll.FindOne(ctx, bson.M{"topicName": name}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "search for a post topic")
	}
	return &t, nil
}

func (r *MongoTopicRepository) FindAll(ctx context.Context) ([]Topic, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.Wrap(err, "get all post topics")
	}

	var topics []Topic
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, errs.Wrap(err, "get all post topics")
	}
	return topics, nil
}
