package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
)

// MongoRepository stores user documents in the users collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Insert(ctx context.Context, u *User) (bson.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return bson.ObjectID{}, errs.Wrap(err, "create a user")
	}
	id, _ := result.InsertedID.(bson.ObjectID)
	return id, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "get a single user")
	}
	return &u, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.Wrap(err, "get a list of all users")
	}

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errs.Wrap(err, "get a list of all users")
	}
	return users, nil
}

func (r *MongoRepository) UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (int64, int64, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, errs.Wrap(err, "update a user's information")
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

func (r *MongoRepository) Delete(ctx context.Context, username string) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return 0, errs.Wrap(err, "delete a user")
	}
	return result.DeletedCount, nil
}
