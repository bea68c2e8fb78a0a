package post

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository is the data-access contract for post documents. Lookups
// return (nil, nil) when no document matches.
type Repository interface {
	Insert(ctx context.Context, p *Post) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*Post, error)
	FindAll(ctx context.Context) ([]Post, error)
	FindByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Post, error)
	UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (matched, modified int64, err error)
	Delete(ctx context.Context, id bson.ObjectID) (int64, error)
}

// TopicRepository is the data-access contract for topic documents.
type TopicRepository interface {
	Insert(ctx context.Context, t *Topic) (bson.ObjectID, error)
	FindByName(ctx context.Context, name string) (*Topic, error)
	FindAll(ctx context.Context) ([]Topic, error)
}
