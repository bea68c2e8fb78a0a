package job

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository is the data-access contract for job documents. Lookups
// return (nil, nil) when no document matches.
type Repository interface {
	Insert(ctx context.Context, j *Job) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*Job, error)
	FindAll(ctx context.Context) ([]Job, error)
	FindByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Job, error)
	UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (matched, modified int64, err error)
	Delete(ctx context.Context, id bson.ObjectID) (int64, error)
}
