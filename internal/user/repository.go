package user

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository is the data-access contract for user documents. Lookups
// return (nil, nil) when no document matches.
type Repository interface {
	Insert(ctx context.Context, u *User) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)

	// UpdateFields applies a $set-style patch and reports how many
	// documents matched and were actually modified.
	UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (matched, modified int64, err error)

	// Delete removes the user row and reports how many were deleted.
	Delete(ctx context.Context, username string) (int64, error)
}
