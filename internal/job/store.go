package job

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/store"
)

var fieldTable = map[string]store.FieldPolicy{
	"_id":            store.EditNever,
	"authorId":       store.EditNever,
	"dateCreated":    store.EditNever,
	"dateEdited":     store.EditNever,
	"jobTitle":       store.EditUser,
	"jobDescription": store.EditUser,
	"jobPay":         store.EditUser,
	"closed":         store.EditUser,
}

// AuthorDirectory verifies job authors exist. Implemented by the user
// store.
type AuthorDirectory interface {
	Exists(ctx context.Context, id bson.ObjectID) error
}

// Store enforces job invariants on top of a Repository. Jobs have no
// votes; mutation rights are the usual owner-or-admin rule, enforced by
// the HTTP layer.
type Store struct {
	repo  Repository
	users AuthorDirectory
}

func NewStore(repo Repository, users AuthorDirectory) *Store {
	return &Store{repo: repo, users: users}
}

func (s *Store) Create(ctx context.Context, title, description string, pay float64, authorID bson.ObjectID) (*Job, error) {
	if err := s.users.Exists(ctx, authorID); err != nil {
		return nil, err
	}

	j := New(title, description, pay, authorID)
	id, err := s.repo.Insert(ctx, j)
	if err != nil {
		return nil, err
	}
	j.ID = id

	return j, nil
}

func (s *Store) Get(ctx context.Context, id bson.ObjectID) (*Job, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, errs.InvalidInput("The requested job doesn't exist")
	}
	return j, nil
}

func (s *Store) All(ctx context.Context) ([]Job, error) {
	jobs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, errs.Database("Couldn't get all jobs")
	}
	return jobs, nil
}

func (s *Store) AllByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Job, error) {
	if err := s.users.Exists(ctx, authorID); err != nil {
		return nil, err
	}
	return s.repo.FindByAuthor(ctx, authorID)
}

// Update applies the permitted subset of patch with the same whitelist
// mechanics as posts.
func (s *Store) Update(ctx context.Context, id bson.ObjectID, patch map[string]any, userEditing bool) (*Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := store.ApplyPatch(fieldTable, patch, userEditing)
	if userEditing {
		set["dateEdited"] = time.Now()
	}
	if len(set) == 0 {
		return nil, errs.InvalidInput("No job fields to update")
	}

	matched, modified, err := s.repo.UpdateFields(ctx, j.ID, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 || modified == 0 {
		return nil, errs.InvalidInput("No jobs were updated")
	}

	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id bson.ObjectID) (*Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, errs.InvalidInput("No jobs were deleted")
	}

	return j, nil
}
