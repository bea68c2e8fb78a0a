package user

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
	"github.com/jeffandersoncharriot/ByteBoard/internal/store"
)

// fieldTable says who may touch each user field through an update patch.
// Reputation, verified and admin are system-only so a self edit can never
// boost them.
var fieldTable = map[string]store.FieldPolicy{
	"_id":            store.EditNever,
	"username":       store.EditUser,
	"email":          store.EditUser,
	"password":       store.EditUser,
	"displayName":    store.EditUser,
	"description":    store.EditUser,
	"profilePicture": store.EditUser,
	"reputation":     store.EditSystem,
	"verified":       store.EditSystem,
	"admin":          store.EditSystem,
}

// AuthorContentRemover deletes every entity a user authored, applying that
// entity's own cascade rules. Implemented by the post and comment stores.
type AuthorContentRemover interface {
	DeleteAllByAuthor(ctx context.Context, authorID bson.ObjectID) error
}

// Store enforces account invariants on top of a Repository.
type Store struct {
	repo     Repository
	comments AuthorContentRemover
	posts    AuthorContentRemover
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// SetCascades wires the dependent-content stores used by Delete. Called
// once at startup, after all stores exist.
func (s *Store) SetCascades(comments, posts AuthorContentRemover) {
	s.comments = comments
	s.posts = posts
}

// Register validates the credentials, checks username/email uniqueness,
// hashes the password and persists a new account with defaults.
func (s *Store) Register(ctx context.Context, username, email, password string) (*User, error) {
	if err := validateCredentials(username, email, password); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, errs.Wrap(err, "create a user")
	}

	u := New(username, email, hash)
	id, err := s.repo.Insert(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	return u, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.InvalidInput("The requested user doesn't exist (%s)", username)
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id bson.ObjectID) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.InvalidInput("The requested user doesn't exist (ID: %s)", id.Hex())
	}
	return u, nil
}

// Exists reports whether the account is present; used by the content
// stores to verify authors.
func (s *Store) Exists(ctx context.Context, id bson.ObjectID) error {
	_, err := s.GetByID(ctx, id)
	return err
}

// All returns every account. An empty user base is treated as a store
// failure, deliberately.
func (s *Store) All(ctx context.Context) ([]User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errs.Database("There are no existing ByteBoard users")
	}
	return users, nil
}

// Update applies the permitted subset of patch to the named user. Username
// and email changes re-check uniqueness, password changes re-validate and
// re-hash. Fails with InvalidInput when nothing survives the field table
// or nothing was actually modified.
func (s *Store) Update(ctx context.Context, username string, patch map[string]any, selfEdit bool) (*User, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	set := store.ApplyPatch(fieldTable, patch, selfEdit)

	if v, ok := set["username"]; ok {
		newName, _ := v.(string)
		if err := ValidateUsername(newName); err != nil {
			return nil, err
		}
		if err := s.ensureUsernameFree(ctx, newName); err != nil {
			return nil, err
		}
	}
	if v, ok := set["email"]; ok {
		newEmail, _ := v.(string)
		if err := ValidateEmail(newEmail); err != nil {
			return nil, err
		}
		if err := s.ensureEmailFree(ctx, newEmail); err != nil {
			return nil, err
		}
	}
	if v, ok := set["password"]; ok {
		newPassword, _ := v.(string)
		if err := ValidatePassword(newPassword); err != nil {
			return nil, err
		}
		hash, err := HashPassword(newPassword)
		if err != nil {
			return nil, errs.Wrap(err, "update a user's information")
		}
		set["password"] = hash
	}

	if len(set) == 0 {
		return nil, errs.InvalidInput("Could not update %s's information", username)
	}

	matched, modified, err := s.repo.UpdateFields(ctx, u.ID, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 || modified == 0 {
		return nil, errs.InvalidInput("Could not update %s's information", username)
	}

	return s.GetByID(ctx, u.ID)
}

// AdjustReputation shifts a user's reputation by delta. Invoked only by
// post vote side-effects, as a system edit.
func (s *Store) AdjustReputation(ctx context.Context, id bson.ObjectID, delta int) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.Update(ctx, u.Username, map[string]any{"reputation": u.Reputation + delta}, false)
	return err
}

// Delete removes an account and everything it authored. Dependents go
// first (comments, then posts, each through its own cascade rules) so a
// partial failure never leaves content without a surviving owner row.
func (s *Store) Delete(ctx context.Context, username string) (*User, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.comments.DeleteAllByAuthor(ctx, u.ID); err != nil {
		return nil, err
	}
	if err := s.posts.DeleteAllByAuthor(ctx, u.ID); err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, username)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, errs.InvalidInput("Could not delete %s", username)
	}

	return u, nil
}

// CheckCredentials reports whether the username exists and the password
// matches. Any failure counts as bad credentials.
func (s *Store) CheckCredentials(ctx context.Context, username, password string) bool {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil || u == nil {
		return false
	}
	if err := VerifyPassword(u.Password, password); err != nil {
		logger.Error("password mismatch", map[string]any{"username": username})
		return false
	}
	return true
}

func (s *Store) ensureUsernameFree(ctx context.Context, username string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errs.InvalidInput("A user with the given username already exists")
	}
	return nil
}

func (s *Store) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errs.InvalidInput("A user with the given email already exists")
	}
	return nil
}
