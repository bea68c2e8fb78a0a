package comment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
	"github.com/jeffandersoncharriot/ByteBoard/internal/store"
)

// fieldTable says who may touch each comment field through an update
// patch. Only the content is user-editable.
var fieldTable = map[string]store.FieldPolicy{
	"_id":         store.EditNever,
	"postId":      store.EditNever,
	"authorId":    store.EditNever,
	"dateCreated": store.EditNever,
	"dateEdited":  store.EditNever,
	"content":     store.EditUser,
	"score":       store.EditSystem,
	"userVotes":   store.EditSystem,
}

// AuthorDirectory verifies comment authors exist. Implemented by the user
// store.
type AuthorDirectory interface {
	Exists(ctx context.Context, id bson.ObjectID) error
}

// PostLedger is the comment store's window onto posts: existence checks
// and maintenance of the parent's ordered comment id list. Implemented by
// the post store.
type PostLedger interface {
	Exists(ctx context.Context, postID bson.ObjectID) error
	CommentIDs(ctx context.Context, postID bson.ObjectID) ([]bson.ObjectID, error)
	AppendComment(ctx context.Context, postID, commentID bson.ObjectID) error
	RemoveComment(ctx context.Context, postID, commentID bson.ObjectID) error
}

// Store enforces comment invariants on top of a Repository.
type Store struct {
	repo  Repository
	users AuthorDirectory
	posts PostLedger
}

func NewStore(repo Repository, users AuthorDirectory, posts PostLedger) *Store {
	return &Store{repo: repo, users: users, posts: posts}
}

// Create persists a comment under an existing post and appends its id to
// the parent's comment list. The two writes are sequential, not atomic.
func (s *Store) Create(ctx context.Context, content string, postID, authorID bson.ObjectID) (*Comment, error) {
	if err := s.users.Exists(ctx, authorID); err != nil {
		return nil, err
	}
	if err := s.posts.Exists(ctx, postID); err != nil {
		return nil, err
	}

	c := New(content, postID, authorID)
	id, err := s.repo.Insert(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	if err := s.posts.AppendComment(ctx, postID, id); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Store) Get(ctx context.Context, id bson.ObjectID) (*Comment, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errs.InvalidInput("The requested comment doesn't exist")
	}
	return c, nil
}

// AllForPost resolves the parent's comment id list in order. Dangling ids
// are logged and skipped rather than failing the whole listing.
func (s *Store) AllForPost(ctx context.Context, postID bson.ObjectID) ([]Comment, error) {
	ids, err := s.posts.CommentIDs(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments := make([]Comment, 0, len(ids))
	for _, id := range ids {
		c, err := s.Get(ctx, id)
		if err != nil {
			logger.Error("skipping unresolvable comment", map[string]any{
				"commentId": id.Hex(),
				"error":     err.Error(),
			})
			continue
		}
		comments = append(comments, *c)
	}
	return comments, nil
}

// AllByAuthor returns the user's comments, possibly none. The user must
// exist.
func (s *Store) AllByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Comment, error) {
	if err := s.users.Exists(ctx, authorID); err != nil {
		return nil, err
	}
	return s.repo.FindByAuthor(ctx, authorID)
}

// Update applies the permitted subset of patch; user edits stamp
// dateEdited. Mirrors the post update mechanics.
func (s *Store) Update(ctx context.Context, id bson.ObjectID, patch map[string]any, userEditing bool) (*Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := store.ApplyPatch(fieldTable, patch, userEditing)
	if userEditing {
		set["dateEdited"] = time.Now()
	}
	if len(set) == 0 {
		return nil, errs.InvalidInput("No comment fields to update")
	}

	matched, modified, err := s.repo.UpdateFields(ctx, c.ID, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 || modified == 0 {
		return nil, errs.InvalidInput("No post comments were updated")
	}

	return s.Get(ctx, id)
}

// Vote toggles a user's vote on a comment with the same semantics as post
// votes, except reputation is a post-only concept and stays untouched.
func (s *Store) Vote(ctx context.Context, commentID, voterID bson.ObjectID, vote int) error {
	c, err := s.Get(ctx, commentID)
	if err != nil {
		return err
	}

	if c.UserVotes == nil {
		c.UserVotes = map[string]int{}
	}

	prior, voteExists := c.UserVotes[voterID.Hex()]

	if vote != 1 && vote != -1 && !voteExists {
		return errs.InvalidInput("Vote invalid")
	}

	if voteExists {
		delete(c.UserVotes, voterID.Hex())
		c.Score -= prior
	} else {
		c.UserVotes[voterID.Hex()] = vote
		c.Score += vote
	}

	_, err = s.Update(ctx, commentID, map[string]any{"score": c.Score, "userVotes": c.UserVotes}, false)
	return err
}

// Delete removes the comment and takes its id out of the parent post's
// comment list.
func (s *Store) Delete(ctx context.Context, id bson.ObjectID) (*Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, errs.InvalidInput("No post comments were deleted")
	}

	// An already-deleted parent just means the comment was orphaned.
	if err := s.posts.RemoveComment(ctx, c.PostID, c.ID); err != nil {
		if !errs.IsInvalidInput(err) {
			return nil, err
		}
		logger.Error("parent post gone, skipping comment list cleanup", map[string]any{
			"postId":    c.PostID.Hex(),
			"commentId": c.ID.Hex(),
		})
	}

	return c, nil
}

// DeleteAllByAuthor removes every comment the user authored. Runs before
// the post cascade during account deletion so parent lists still exist to
// be cleaned up.
func (s *Store) DeleteAllByAuthor(ctx context.Context, authorID bson.ObjectID) error {
	comments, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return err
	}
	for _, c := range comments {
		if _, err := s.Delete(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}
