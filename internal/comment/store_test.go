package comment

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
)

// fakeRepo is an in-memory Repository for exercising the store logic
// without a live database.
type fakeRepo struct {
	comments []*Comment
}

func cloneComment(c *Comment) *Comment {
	cp := *c
	cp.UserVotes = make(map[string]int, len(c.UserVotes))
	for k, v := range c.UserVotes {
		cp.UserVotes[k] = v
	}
	return &cp
}

func (r *fakeRepo) Insert(_ context.Context, c *Comment) (bson.ObjectID, error) {
	cp := cloneComment(c)
	cp.ID = bson.NewObjectID()
	r.comments = append(r.comments, cp)
	return cp.ID, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id bson.ObjectID) (*Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			return cloneComment(c), nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindByAuthor(_ context.Context, authorID bson.ObjectID) ([]Comment, error) {
	var byAuthor []Comment
	for _, c := range r.comments {
		if c.AuthorID == authorID {
			byAuthor = append(byAuthor, *cloneComment(c))
		}
	}
	return byAuthor, nil
}

func (r *fakeRepo) UpdateFields(_ context.Context, id bson.ObjectID, set bson.M) (int64, int64, error) {
	for _, c := range r.comments {
		if c.ID != id {
			continue
		}
		for field, value := range set {
			switch field {
			case "content":
				if v, ok := value.(string); ok {
					c.Content = v
				}
			case "score":
				if v, ok := value.(int); ok {
					c.Score = v
				}
			case "userVotes":
				if v, ok := value.(map[string]int); ok {
					c.UserVotes = v
				}
			case "dateEdited":
				if v, ok := value.(time.Time); ok {
					c.DateEdited = &v
				}
			}
		}
		return 1, 1, nil
	}
	return 0, 0, nil
}

func (r *fakeRepo) Delete(_ context.Context, id bson.ObjectID) (int64, error) {
	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeUsers struct {
	known map[bson.ObjectID]bool
}

func (d *fakeUsers) add() bson.ObjectID {
	id := bson.NewObjectID()
	d.known[id] = true
	return id
}

func (d *fakeUsers) Exists(_ context.Context, id bson.ObjectID) error {
	if !d.known[id] {
		return errs.InvalidInput("The requested user doesn't exist (ID: %s)", id.Hex())
	}
	return nil
}

// fakeLedger stands in for the post store's comment bookkeeping.
type fakeLedger struct {
	lists map[bson.ObjectID][]bson.ObjectID
}

func (l *fakeLedger) add() bson.ObjectID {
	id := bson.NewObjectID()
	l.lists[id] = nil
	return id
}

func (l *fakeLedger) drop(postID bson.ObjectID) {
	delete(l.lists, postID)
}

func (l *fakeLedger) Exists(_ context.Context, postID bson.ObjectID) error {
	if _, ok := l.lists[postID]; !ok {
		return errs.InvalidInput("The requested post doesn't exist")
	}
	return nil
}

func (l *fakeLedger) CommentIDs(_ context.Context, postID bson.ObjectID) ([]bson.ObjectID, error) {
	ids, ok := l.lists[postID]
	if !ok {
		return nil, errs.InvalidInput("The requested post doesn't exist")
	}
	return append([]bson.ObjectID(nil), ids...), nil
}

func (l *fakeLedger) AppendComment(_ context.Context, postID, commentID bson.ObjectID) error {
	if _, ok := l.lists[postID]; !ok {
		return errs.InvalidInput("The requested post doesn't exist")
	}
	l.lists[postID] = append(l.lists[postID], commentID)
	return nil
}

func (l *fakeLedger) RemoveComment(_ context.Context, postID, commentID bson.ObjectID) error {
	ids, ok := l.lists[postID]
	if !ok {
		return errs.InvalidInput("The requested post doesn't exist")
	}
	kept := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id != commentID {
			kept = append(kept, id)
		}
	}
	l.lists[postID] = kept
	return nil
}

func newTestStore() (*Store, *fakeUsers, *fakeLedger) {
	users := &fakeUsers{known: map[bson.ObjectID]bool{}}
	ledger := &fakeLedger{lists: map[bson.ObjectID][]bson.ObjectID{}}
	return NewStore(&fakeRepo{}, users, ledger), users, ledger
}

func TestCreate_AppendsToParentList(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	postID := ledger.add()

	c, err := s.Create(ctx, "nice post", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID.IsZero() {
		t.Error("created comment has no id")
	}
	if c.PostID != postID {
		t.Errorf("PostID = %v, want %v", c.PostID, postID)
	}

	ids := ledger.lists[postID]
	if len(ids) != 1 || ids[0] != c.ID {
		t.Errorf("parent list = %v, want [%v]", ids, c.ID)
	}
}

func TestCreate_Rejections(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	postID := ledger.add()

	if _, err := s.Create(ctx, "c", postID, bson.NewObjectID()); !errs.IsInvalidInput(err) {
		t.Errorf("unknown author: got %v, want InvalidInput", err)
	}
	if _, err := s.Create(ctx, "c", bson.NewObjectID(), author); !errs.IsInvalidInput(err) {
		t.Errorf("unknown post: got %v, want InvalidInput", err)
	}
}

func TestAllForPost_ResolvesInOrderAndSkipsDangling(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	postID := ledger.add()

	first, err := s.Create(ctx, "first", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := s.Create(ctx, "second", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A dangling id on the parent list must not fail the whole listing.
	ledger.lists[postID] = append(ledger.lists[postID], bson.NewObjectID())

	got, err := s.AllForPost(ctx, postID)
	if err != nil {
		t.Fatalf("AllForPost: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("AllForPost returned %d comments, want 2", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Errorf("AllForPost order = [%v %v], want [%v %v]", got[0].ID, got[1].ID, first.ID, second.ID)
	}
}

func TestVote_ToggleNeverTouchesReputation(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	voter := users.add()
	postID := ledger.add()

	c, err := s.Create(ctx, "c", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Vote(ctx, c.ID, voter, -1); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	got, _ := s.Get(ctx, c.ID)
	if got.Score != -1 {
		t.Errorf("score = %d, want -1", got.Score)
	}
	if got.UserVotes[voter.Hex()] != -1 {
		t.Errorf("vote ledger = %v", got.UserVotes)
	}

	if err := s.Vote(ctx, c.ID, voter, -1); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	got, _ = s.Get(ctx, c.ID)
	if got.Score != 0 {
		t.Errorf("score after retraction = %d, want 0", got.Score)
	}
	if len(got.UserVotes) != 0 {
		t.Errorf("vote ledger after retraction = %v", got.UserVotes)
	}
}

func TestVote_InvalidValueWithoutPriorFails(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	postID := ledger.add()

	c, err := s.Create(ctx, "c", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Vote(ctx, c.ID, users.add(), 3); !errs.IsInvalidInput(err) {
		t.Errorf("got %v, want InvalidInput", err)
	}
}

func TestUpdate_ContentOnly(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	postID := ledger.add()

	c, err := s.Create(ctx, "before", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := s.Update(ctx, c.ID, map[string]any{
		"content": "after",
		"score":   77,
		"postId":  bson.NewObjectID(),
	}, true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "after" {
		t.Errorf("Content = %q, want %q", updated.Content, "after")
	}
	if updated.Score != 0 {
		t.Errorf("user edit changed score to %d", updated.Score)
	}
	if updated.PostID != postID {
		t.Error("user edit changed the parent post")
	}
	if updated.DateEdited == nil {
		t.Error("user edit did not stamp dateEdited")
	}
}

func TestDelete_RemovesFromParentList(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	postID := ledger.add()

	c, err := s.Create(ctx, "c", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := s.Delete(ctx, c.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != c.ID {
		t.Errorf("deleted id = %v, want %v", deleted.ID, c.ID)
	}

	if len(ledger.lists[postID]) != 0 {
		t.Errorf("parent list still holds %v", ledger.lists[postID])
	}
	if _, err := s.Get(ctx, c.ID); !errs.IsInvalidInput(err) {
		t.Errorf("comment still resolvable after Delete: %v", err)
	}
}

func TestDelete_ToleratesVanishedParent(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	postID := ledger.add()

	c, err := s.Create(ctx, "c", postID, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ledger.drop(postID)

	if _, err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete with a vanished parent: %v", err)
	}
	if _, err := s.Get(ctx, c.ID); !errs.IsInvalidInput(err) {
		t.Errorf("comment still resolvable after Delete: %v", err)
	}
}

func TestDeleteAllByAuthor(t *testing.T) {
	s, users, ledger := newTestStore()
	ctx := context.Background()
	author := users.add()
	other := users.add()
	postID := ledger.add()

	if _, err := s.Create(ctx, "a", postID, author); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "b", postID, author); err != nil {
		t.Fatalf("Create: %v", err)
	}
	keep, err := s.Create(ctx, "keep", postID, other)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.DeleteAllByAuthor(ctx, author); err != nil {
		t.Fatalf("DeleteAllByAuthor: %v", err)
	}

	remaining, err := s.AllForPost(ctx, postID)
	if err != nil {
		t.Fatalf("AllForPost: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("remaining comments = %v, want just %v", remaining, keep.ID)
	}
}
