package post

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
	posts []*Post
}

func clonePost(p *Post) *Post {
	cp := *p
	cp.UserVotes = make(map[string]int, len(p.UserVotes))
	for k, v := range p.UserVotes {
		cp.UserVotes[k] = v
	}
	cp.Comments = append([]bson.ObjectID(nil), p.Comments...)
	cp.Topics = append([]Topic(nil), p.Topics...)
	return &cp
}

func (r *fakeRepo) Insert(_ context.Context, p *Post) (bson.ObjectID, error) {
	cp := clonePost(p)
	cp.ID = bson.NewObjectID()
	r.posts = append(r.posts, cp)
	return cp.ID, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id bson.ObjectID) (*Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context) ([]Post, error) {
	all := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		all = append(all, *clonePost(p))
	}
	return all, nil
}

func (r *fakeRepo) FindByAuthor(_ context.Context, authorID bson.ObjectID) ([]Post, error) {
	var byAuthor []Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			byAuthor = append(byAuthor, *clonePost(p))
		}
	}
	return byAuthor, nil
}

func (r *fakeRepo) UpdateFields(_ context.Context, id bson.ObjectID, set bson.M) (int64, int64, error) {
	for _, p := range r.posts {
		if p.ID != id {
			continue
		}
		for field, value := range set {
			switch field {
			case "postTitle":
				if v, ok := value.(string); ok {
					p.Title = v
				}
			case "postContent":
				if v, ok := value.(string); ok {
					p.Content = v
				}
			case "topics":
				if v, ok := value.([]Topic); ok {
					p.Topics = v
				}
			case "score":
				if v, ok := value.(int); ok {
					p.Score = v
				}
			case "userVotes":
				if v, ok := value.(map[string]int); ok {
					p.UserVotes = v
				}
			case "comments":
				if v, ok := value.([]bson.ObjectID); ok {
					p.Comments = v
				}
			case "dateEdited":
				if v, ok := value.(time.Time); ok {
					p.DateEdited = &v
				}
			}
		}
		return 1, 1, nil
	}
	return 0, 0, nil
}

func (r *fakeRepo) Delete(_ context.Context, id bson.ObjectID) (int64, error) {
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeTopicRepo struct {
	topics []Topic
}

func (r *fakeTopicRepo) Insert(_ context.Context, t *Topic) (bson.ObjectID, error) {
	cp := *t
	cp.ID = bson.NewObjectID()
	r.topics = append(r.topics, cp)
	return cp.ID, nil
}

func (r *fakeTopicRepo) FindByName(_ context.Context, name string) (*Topic, error) {
	for _, t := range r.topics {
		if t.TopicName == name {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTopicRepo) FindAll(_ context.Context) ([]Topic, error) {
	return append([]Topic(nil), r.topics...), nil
}

// fakeDirectory stands in for the user store: a known-id set plus a
// reputation ledger.
type fakeDirectory struct {
	known map[bson.ObjectID]bool
	rep   map[bson.ObjectID]int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{known: map[bson.ObjectID]bool{}, rep: map[bson.ObjectID]int{}}
}

func (d *fakeDirectory) add() bson.ObjectID {
	id := bson.NewObjectID()
	d.known[id] = true
	return id
}

func (d *fakeDirectory) Exists(_ context.Context, id bson.ObjectID) error {
	if !d.known[id] {
		return errs.InvalidInput("The requested user doesn't exist (ID: %s)", id.Hex())
	}
	return nil
}

func (d *fakeDirectory) AdjustReputation(_ context.Context, id bson.ObjectID, delta int) error {
	if !d.known[id] {
		return errs.InvalidInput("The requested user doesn't exist (ID: %s)", id.Hex())
	}
	d.rep[id] += delta
	return nil
}

func newTestStore(t *testing.T) (*Store, *fakeDirectory) {
	t.Helper()

	users := newFakeDirectory()
	topics := &fakeTopicRepo{}
	for _, name := range []string{"General", "Help", JobTopicName} {
		if _, err := topics.Insert(context.Background(), &Topic{TopicName: name}); err != nil {
			t.Fatalf("seed topic %s: %v", name, err)
		}
	}

	return NewStore(&fakeRepo{}, topics, users), users
}

func TestCreate_SnapshotsTopics(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()

	p, err := s.Create(ctx, "first post", "hello", []string{"General", "Help"}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if p.ID.IsZero() {
		t.Error("created post has no id")
	}
	if len(p.Topics) != 2 {
		t.Fatalf("post has %d topics, want 2", len(p.Topics))
	}
	if p.Topics[0].TopicName != "General" || p.Topics[1].TopicName != "Help" {
		t.Errorf("topic snapshot = %v", p.Topics)
	}
	if p.Score != 0 || len(p.UserVotes) != 0 || len(p.Comments) != 0 {
		t.Errorf("fresh post has non-default state: %+v", p)
	}
}

func TestCreate_Rejections(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()

	if _, err := s.Create(ctx, "t", "c", nil, author); !errs.IsInvalidInput(err) {
		t.Errorf("no topics: got %v, want InvalidInput", err)
	}
	if _, err := s.Create(ctx, "t", "c", []string{"NoSuchTopic"}, author); !errs.IsInvalidInput(err) {
		t.Errorf("unknown topic: got %v, want InvalidInput", err)
	}
	if _, err := s.Create(ctx, "t", "c", []string{"General"}, bson.NewObjectID()); !errs.IsInvalidInput(err) {
		t.Errorf("unknown author: got %v, want InvalidInput", err)
	}
}

func TestVote_ToggleByNonAuthor(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()
	voter := users.add()

	p, err := s.Create(ctx, "t", "c", []string{"General"}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Vote(ctx, p.ID, voter, 1); err != nil {
		t.Fatalf("Vote: %v", err)
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Score != 1 {
		t.Errorf("score = %d, want 1", got.Score)
	}
	if got.UserVotes[voter.Hex()] != 1 {
		t.Errorf("vote ledger = %v", got.UserVotes)
	}
	if users.rep[author] != 1 {
		t.Errorf("author reputation = %d, want 1", users.rep[author])
	}

	// A second vote from the same user retracts, whatever its value.
	if err := s.Vote(ctx, p.ID, voter, 1); err != nil {
		t.Fatalf("Vote: %v", err)
	}

	got, err = s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Score != 0 {
		t.Errorf("score after retraction = %d, want 0", got.Score)
	}
	if _, ok := got.UserVotes[voter.Hex()]; ok {
		t.Error("vote ledger still holds the retracted vote")
	}
	if users.rep[author] != 0 {
		t.Errorf("author reputation after retraction = %d, want 0", users.rep[author])
	}
}

func TestVote_DownvoteMovesReputationDown(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()
	voter := users.add()

	p, err := s.Create(ctx, "t", "c", []string{"General"}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Vote(ctx, p.ID, voter, -1); err != nil {
		t.Fatalf("Vote: %v", err)
	}

	got, _ := s.Get(ctx, p.ID)
	if got.Score != -1 {
		t.Errorf("score = %d, want -1", got.Score)
	}
	if users.rep[author] != -1 {
		t.Errorf("author reputation = %d, want -1", users.rep[author])
	}
}

func TestVote_SelfVoteNeverMovesReputation(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()

	p, err := s.Create(ctx, "t", "c", []string{"General"}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Vote(ctx, p.ID, author, 1); err != nil {
		t.Fatalf("Vote: %v", err)
	}

	got, _ := s.Get(ctx, p.ID)
	if got.Score != 1 {
		t.Errorf("score = %d, want 1", got.Score)
	}
	if users.rep[author] != 0 {
		t.Errorf("self-vote moved reputation to %d", users.rep[author])
	}

	if err := s.Vote(ctx, p.ID, author, 1); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if users.rep[author] != 0 {
		t.Errorf("self-vote retraction moved reputation to %d", users.rep[author])
	}
}

func TestVote_InvalidValueWithoutPriorFails(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()
	voter := users.add()

	p, err := s.Create(ctx, "t", "c", []string{"General"}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, vote := range []int{0, 2, -5} {
		if err := s.Vote(ctx, p.ID, voter, vote); !errs.IsInvalidInput(err) {
			t.Errorf("vote %d: got %v, want InvalidInput", vote, err)
		}
	}

	// With a prior vote on record any value retracts.
	if err := s.Vote(ctx, p.ID, voter, 1); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if err := s.Vote(ctx, p.ID, voter, 0); err != nil {
		t.Fatalf("retraction with vote 0: %v", err)
	}
	got, _ := s.Get(ctx, p.ID)
	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
}

func TestUpdate_UserEditIgnoresSystemFields(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()

	p, err := s.Create(ctx, "t", "c", []string{"General"}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := s.Update(ctx, p.ID, map[string]any{
		"postTitle": "new title",
		"score":     9000,
		"authorId":  bson.NewObjectID(),
	}, true)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "new title" {
		t.Errorf("Title = %q, want %q", updated.Title, "new title")
	}
	if updated.Score != 0 {
		t.Errorf("user edit changed score to %d", updated.Score)
	}
	if updated.AuthorID != author {
		t.Error("user edit changed the author")
	}
	if updated.DateEdited == nil {
		t.Error("user edit did not stamp dateEdited")
	}
}

func TestUpdate_MissingPostFails(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Update(context.Background(), bson.NewObjectID(), map[string]any{"postTitle": "x"}, true)
	if !errs.IsInvalidInput(err) {
		t.Errorf("got %v, want InvalidInput", err)
	}
}

func TestAllJobPosts_FiltersOnTopicSnapshot(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()

	if _, err := s.Create(ctx, "chatter", "c", []string{"General"}, author); err != nil {
		t.Fatalf("Create: %v", err)
	}
	jobPost, err := s.Create(ctx, "hiring", "c", []string{"General", JobTopicName}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.AllJobPosts(ctx)
	if err != nil {
		t.Fatalf("AllJobPosts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("AllJobPosts returned %d posts, want 1", len(got))
	}
	if got[0].ID != jobPost.ID {
		t.Errorf("AllJobPosts returned %v, want %v", got[0].ID, jobPost.ID)
	}
}

func TestAll_EmptyIsDatabaseError(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.All(context.Background())
	if !errs.IsDatabase(err) {
		t.Errorf("got %v, want DatabaseError", err)
	}
}

func TestCommentLedger(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()

	p, err := s.Create(ctx, "t", "c", []string{"General"}, author)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first := bson.NewObjectID()
	second := bson.NewObjectID()
	if err := s.AppendComment(ctx, p.ID, first); err != nil {
		t.Fatalf("AppendComment: %v", err)
	}
	if err := s.AppendComment(ctx, p.ID, second); err != nil {
		t.Fatalf("AppendComment: %v", err)
	}

	ids, err := s.CommentIDs(ctx, p.ID)
	if err != nil {
		t.Fatalf("CommentIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != first || ids[1] != second {
		t.Fatalf("CommentIDs = %v, want [%v %v]", ids, first, second)
	}

	if err := s.RemoveComment(ctx, p.ID, first); err != nil {
		t.Fatalf("RemoveComment: %v", err)
	}
	ids, _ = s.CommentIDs(ctx, p.ID)
	if len(ids) != 1 || ids[0] != second {
		t.Fatalf("CommentIDs after removal = %v, want [%v]", ids, second)
	}

	// Removing an id that is not on the list is a no-op.
	if err := s.RemoveComment(ctx, p.ID, first); err != nil {
		t.Errorf("RemoveComment of a missing id: %v", err)
	}
}

func TestDeleteAllByAuthor(t *testing.T) {
	s, users := newTestStore(t)
	ctx := context.Background()
	author := users.add()
	other := users.add()

	if _, err := s.Create(ctx, "a", "c", []string{"General"}, author); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "b", "c", []string{"General"}, author); err != nil {
		t.Fatalf("Create: %v", err)
	}
	keep, err := s.Create(ctx, "keep", "c", []string{"General"}, other)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.DeleteAllByAuthor(ctx, author); err != nil {
		t.Fatalf("DeleteAllByAuthor: %v", err)
	}

	remaining, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("remaining posts = %v, want just %v", remaining, keep.ID)
	}
}
