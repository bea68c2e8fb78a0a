package post

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/store"
)

// fieldTable says who may touch each post field through an update patch.
// Score, vote ledger and comment list move only through the vote and
// comment flows, never through a user edit.
var fieldTable = map[string]store.FieldPolicy{
	"_id":         store.EditNever,
	"authorId":    store.EditNever,
	"dateCreated": store.EditNever,
	"dateEdited":  store.EditNever,
	"postTitle":   store.EditUser,
	"postContent": store.EditUser,
	"topics":      store.EditUser,
	"score":       store.EditSystem,
	"userVotes":   store.EditSystem,
	"comments":    store.EditSystem,
}

// AuthorDirectory is what the post store needs to know about accounts:
// that an author exists, and how to move reputation when votes land on
// their posts. Implemented by the user store.
type AuthorDirectory interface {
	Exists(ctx context.Context, id bson.ObjectID) error
	AdjustReputation(ctx context.Context, id bson.ObjectID, delta int) error
}

// Store enforces post invariants on top of the repositories.
type Store struct {
	repo   Repository
	topics TopicRepository
	users  AuthorDirectory
}

func NewStore(repo Repository, topics TopicRepository, users AuthorDirectory) *Store {
	return &Store{repo: repo, topics: topics, users: users}
}

// Create resolves every topic name to its document, snapshots them onto
// the new post and persists it. The author must exist and the topic list
// must be non-empty.
func (s *Store) Create(ctx context.Context, title, content string, topicNames []string, authorID bson.ObjectID) (*Post, error) {
	if err := s.users.Exists(ctx, authorID); err != nil {
		return nil, err
	}
	if len(topicNames) == 0 {
		return nil, errs.InvalidInput("The post must have at least one topic")
	}

	topics := make([]Topic, 0, len(topicNames))
	for _, name := range topicNames {
		topic, err := s.TopicByName(ctx, name)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *topic)
	}

	p := New(title, content, topics, authorID)
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	return p, nil
}

func (s *Store) Get(ctx context.Context, id bson.ObjectID) (*Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.InvalidInput("The requested post doesn't exist")
	}
	return p, nil
}

// All returns every post. An empty board is treated as a store failure,
// matching the user listing policy.
func (s *Store) All(ctx context.Context) ([]Post, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, errs.Database("Couldn't get all posts")
	}
	return posts, nil
}

// AllByAuthor returns the user's posts, possibly none. The user must exist.
func (s *Store) AllByAuthor(ctx context.Context, authorID bson.ObjectID) ([]Post, error) {
	if err := s.users.Exists(ctx, authorID); err != nil {
		return nil, err
	}
	return s.repo.FindByAuthor(ctx, authorID)
}

func (s *Store) AllTopics(ctx context.Context) ([]Topic, error) {
	return s.topics.FindAll(ctx)
}

func (s *Store) TopicByName(ctx context.Context, name string) (*Topic, error) {
	topic, err := s.topics.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, errs.InvalidInput("The requested topic doesn't exist")
	}
	return topic, nil
}

// AllJobPosts returns posts whose topic snapshot carries the Job topic
// name. Unrelated to the dedicated Job entity, which has its own store.
func (s *Store) AllJobPosts(ctx context.Context) ([]Post, error) {
	posts, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	jobPosts := []Post{}
	for _, p := range posts {
		for _, topic := range p.Topics {
			if topic.TopicName == JobTopicName {
				jobPosts = append(jobPosts, p)
				break
			}
		}
	}
	return jobPosts, nil
}

// Update applies the permitted subset of patch. User edits additionally
// stamp dateEdited. Fails with InvalidInput when nothing survives the
// field table or the store modified nothing.
func (s *Store) Update(ctx context.Context, id bson.ObjectID, patch map[string]any, userEditing bool) (*Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := store.ApplyPatch(fieldTable, patch, userEditing)
	if userEditing {
		set["dateEdited"] = time.Now()
	}
	if len(set) == 0 {
		return nil, errs.InvalidInput("No post fields to update")
	}

	matched, modified, err := s.repo.UpdateFields(ctx, p.ID, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 || modified == 0 {
		return nil, errs.InvalidInput("No posts were updated")
	}

	return s.Get(ctx, id)
}

// Vote toggles a user's vote on a post. A voter with a recorded vote gets
// it retracted — entry removed, score and author reputation rolled back —
// whatever the new vote argument says; a voter without one casts vote,
// which must be +1 or -1. Self-votes never move the author's reputation.
// Flipping a vote therefore takes two calls.
func (s *Store) Vote(ctx context.Context, postID, voterID bson.ObjectID, vote int) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	if p.UserVotes == nil {
		p.UserVotes = map[string]int{}
	}

	prior, voteExists := p.UserVotes[voterID.Hex()]
	isVoterAuthor := p.AuthorID == voterID

	if vote != 1 && vote != -1 && !voteExists {
		return errs.InvalidInput("Vote invalid")
	}

	if voteExists {
		delete(p.UserVotes, voterID.Hex())
		p.Score -= prior

		if !isVoterAuthor {
			if err := s.users.AdjustReputation(ctx, p.AuthorID, -prior); err != nil {
				return err
			}
		}
	} else {
		p.UserVotes[voterID.Hex()] = vote
		p.Score += vote

		if !isVoterAuthor {
			if err := s.users.AdjustReputation(ctx, p.AuthorID, vote); err != nil {
				return err
			}
		}
	}

	_, err = s.Update(ctx, postID, map[string]any{"score": p.Score, "userVotes": p.UserVotes}, false)
	return err
}

// Delete removes the post only. Its comments are deleted by the caller's
// cascade (user deletion) or left to dangle, by design.
func (s *Store) Delete(ctx context.Context, id bson.ObjectID) (*Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, errs.InvalidInput("No posts were deleted")
	}

	return p, nil
}

// DeleteAllByAuthor removes every post the user authored. Part of the
// account deletion cascade.
func (s *Store) DeleteAllByAuthor(ctx context.Context, authorID bson.ObjectID) error {
	posts, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if _, err := s.Delete(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// Exists reports whether the post is present; used by the comment store.
func (s *Store) Exists(ctx context.Context, id bson.ObjectID) error {
	_, err := s.Get(ctx, id)
	return err
}

// CommentIDs returns the post's ordered comment id list.
func (s *Store) CommentIDs(ctx context.Context, postID bson.ObjectID) ([]bson.ObjectID, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// AppendComment adds a newly created comment's id to the parent post.
func (s *Store) AppendComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	comments := append(p.Comments, commentID)
	_, err = s.Update(ctx, postID, map[string]any{"comments": comments}, false)
	return err
}

// RemoveComment drops a deleted comment's id from the parent post. A
// missing id is not an error; the comment was already orphaned.
func (s *Store) RemoveComment(ctx context.Context, postID, commentID bson.ObjectID) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	comments := make([]bson.ObjectID, 0, len(p.Comments))
	for _, id := range p.Comments {
		if id != commentID {
			comments = append(comments, id)
		}
	}
	if len(comments) == len(p.Comments) {
		return nil
	}

	_, err = s.Update(ctx, postID, map[string]any{"comments": comments}, false)
	return err
}
