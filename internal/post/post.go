package post

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// JobTopicName tags posts that advertise work. Posts carrying this topic
// are served by the job-posts listing; this is a naming convention in the
// topic snapshot, not a reference to the dedicated Job entity.
const JobTopicName = "Job"

// Topic is a named category. Posts embed a snapshot of each topic at
// creation time rather than referencing it.
type Topic struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	TopicName string        `bson:"topicName" json:"topicName"`
}

// Post is a board entry. UserVotes maps voter ids (hex) to their current
// vote; retracting a vote removes the entry rather than zeroing it.
// Comments holds the ordered ids of the comments under this post.
type Post struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title       string          `bson:"postTitle" json:"postTitle"`
	Content     string          `bson:"postContent" json:"postContent"`
	Topics      []Topic         `bson:"topics" json:"topics"`
	AuthorID    bson.ObjectID   `bson:"authorId" json:"authorId"`
	Score       int             `bson:"score" json:"score"`
	UserVotes   map[string]int  `bson:"userVotes" json:"userVotes"`
	Comments    []bson.ObjectID `bson:"comments" json:"comments"`
	DateCreated time.Time       `bson:"dateCreated" json:"dateCreated"`
	DateEdited  *time.Time      `bson:"dateEdited" json:"dateEdited"`
}

// New builds a post with a zero score, empty vote ledger and no comments.
func New(title, content string, topics []Topic, authorID bson.ObjectID) *Post {
	return &Post{
		Title:       title,
		Content:     content,
		Topics:      topics,
		AuthorID:    authorID,
		Score:       0,
		UserVotes:   map[string]int{},
		Comments:    []bson.ObjectID{},
		DateCreated: time.Now(),
	}
}
