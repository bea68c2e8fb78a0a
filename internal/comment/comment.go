package comment

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is a reply under a post. The vote ledger works like the post
// one, but comment votes never move anyone's reputation.
type Comment struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Content     string         `bson:"content" json:"content"`
	PostID      bson.ObjectID  `bson:"postId" json:"postId"`
	AuthorID    bson.ObjectID  `bson:"authorId" json:"authorId"`
	Score       int            `bson:"score" json:"score"`
	UserVotes   map[string]int `bson:"userVotes" json:"userVotes"`
	DateCreated time.Time      `bson:"dateCreated" json:"dateCreated"`
	DateEdited  *time.Time     `bson:"dateEdited" json:"dateEdited"`
}

func New(content string, postID, authorID bson.ObjectID) *Comment {
	return &Comment{
		Content:     content,
		PostID:      postID,
		AuthorID:    authorID,
		Score:       0,
		UserVotes:   map[string]int{},
		DateCreated: time.Now(),
	}
}
