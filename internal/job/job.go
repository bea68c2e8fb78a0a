package job

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Job is a paid task offered by a user. It is a standalone entity,
// independent of posts carrying the Job topic.
type Job struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string        `bson:"jobTitle" json:"jobTitle"`
	Description string        `bson:"jobDescription" json:"jobDescription"`
	Pay         float64       `bson:"jobPay" json:"jobPay"`
	AuthorID    bson.ObjectID `bson:"authorId" json:"authorId"`
	Closed      bool          `bson:"closed" json:"closed"`
	DateCreated time.Time     `bson:"dateCreated" json:"dateCreated"`
	DateEdited  *time.Time    `bson:"dateEdited" json:"dateEdited"`
}

func New(title, description string, pay float64, authorID bson.ObjectID) *Job {
	return &Job{
		Title:       title,
		Description: description,
		Pay:         pay,
		AuthorID:    authorID,
		Closed:      false,
		DateCreated: time.Now(),
	}
}
