package user

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	defaultDescription    = "Hi, I'm a new ByteBoard user"
	defaultProfilePicture = "https://cdn.discordapp.com/attachments/667872583538180137/1105656082136842330/Default_Pfp.png"
)

// User represents a ByteBoard account. Password always holds the bcrypt
// hash, never the plaintext; reputation is only mutated by vote
// side-effects on the user's posts.
type User struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username       string        `bson:"username" json:"username"`
	Email          string        `bson:"email" json:"email"`
	Password       string        `bson:"password" json:"-"`
	DisplayName    string        `bson:"displayName" json:"displayName"`
	Description    string        `bson:"description" json:"description"`
	Reputation     int           `bson:"reputation" json:"reputation"`
	ProfilePicture string        `bson:"profilePicture" json:"profilePicture"`
	Verified       bool          `bson:"verified" json:"verified"`
	Admin          bool          `bson:"admin" json:"admin"`
}

// New builds an account with registration defaults. The password must
// already be hashed.
func New(username, email, hashedPassword string) *User {
	return &User{
		Username:       username,
		Email:          email,
		Password:       hashedPassword,
		DisplayName:    username,
		Description:    defaultDescription,
		Reputation:     0,
		ProfilePicture: defaultProfilePicture,
		Verified:       false,
		Admin:          false,
	}
}
