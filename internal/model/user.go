package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AccessAuth is the purpose label attached to tokens issued on
// registration and login.
const AccessAuth = "auth"

// UserToken is one issued authentication token together with its
// purpose label. A token is valid only while it is present here.
type UserToken struct {
	Access string `bson:"access"`
	Token  string `bson:"token"`
}

// User represents an account in the system.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Tokens       []UserToken   `bson:"tokens"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
