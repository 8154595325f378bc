package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Todo represents a single task owned by one user.
// CompletedAt is non-nil exactly when Completed is true.
type Todo struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Text        string        `bson:"text"`
	Completed   bool          `bson:"completed"`
	CompletedAt *time.Time    `bson:"completed_at"`
	OwnerID     bson.ObjectID `bson:"owner_id"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
