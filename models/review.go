package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCommentLength bounds the free-text review comment.
const MaxCommentLength = 500

// Review is unique per (product, user); a repeat submission overwrites the
// existing document instead of creating a second one.
type Review struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"product_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`

	// UserName is resolved for display. Not persisted.
	UserName string `json:"userName,omitempty" bson:"-"`
}
