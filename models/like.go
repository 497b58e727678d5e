package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like is a one-directional relation edge. The (userId, targetUserId)
// pair is unique, so re-liking the same user is a no-op.
type Like struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	TargetUserID primitive.ObjectID `bson:"targetUserId" json:"targetUserId"`
	CreatedAt    int64              `bson:"createdAt" json:"createdAt"`
}
