package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Match records a mutual like between two users. PairKey is the
// canonical form of the unordered pair and carries a unique index, so
// at most one match can exist per pair no matter which user lands in
// which slot.
type Match struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PairKey   string             `bson:"pairKey" json:"-"`
	UserA     primitive.ObjectID `bson:"userA" json:"userA"`
	UserB     primitive.ObjectID `bson:"userB" json:"userB"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

// PairKey canonicalizes an unordered user pair: the smaller hex id
// always comes first.
func PairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if ah > bh {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// Counterpart returns the other participant of the match.
func (m Match) Counterpart(user primitive.ObjectID) primitive.ObjectID {
	if m.UserA == user {
		return m.UserB
	}
	return m.UserA
}

// Involves reports whether the user occupies either slot of the match.
func (m Match) Involves(user primitive.ObjectID) bool {
	return m.UserA == user || m.UserB == user
}
