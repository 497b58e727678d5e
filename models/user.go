package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PreferenceAll matches candidates of every genre.
const PreferenceAll = "all"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`

	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	Genre       string `bson:"genre" json:"genre"`           // male, female, other
	Dob         string `bson:"dob" json:"dob"`               // as submitted at registration
	Preference  string `bson:"preference" json:"preference"` // male, female, other, all
	Description string `bson:"description" json:"description"`
	Avatar      string `bson:"avatar" json:"avatar"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	LastSeen  int64 `bson:"lastSeen" json:"lastSeen"`
}

// PublicUser is the projection shown to other users: no credential,
// no email, no relation state.
type PublicUser struct {
	ID          primitive.ObjectID `json:"id"`
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Genre       string             `json:"genre"`
	Dob         string             `json:"dob"`
	Description string             `json:"description"`
	Avatar      string             `json:"avatar"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Genre:       u.Genre,
		Dob:         u.Dob,
		Description: u.Description,
		Avatar:      u.Avatar,
	}
}
