package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // Don't return password in JSON
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Phone    string             `bson:"phone" json:"phone"`
	Date     time.Time          `bson:"date" json:"date"`
}

// UserSummary is the public slice of a user embedded in profile reads.
type UserSummary struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Avatar string             `json:"avatar,omitempty"`
	Phone  string             `json:"phone,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Phone:  u.Phone,
	}
}
