package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin       = "ADMIN"
	RoleResponsable = "RESPONSABLE"
	RoleLivreur     = "LIVREUR"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserName  string             `bson:"username" json:"userName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"password,omitempty"`
	ImageFile string             `bson:"imagefile,omitempty" json:"imageFile,omitempty"`
	Role      string             `bson:"role" json:"role"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Sanitize returns a copy safe to put in a response body.
func (u User) Sanitize() User {
	u.Password = ""
	return u
}

type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Role      string             `bson:"role" json:"role"`
	IP        string             `bson:"ip" json:"ip"`
	Device    string             `bson:"device" json:"device"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
