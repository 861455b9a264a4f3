package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Color     string             `bson:"color" json:"color"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

type Product struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string              `bson:"name" json:"name"`
	Price      float64             `bson:"price" json:"price"`
	CategoryID *primitive.ObjectID `bson:"categoryid,omitempty" json:"categoryId,omitempty"`
	Image      string              `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time           `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  time.Time           `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

type Offer struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string               `bson:"name" json:"name"`
	Price      float64              `bson:"price" json:"price"`
	ImageFile  string               `bson:"imagefile,omitempty" json:"imageFile,omitempty"`
	IsPublish  bool                 `bson:"ispublish" json:"isPublish"`
	ProductIDs []primitive.ObjectID `bson:"productids,omitempty" json:"productIds,omitempty"`
	CreatedAt  time.Time            `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  time.Time            `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
