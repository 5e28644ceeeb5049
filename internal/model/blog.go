package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Blog represents a blog post document. Image fields hold opaque URLs.
type Blog struct {
	ID          bson.ObjectID `bson:"_id,omitempty"          json:"id"`
	Title       string        `bson:"title"                  json:"title"`
	Content     string        `bson:"content"                json:"content"`
	BannerImage string        `bson:"banner_image,omitempty" json:"banner_image,omitempty"`
	Gallery     []string      `bson:"gallery,omitempty"      json:"gallery,omitempty"`
	Author      string        `bson:"author"                 json:"author"`
	CreatedAt   time.Time     `bson:"created_at"             json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"             json:"updated_at"`
}
