package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review is a customer review embedded in a product document.
type Review struct {
	UserID    bson.ObjectID `bson:"user_id"           json:"user_id"`
	Rating    int           `bson:"rating"            json:"rating"`
	Comment   string        `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time     `bson:"created_at"        json:"created_at"`
}

// Product represents a catalog product document.
type Product struct {
	ID          bson.ObjectID     `bson:"_id,omitempty"        json:"id"`
	Name        string            `bson:"name"                 json:"name"`
	Description string            `bson:"description"          json:"description"`
	Category    string            `bson:"category"             json:"category"`
	Price       float64           `bson:"price"                json:"price"`
	Discount    float64           `bson:"discount"             json:"discount"`
	Images      []string          `bson:"images,omitempty"     json:"images,omitempty"`
	Stock       int               `bson:"stock"                json:"stock"`
	SKU         string            `bson:"sku,omitempty"        json:"sku,omitempty"`
	Brand       string            `bson:"brand,omitempty"      json:"brand,omitempty"`
	Rating      float64           `bson:"rating"               json:"rating"`
	Reviews     []Review          `bson:"reviews,omitempty"    json:"reviews,omitempty"`
	Attributes  map[string]string `bson:"attributes,omitempty" json:"attributes,omitempty"`
	CreatedAt   time.Time         `bson:"created_at"           json:"created_at"`
	UpdatedAt   time.Time         `bson:"updated_at"           json:"updated_at"`
}
