package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartItem is a single product line in a cart. The price is captured from
// the product document at the time the item is added.
type CartItem struct {
	ProductID bson.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int           `bson:"quantity"   json:"quantity"`
	Price     float64       `bson:"price"      json:"price"`
}

// Cart represents a user's shopping cart. Totals are recomputed server-side
// on every mutation.
type Cart struct {
	ID            bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	UserID        bson.ObjectID `bson:"user_id"        json:"user_id"`
	Items         []CartItem    `bson:"items"          json:"items"`
	TotalQuantity int           `bson:"total_quantity" json:"total_quantity"`
	TotalPrice    float64       `bson:"total_price"    json:"total_price"`
	CreatedAt     time.Time     `bson:"created_at"     json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"     json:"updated_at"`
}
