package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ChatMessage is one question/answer exchange with the shopping assistant.
type ChatMessage struct {
	ID        bson.ObjectID `bson:"_id,omitempty"        json:"id"`
	UserID    bson.ObjectID `bson:"user_id"              json:"user_id"`
	Question  string        `bson:"question"             json:"question"`
	Answer    string        `bson:"answer"               json:"answer"`
	ProductID string        `bson:"product_id,omitempty" json:"product_id,omitempty"`
	CreatedAt time.Time     `bson:"created_at"           json:"created_at"`
}
