package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/shoply-api/internal/model"
)

// ChatMessageRepository defines the interface for chatbot history database
// operations.
type ChatMessageRepository interface {
	CreateChatMessage(ctx context.Context, message *model.ChatMessage) (*model.ChatMessage, error)
	ListChatMessagesByUserID(ctx context.Context, userID string) ([]*model.ChatMessage, error)
}

const chatMessageCollection = "chat_messages"

type chatMessageMongoRepository struct {
	db *mongo.Database
}

func NewChatMessageMongoRepository(db *mongo.Database) ChatMessageRepository {
	return &chatMessageMongoRepository{db: db}
}

func (r *chatMessageMongoRepository) CreateChatMessage(
	ctx context.Context,
	message *model.ChatMessage,
) (*model.ChatMessage, error) {
	message.CreatedAt = time.Now()

	result, err := r.db.Collection(chatMessageCollection).InsertOne(ctx, message)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		message.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return message, nil
}

func (r *chatMessageMongoRepository) ListChatMessagesByUserID(
	ctx context.Context,
	userID string,
) ([]*model.ChatMessage, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(chatMessageCollection).Find(ctx, bson.M{"user_id": objectID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
