package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/shoply-api/internal/model"
)

// CartRepository defines the interface for cart database operations. A user
// has at most one cart document, keyed by user_id.
type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID string) (*model.Cart, error)

	// SaveCart upserts the cart document for its user.
	SaveCart(ctx context.Context, cart *model.Cart) (*model.Cart, error)
}

const cartCollection = "carts"

type cartMongoRepository struct {
	db *mongo.Database
}

func NewCartMongoRepository(db *mongo.Database) CartRepository {
	return &cartMongoRepository{db: db}
}

func (r *cartMongoRepository) GetCartByUserID(ctx context.Context, userID string) (*model.Cart, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(cartCollection).FindOne(ctx, bson.M{"user_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var cart model.Cart
	if err := result.Decode(&cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartMongoRepository) SaveCart(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"items":          cart.Items,
			"total_quantity": cart.TotalQuantity,
			"total_price":    cart.TotalPrice,
			"updated_at":     cart.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"user_id":    cart.UserID,
			"created_at": cart.CreatedAt,
		},
	}

	result := r.db.Collection(cartCollection).FindOneAndUpdate(
		ctx,
		bson.M{"user_id": cart.UserID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var saved model.Cart
	if err := result.Decode(&saved); err != nil {
		return nil, err
	}

	return &saved, nil
}
