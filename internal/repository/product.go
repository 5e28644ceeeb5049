package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/shoply-api/internal/model"
)

// ProductRepository defines the interface for product database operations.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, params FilterProductsParams) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) (*model.Product, error)
}

// UpdateProductParams defines the optional parameters for updating a
// product. Only the fields that are not nil will be updated.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Discount    *float64
	Images      *[]string
	Stock       *int
	Brand       *string
	Attributes  *map[string]string
}

// FilterProductsParams defines the parameters for filtering and paginating
// products.
type FilterProductsParams struct {
	Category *string
	Limit    int64
	Offset   int64
}

const productCollection = "products"

type productMongoRepository struct {
	db *mongo.Database
}

// NewProductMongoRepository creates a MongoDB repository for products and
// ensures the unique SKU index exists.
func NewProductMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProductRepository {
	collection := db.Collection(productCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create product indexes")
	}

	return &productMongoRepository{db: db}
}

func (r *productMongoRepository) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.db.Collection(productCollection).InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		product.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return product, nil
}

func (r *productMongoRepository) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(productCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productMongoRepository) ListProducts(
	ctx context.Context,
	params FilterProductsParams,
) ([]*model.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	limit := params.Limit
	if limit == 0 {
		limit = 20
	}
	findOptions.SetLimit(limit)

	if params.Offset > 0 {
		findOptions.SetSkip(params.Offset)
	}

	filter := bson.M{}
	if params.Category != nil {
		filter["category"] = *params.Category
	}

	cursor, err := r.db.Collection(productCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productMongoRepository) UpdateProduct(
	ctx context.Context,
	id string,
	params UpdateProductParams,
) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.Price != nil {
		updateMap["price"] = *params.Price
	}
	if params.Discount != nil {
		updateMap["discount"] = *params.Discount
	}
	if params.Images != nil {
		updateMap["images"] = *params.Images
	}
	if params.Stock != nil {
		updateMap["stock"] = *params.Stock
	}
	if params.Brand != nil {
		updateMap["brand"] = *params.Brand
	}
	if params.Attributes != nil {
		updateMap["attributes"] = *params.Attributes
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no product fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(productCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productMongoRepository) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(productCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var product model.Product
	if err := result.Decode(&product); err != nil {
		return nil, err
	}

	return &product, nil
}
