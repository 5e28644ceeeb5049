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

// BlogRepository defines the interface for blog post database operations.
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	GetBlog(ctx context.Context, id string) (*model.Blog, error)
	ListBlogs(ctx context.Context) ([]*model.Blog, error)
	UpdateBlog(ctx context.Context, id string, params UpdateBlogParams) (*model.Blog, error)
	DeleteBlog(ctx context.Context, id string) (*model.Blog, error)
}

// UpdateBlogParams defines the optional parameters for updating a blog post.
// Only the fields that are not nil will be updated.
type UpdateBlogParams struct {
	Title       *string
	Content     *string
	BannerImage *string
	Gallery     *[]string
	Author      *string
}

const blogCollection = "blogs"

type blogMongoRepository struct {
	db *mongo.Database
}

func NewBlogMongoRepository(db *mongo.Database) BlogRepository {
	return &blogMongoRepository{db: db}
}

func (r *blogMongoRepository) CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	result, err := r.db.Collection(blogCollection).InsertOne(ctx, blog)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		blog.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return blog, nil
}

func (r *blogMongoRepository) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(blogCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var blog model.Blog
	if err := result.Decode(&blog); err != nil {
		return nil, err
	}

	return &blog, nil
}

func (r *blogMongoRepository) ListBlogs(ctx context.Context) ([]*model.Blog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(blogCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []*model.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (r *blogMongoRepository) UpdateBlog(
	ctx context.Context,
	id string,
	params UpdateBlogParams,
) (*model.Blog, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Content != nil {
		updateMap["content"] = *params.Content
	}
	if params.BannerImage != nil {
		updateMap["banner_image"] = *params.BannerImage
	}
	if params.Gallery != nil {
		updateMap["gallery"] = *params.Gallery
	}
	if params.Author != nil {
		updateMap["author"] = *params.Author
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no blog fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(blogCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var blog model.Blog
	if err := result.Decode(&blog); err != nil {
		return nil, err
	}

	return &blog, nil
}

func (r *blogMongoRepository) DeleteBlog(ctx context.Context, id string) (*model.Blog, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	result := r.db.Collection(blogCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var blog model.Blog
	if err := result.Decode(&blog); err != nil {
		return nil, err
	}

	return &blog, nil
}
