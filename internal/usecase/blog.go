package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
)

// BlogUsecase defines the business logic for blog posts. It is a thin layer
// over the repository.
type BlogUsecase interface {
	CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	GetBlog(ctx context.Context, id string) (*model.Blog, error)
	ListBlogs(ctx context.Context) ([]*model.Blog, error)
	UpdateBlog(ctx context.Context, id string, params repository.UpdateBlogParams) (*model.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}

var ErrBlogNotFound = errors.New("blog not found")

type blogUsecase struct {
	blogRepo repository.BlogRepository
}

// NewBlogUsecase creates a new instance of BlogUsecase.
func NewBlogUsecase(blogRepo repository.BlogRepository) BlogUsecase {
	return &blogUsecase{blogRepo: blogRepo}
}

func (u *blogUsecase) CreateBlog(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	if blog.Author == "" {
		blog.Author = "Anonymous"
	}

	return u.blogRepo.CreateBlog(ctx, blog)
}

func (u *blogUsecase) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	blog, err := u.blogRepo.GetBlog(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}

		return nil, err
	}

	return blog, nil
}

func (u *blogUsecase) ListBlogs(ctx context.Context) ([]*model.Blog, error) {
	return u.blogRepo.ListBlogs(ctx)
}

func (u *blogUsecase) UpdateBlog(
	ctx context.Context,
	id string,
	params repository.UpdateBlogParams,
) (*model.Blog, error) {
	blog, err := u.blogRepo.UpdateBlog(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}

		return nil, err
	}

	return blog, nil
}

func (u *blogUsecase) DeleteBlog(ctx context.Context, id string) error {
	if _, err := u.blogRepo.DeleteBlog(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBlogNotFound
		}

		return err
	}

	return nil
}
