package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
)

// ProductUsecase defines the business logic for catalog products. It is a
// thin layer over the repository.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, params repository.FilterProductsParams) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, id string, params repository.UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUAlreadyTaken = errors.New("sku already taken")
)

type productUsecase struct {
	productRepo repository.ProductRepository
}

// NewProductUsecase creates a new instance of ProductUsecase.
func NewProductUsecase(productRepo repository.ProductRepository) ProductUsecase {
	return &productUsecase{productRepo: productRepo}
}

func (u *productUsecase) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	created, err := u.productRepo.CreateProduct(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSKUAlreadyTaken
		}

		return nil, err
	}

	return created, nil
}

func (u *productUsecase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := u.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

func (u *productUsecase) ListProducts(
	ctx context.Context,
	params repository.FilterProductsParams,
) ([]*model.Product, error) {
	return u.productRepo.ListProducts(ctx, params)
}

func (u *productUsecase) UpdateProduct(
	ctx context.Context,
	id string,
	params repository.UpdateProductParams,
) (*model.Product, error) {
	product, err := u.productRepo.UpdateProduct(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

func (u *productUsecase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := u.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}

		return err
	}

	return nil
}
