package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/payload"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
	"github.com/vasapolrittideah/shoply-api/internal/usecase"
	"github.com/vasapolrittideah/shoply-api/shared/validator"
)

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.Validator
	logger         *zerolog.Logger
}

func NewProductHandler(
	productUsecase usecase.ProductUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.productUsecase.CreateProduct(r.Context(), &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Discount:    req.Discount,
		Images:      req.Images,
		Stock:       req.Stock,
		SKU:         req.SKU,
		Brand:       req.Brand,
		Attributes:  req.Attributes,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrSKUAlreadyTaken) {
			respondError(w, http.StatusConflict, "sku already taken")
			return
		}

		h.logger.Error().Err(err).Msg("failed to create product")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusCreated, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterProductsParams{}

	if category := r.URL.Query().Get("category"); category != "" {
		params.Category = &category
	}
	if limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64); err == nil {
		params.Offset = offset
	}

	products, err := h.productUsecase.ListProducts(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list products")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get product")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.productUsecase.UpdateProduct(r.Context(), chi.URLParam(r, "id"), repository.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Discount:    req.Discount,
		Images:      req.Images,
		Stock:       req.Stock,
		Brand:       req.Brand,
		Attributes:  req.Attributes,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to update product")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete product")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondMessage(w, http.StatusOK, "product deleted successfully")
}
