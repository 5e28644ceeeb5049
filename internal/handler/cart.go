package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/shoply-api/internal/middleware"
	"github.com/vasapolrittideah/shoply-api/internal/payload"
	"github.com/vasapolrittideah/shoply-api/internal/usecase"
	"github.com/vasapolrittideah/shoply-api/shared/validator"
)

type CartHandler struct {
	cartUsecase usecase.CartUsecase
	validator   *validator.Validator
	logger      *zerolog.Logger
}

func NewCartHandler(
	cartUsecase usecase.CartUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var req payload.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.cartUsecase.AddItem(r.Context(), user, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to add cart item")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	cart, err := h.cartUsecase.RemoveItem(r.Context(), user, chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, usecase.ErrCartNotFound) {
			respondError(w, http.StatusNotFound, "cart not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to remove cart item")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, cart)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	cart, err := h.cartUsecase.GetCart(r.Context(), user)
	if err != nil {
		if errors.Is(err, usecase.ErrCartNotFound) {
			respondError(w, http.StatusNotFound, "cart not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get cart")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, cart)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	if _, err := h.cartUsecase.ClearCart(r.Context(), user); err != nil {
		if errors.Is(err, usecase.ErrCartNotFound) {
			respondError(w, http.StatusNotFound, "cart not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to clear cart")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondMessage(w, http.StatusOK, "cart cleared")
}
