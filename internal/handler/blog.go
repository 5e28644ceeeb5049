package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/payload"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
	"github.com/vasapolrittideah/shoply-api/internal/usecase"
	"github.com/vasapolrittideah/shoply-api/shared/validator"
)

type BlogHandler struct {
	blogUsecase usecase.BlogUsecase
	validator   *validator.Validator
	logger      *zerolog.Logger
}

func NewBlogHandler(
	blogUsecase usecase.BlogUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *BlogHandler {
	return &BlogHandler{
		blogUsecase: blogUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	blog, err := h.blogUsecase.CreateBlog(r.Context(), &model.Blog{
		Title:       req.Title,
		Content:     req.Content,
		BannerImage: req.BannerImage,
		Gallery:     req.Gallery,
		Author:      req.Author,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create blog")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusCreated, blog)
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogUsecase.ListBlogs(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list blogs")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogUsecase.GetBlog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrBlogNotFound) {
			respondError(w, http.StatusNotFound, "blog not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get blog")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, blog)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	blog, err := h.blogUsecase.UpdateBlog(r.Context(), chi.URLParam(r, "id"), repository.UpdateBlogParams{
		Title:       req.Title,
		Content:     req.Content,
		BannerImage: req.BannerImage,
		Gallery:     req.Gallery,
		Author:      req.Author,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrBlogNotFound) {
			respondError(w, http.StatusNotFound, "blog not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to update blog")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blogUsecase.DeleteBlog(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, usecase.ErrBlogNotFound) {
			respondError(w, http.StatusNotFound, "blog not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete blog")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondMessage(w, http.StatusOK, "blog deleted successfully")
}
