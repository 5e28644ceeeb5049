package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/shoply-api/internal/middleware"
	"github.com/vasapolrittideah/shoply-api/internal/payload"
	"github.com/vasapolrittideah/shoply-api/internal/usecase"
	"github.com/vasapolrittideah/shoply-api/shared/validator"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.Validator
	logger      *zerolog.Logger
}

func NewChatHandler(
	chatUsecase usecase.ChatUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *ChatHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var req payload.SaveChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.chatUsecase.SaveExchange(r.Context(), user, req.Question, req.Answer, req.ProductID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to save chat exchange")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusCreated, message)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	messages, err := h.chatUsecase.History(r.Context(), user)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load chat history")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, messages)
}
