package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/shoply-api/internal/middleware"
	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/payload"
	"github.com/vasapolrittideah/shoply-api/internal/usecase"
	"github.com/vasapolrittideah/shoply-api/shared/validator"
)

// Stable user-visible messages. Invalid and expired codes share one message,
// as do unknown-email and wrong-password logins, so responses cannot be used
// to probe accounts.
const (
	msgInvalidOrExpiredCode = "invalid or expired code"
	msgInvalidCredentials   = "invalid email or password"
	msgSomethingWentWrong   = "something went wrong"
	msgResetCodeSent        = "if the account exists, a reset code has been sent"
)

type AuthHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validator.Validator
	logger               *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Meta:     requestMeta(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, "email already exists")
		case errors.Is(err, usecase.ErrWeakPassword):
			respondError(w, http.StatusBadRequest,
				"password must be at least 8 characters and contain uppercase, lowercase, number and special character")
		default:
			h.logger.Error().Err(err).Msg("failed to register account")
			respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		}
		return
	}

	respondData(w, http.StatusCreated, payload.RegisterResponse{
		ID:    user.ID.Hex(),
		Email: user.Email,
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authUsecase.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, usecase.ErrInvalidOTP), errors.Is(err, usecase.ErrExpiredOTP):
			respondError(w, http.StatusUnauthorized, msgInvalidOrExpiredCode)
		default:
			h.logger.Error().Err(err).Msg("failed to verify signup code")
			respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		}
		return
	}

	respondData(w, http.StatusOK, sessionResponse(user, token))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondData(w, http.StatusOK, sessionResponse(user, token))
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to request password reset")
		respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		return
	}

	respondMessage(w, http.StatusOK, msgResetCodeSent)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrWeakPassword):
			respondError(w, http.StatusBadRequest,
				"password must be at least 8 characters and contain uppercase, lowercase, number and special character")
		case errors.Is(err, usecase.ErrInvalidOTP), errors.Is(err, usecase.ErrExpiredOTP):
			respondError(w, http.StatusUnauthorized, msgInvalidOrExpiredCode)
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			respondError(w, http.StatusInternalServerError, msgSomethingWentWrong)
		}
		return
	}

	respondMessage(w, http.StatusOK, "password has been reset")
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	respondData(w, http.StatusOK, user)
}

func sessionResponse(user *model.User, token string) payload.SessionResponse {
	return payload.SessionResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}
}

// requestMeta captures where a registration came from. The location headers
// are populated by the edge proxy when present.
func requestMeta(r *http.Request) model.RegistrationMeta {
	return model.RegistrationMeta{
		IP:     r.RemoteAddr,
		Device: r.UserAgent(),
		Location: model.Location{
			Country: r.Header.Get("X-Geo-Country"),
			City:    r.Header.Get("X-Geo-City"),
		},
	}
}
