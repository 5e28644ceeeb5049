package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/shoply-api/internal/config"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
	"github.com/vasapolrittideah/shoply-api/shared/security"
)

// PasswordResetUsecase defines the business logic for the forgot/reset
// password flow. A reset is authorized by the OTP alone; the previous
// credential is never required.
type PasswordResetUsecase interface {
	// RequestPasswordReset writes a reset OTP pair and emails the code. It
	// reports success whether or not the account exists so callers cannot
	// probe for registered emails.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes the reset OTP and installs the new credential
	// hash in the same atomic transition.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	cfg      *config.Config
	logger   *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer Mailer,
	cfg *config.Config,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email does
			// not exist.
			return nil
		}

		return err
	}

	code, err := security.GenerateOTP()
	if err != nil {
		return err
	}

	// Overwrites any in-flight reset pair; only the newest code works.
	if _, err := u.userRepo.SetResetOTP(ctx, email, code, time.Now().Add(u.cfg.OTP.ResetExpiresIn)); err != nil {
		return err
	}

	if err := u.mailer.SendHTML([]string{user.Email}, "Password reset code", resetOTPBody(code, u.cfg.OTP.ResetExpiresIn)); err != nil {
		u.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to deliver reset code")
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	if !security.ValidatePasswordStrength(newPassword) {
		return ErrWeakPassword
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Same answer as a wrong code; see RequestPasswordReset.
			return ErrInvalidOTP
		}

		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.ConsumeResetOTP(ctx, email, code, passwordHash, time.Now()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return classifyOTPMiss(user.ResetOTP, user.ResetOTPExpiresAt, code)
		}

		return err
	}

	return nil
}

func resetOTPBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>Your reset code is <strong>%s</strong>. It will expire in %s.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Shoply Team</p>
	`, code, ttl)
}
