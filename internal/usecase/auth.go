package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/shoply-api/internal/config"
	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
	"github.com/vasapolrittideah/shoply-api/shared/auth"
	"github.com/vasapolrittideah/shoply-api/shared/security"
)

// AuthUsecase defines the business logic for registration, verification and
// login.
type AuthUsecase interface {
	// Register creates a pending account and emails it a signup OTP. The
	// account is committed before delivery is attempted; a failed email never
	// rolls the registration back.
	Register(ctx context.Context, params RegisterParams) (*model.User, error)

	// VerifyOTP consumes the signup OTP, activates the account and issues a
	// session token. A given code can succeed at most once.
	VerifyOTP(ctx context.Context, email, code string) (*model.User, string, error)

	// Login authenticates an active account and issues a session token.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

// RegisterParams defines the parameters for account registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Meta     model.RegistrationMeta
}

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidOTP         = errors.New("invalid one-time passcode")
	ErrExpiredOTP         = errors.New("one-time passcode has expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Mailer is the slice of shared/mailer the auth flows need. Delivery is best
// effort; a failure is logged and never corrupts account state.
type Mailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

type authUsecase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtAuth  auth.JWTAuthenticator
	cfg      *config.Config
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	mailer Mailer,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		jwtAuth:  jwtAuth,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	email := normalizeEmail(params.Email)

	if !security.ValidatePasswordStrength(params.Password) {
		return nil, ErrWeakPassword
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	code, err := security.GenerateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(u.cfg.OTP.SignupExpiresIn)

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:               params.Name,
		Email:              email,
		PasswordHash:       passwordHash,
		SignupOTP:          code,
		SignupOTPExpiresAt: &expiresAt,
		Registration:       params.Meta,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}

		return nil, err
	}

	// The pending account is already committed; delivery is at-least-once
	// from the caller's point of view.
	if err := u.mailer.SendHTML([]string{email}, "Your signup code", signupOTPBody(code, u.cfg.OTP.SignupExpiresIn)); err != nil {
		u.logger.Warn().Err(err).Str("email", email).Msg("failed to deliver signup code")
	}

	return user, nil
}

func (u *authUsecase) VerifyOTP(ctx context.Context, email, code string) (*model.User, string, error) {
	email = normalizeEmail(email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrAccountNotFound
		}

		return nil, "", err
	}

	verified, err := u.userRepo.ConsumeSignupOTP(ctx, email, code, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", classifyOTPMiss(user.SignupOTP, user.SignupOTPExpiresAt, code)
		}

		return nil, "", err
	}

	token, err := u.issueSession(ctx, verified)
	if err != nil {
		return nil, "", err
	}

	return verified, token, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	// A pending account has proven nothing yet; it gets the same answer as a
	// wrong password. Accounts provisioned through an external identity
	// assertion carry no hash and cannot log in with a password at all.
	if !user.Verified || user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}

	if ok, err := security.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) issueSession(ctx context.Context, user *model.User) (string, error) {
	claims := u.jwtAuth.NewSessionClaims(user.ID.Hex(), u.cfg.Token.SessionExpiresIn)

	token, err := u.jwtAuth.GenerateToken(claims, u.cfg.Token.Secret)
	if err != nil {
		return "", err
	}

	// Advisory copy of the last issued token; it revokes nothing.
	if err := u.userRepo.SetSessionToken(ctx, user.ID.Hex(), token); err != nil {
		return "", err
	}

	return token, nil
}

// classifyOTPMiss works out why a compare-and-set consume found no document:
// the stored code matched but the pair had expired, or the code was simply
// wrong (including already consumed). Callers collapse both into one
// user-visible answer; the distinction exists for logs and tests.
func classifyOTPMiss(storedCode string, expiresAt *time.Time, submitted string) error {
	if storedCode != "" && storedCode == submitted && expiresAt != nil && time.Now().After(*expiresAt) {
		return ErrExpiredOTP
	}

	return ErrInvalidOTP
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func signupOTPBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(`
		<p>Hi,</p>
		<p>Your signup code is <strong>%s</strong>.</p>
		<p>It will expire in %s.</p>

		<p>Thank you,</p>
		<p>Shoply Team</p>
	`, code, ttl)
}
