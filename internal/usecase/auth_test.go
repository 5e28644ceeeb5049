package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/shoply-api/internal/config"
	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/shared/auth"
	"github.com/vasapolrittideah/shoply-api/shared/security"
)

const testPassword = "Strong1!pass"

func testConfig() *config.Config {
	return &config.Config{
		Token: config.TokenConfig{
			Secret:           "test-secret",
			Issuer:           "shoply-api",
			SessionExpiresIn: time.Hour,
		},
		OTP: config.OTPConfig{
			SignupExpiresIn: 5 * time.Minute,
			ResetExpiresIn:  10 * time.Minute,
		},
	}
}

func newTestAuthUsecase(userRepo *fakeUserRepo, mailer *fakeMailer) AuthUsecase {
	nop := zerolog.Nop()
	jwtAuth := auth.NewJWTAuthenticator("shoply-api", "shoply-api")

	return NewAuthUsecase(userRepo, mailer, jwtAuth, testConfig(), &nop)
}

func registerTestUser(t *testing.T, userRepo *fakeUserRepo, u AuthUsecase, email string) *model.User {
	t.Helper()

	_, err := u.Register(context.Background(), RegisterParams{
		Name:     "Alice",
		Email:    email,
		Password: testPassword,
	})
	require.NoError(t, err)

	stored := userRepo.stored(email)
	require.NotNil(t, stored)

	return stored
}

func TestRegister(t *testing.T) {
	t.Run("creates pending account and emails code", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		mailer := &fakeMailer{}
		u := newTestAuthUsecase(userRepo, mailer)

		user, err := u.Register(context.Background(), RegisterParams{
			Name:     "Alice",
			Email:    "  Alice@Example.COM ",
			Password: testPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.False(t, user.Verified)

		stored := userRepo.stored("alice@example.com")
		require.NotNil(t, stored)
		assert.Len(t, stored.SignupOTP, security.OTPLength)
		require.NotNil(t, stored.SignupOTPExpiresAt)
		assert.True(t, stored.SignupOTPExpiresAt.After(time.Now()))
		assert.NotEqual(t, testPassword, stored.PasswordHash)

		sent := mailer.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, []string{"alice@example.com"}, sent[0].to)
		assert.Contains(t, sent[0].body, stored.SignupOTP)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		registerTestUser(t, userRepo, u, "alice@example.com")

		_, err := u.Register(context.Background(), RegisterParams{
			Name:     "Mallory",
			Email:    "alice@example.com",
			Password: testPassword,
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		_, err := u.Register(context.Background(), RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "weak",
		})
		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.Nil(t, userRepo.stored("alice@example.com"))
	})

	t.Run("delivery failure does not roll back the account", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		mailer := &fakeMailer{err: errors.New("smtp down")}
		u := newTestAuthUsecase(userRepo, mailer)

		_, err := u.Register(context.Background(), RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)
		assert.NotNil(t, userRepo.stored("alice@example.com"))
	})
}

func TestVerifyOTP(t *testing.T) {
	t.Run("activates the account and issues a token", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		pending := registerTestUser(t, userRepo, u, "alice@example.com")

		user, token, err := u.VerifyOTP(context.Background(), "alice@example.com", pending.SignupOTP)
		require.NoError(t, err)
		assert.True(t, user.Verified)
		assert.NotEmpty(t, token)

		stored := userRepo.stored("alice@example.com")
		assert.Empty(t, stored.SignupOTP)
		assert.Nil(t, stored.SignupOTPExpiresAt)
		assert.Equal(t, token, stored.SessionToken)
	})

	t.Run("a consumed code cannot be replayed", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		pending := registerTestUser(t, userRepo, u, "alice@example.com")

		_, _, err := u.VerifyOTP(context.Background(), "alice@example.com", pending.SignupOTP)
		require.NoError(t, err)

		_, _, err = u.VerifyOTP(context.Background(), "alice@example.com", pending.SignupOTP)
		assert.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		registerTestUser(t, userRepo, u, "alice@example.com")

		_, _, err := u.VerifyOTP(context.Background(), "alice@example.com", "000000")
		assert.ErrorIs(t, err, ErrInvalidOTP)

		stored := userRepo.stored("alice@example.com")
		assert.False(t, stored.Verified)
		assert.NotEmpty(t, stored.SignupOTP)
	})

	t.Run("rejects an expired code", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		pending := registerTestUser(t, userRepo, u, "alice@example.com")
		userRepo.expireSignupOTP("alice@example.com")

		_, _, err := u.VerifyOTP(context.Background(), "alice@example.com", pending.SignupOTP)
		assert.ErrorIs(t, err, ErrExpiredOTP)
	})

	t.Run("unknown email", func(t *testing.T) {
		u := newTestAuthUsecase(newFakeUserRepo(), &fakeMailer{})

		_, _, err := u.VerifyOTP(context.Background(), "nobody@example.com", "123456")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("concurrent submits of the same code succeed exactly once", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		pending := registerTestUser(t, userRepo, u, "alice@example.com")

		const attempts = 8
		errs := make([]error, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _, errs[i] = u.VerifyOTP(context.Background(), "alice@example.com", pending.SignupOTP)
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
			} else {
				assert.ErrorIs(t, err, ErrInvalidOTP)
			}
		}
		assert.Equal(t, 1, successes)
	})
}

func TestLogin(t *testing.T) {
	setupVerified := func(t *testing.T) (*fakeUserRepo, AuthUsecase) {
		t.Helper()

		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		pending := registerTestUser(t, userRepo, u, "alice@example.com")
		_, _, err := u.VerifyOTP(context.Background(), "alice@example.com", pending.SignupOTP)
		require.NoError(t, err)

		return userRepo, u
	}

	t.Run("valid credentials", func(t *testing.T) {
		_, u := setupVerified(t)

		user, token, err := u.Login(context.Background(), "Alice@Example.com", testPassword)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, token)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, u := setupVerified(t)

		_, _, err := u.Login(context.Background(), "nobody@example.com", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, u := setupVerified(t)

		_, _, err := u.Login(context.Background(), "alice@example.com", "Wrong1!pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("pending account cannot log in", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		registerTestUser(t, userRepo, u, "pending@example.com")

		_, _, err := u.Login(context.Background(), "pending@example.com", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("account without a password hash cannot log in", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		u := newTestAuthUsecase(userRepo, &fakeMailer{})

		_, err := userRepo.CreateUser(context.Background(), &model.User{
			Name:     "External",
			Email:    "external@example.com",
			Verified: true,
		})
		require.NoError(t, err)

		_, _, err = u.Login(context.Background(), "external@example.com", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
