package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/shoply-api/internal/model"
)

// fakeUserRepo mirrors the compare-and-set contract of the mongo
// repository: every Consume* call checks and clears the OTP pair under one
// lock, so two concurrent calls with the same code cannot both succeed.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func copyUser(user *model.User) *model.User {
	clone := *user
	return &clone
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, duplicateKeyErr()
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.Email] = copyUser(user)

	return copyUser(user), nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID.Hex() == id {
			return copyUser(user), nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return copyUser(user), nil
}

func (r *fakeUserRepo) ConsumeSignupOTP(
	_ context.Context,
	email, code string,
	now time.Time,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok || user.SignupOTP == "" || user.SignupOTP != code ||
		user.SignupOTPExpiresAt == nil || !user.SignupOTPExpiresAt.After(now) {
		return nil, mongo.ErrNoDocuments
	}

	user.SignupOTP = ""
	user.SignupOTPExpiresAt = nil
	user.Verified = true
	user.UpdatedAt = now

	return copyUser(user), nil
}

func (r *fakeUserRepo) SetResetOTP(
	_ context.Context,
	email, code string,
	expiresAt time.Time,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	user.ResetOTP = code
	user.ResetOTPExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()

	return copyUser(user), nil
}

func (r *fakeUserRepo) ConsumeResetOTP(
	_ context.Context,
	email, code, passwordHash string,
	now time.Time,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok || user.ResetOTP == "" || user.ResetOTP != code ||
		user.ResetOTPExpiresAt == nil || !user.ResetOTPExpiresAt.After(now) {
		return nil, mongo.ErrNoDocuments
	}

	user.ResetOTP = ""
	user.ResetOTPExpiresAt = nil
	user.PasswordHash = passwordHash
	user.UpdatedAt = now

	return copyUser(user), nil
}

func (r *fakeUserRepo) SetSessionToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID.Hex() == id {
			user.SessionToken = token
			return nil
		}
	}

	return nil
}

// stored returns the live account record for assertions on persisted state.
func (r *fakeUserRepo) stored(email string) *model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil
	}

	return copyUser(user)
}

// expireSignupOTP backdates the stored signup pair so the next consume sees
// it as expired.
func (r *fakeUserRepo) expireSignupOTP(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	past := time.Now().Add(-time.Minute)
	r.users[email].SignupOTPExpiresAt = &past
}

func (r *fakeUserRepo) expireResetOTP(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	past := time.Now().Add(-time.Minute)
	r.users[email].ResetOTPExpiresAt = &past
}

type fakeMailer struct {
	mu    sync.Mutex
	err   error
	sends []fakeEmail
}

type fakeEmail struct {
	to      []string
	subject string
	body    string
}

func (m *fakeMailer) SendHTML(to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.sends = append(m.sends, fakeEmail{to: to, subject: subject, body: body})

	return nil
}

func (m *fakeMailer) sent() []fakeEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]fakeEmail(nil), m.sends...)
}
