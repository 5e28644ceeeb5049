package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/shoply-api/internal/model"
)

// UserRepository defines the interface for account database operations.
//
// The Consume* methods are compare-and-set primitives: the filter carries
// the submitted code and the not-expired bound, and the update clears the
// OTP pair in the same single-document operation. Two concurrent calls with
// the same valid code can therefore never both succeed; the loser gets
// mongo.ErrNoDocuments.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// ConsumeSignupOTP atomically clears the signup OTP pair and marks the
	// account verified if the code matches and has not expired at now.
	ConsumeSignupOTP(ctx context.Context, email, code string, now time.Time) (*model.User, error)

	// SetResetOTP overwrites the reset OTP pair as a unit.
	SetResetOTP(ctx context.Context, email, code string, expiresAt time.Time) (*model.User, error)

	// ConsumeResetOTP atomically installs the new credential hash and clears
	// the reset OTP pair if the code matches and has not expired at now.
	ConsumeResetOTP(ctx context.Context, email, code, passwordHash string, now time.Time) (*model.User, error)

	// SetSessionToken stores an advisory copy of the last issued token.
	SetSessionToken(ctx context.Context, id, token string) error
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates a MongoDB repository for accounts and
// ensures the unique email index exists.
func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ConsumeSignupOTP(
	ctx context.Context,
	email, code string,
	now time.Time,
) (*model.User, error) {
	filter := bson.M{
		"email":                 email,
		"signup_otp":            code,
		"signup_otp_expires_at": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"verified": true, "updated_at": now},
		"$unset": bson.M{"signup_otp": "", "signup_otp_expires_at": ""},
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) SetResetOTP(
	ctx context.Context,
	email, code string,
	expiresAt time.Time,
) (*model.User, error) {
	update := bson.M{
		"$set": bson.M{
			"reset_otp":            code,
			"reset_otp_expires_at": expiresAt,
			"updated_at":           time.Now(),
		},
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ConsumeResetOTP(
	ctx context.Context,
	email, code, passwordHash string,
	now time.Time,
) (*model.User, error) {
	filter := bson.M{
		"email":                email,
		"reset_otp":            code,
		"reset_otp_expires_at": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": now},
		"$unset": bson.M{"reset_otp": "", "reset_otp_expires_at": ""},
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) SetSessionToken(ctx context.Context, id, token string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"session_token": token, "updated_at": time.Now()}},
	)

	return err
}
