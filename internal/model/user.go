package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Location is the coarse location captured when an account registers.
type Location struct {
	Country string `bson:"country,omitempty" json:"country,omitempty"`
	City    string `bson:"city,omitempty"    json:"city,omitempty"`
}

// RegistrationMeta records where a registration request came from.
// Informational only, never consulted for authorization decisions.
type RegistrationMeta struct {
	IP       string   `bson:"ip,omitempty"       json:"-"`
	Device   string   `bson:"device,omitempty"   json:"-"`
	Location Location `bson:"location,omitempty" json:"-"`
}

// User represents an account document. The credential hash, OTP pairs and
// session token never leave the process in JSON responses.
//
// An OTP and its expiry are always written and cleared together; the
// repository enforces that with single-document updates.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"           json:"id"`
	Name         string        `bson:"name"                    json:"name"`
	Email        string        `bson:"email"                   json:"email"`
	PasswordHash string        `bson:"password_hash,omitempty" json:"-"`
	Verified     bool          `bson:"verified"                json:"verified"`

	SignupOTP          string     `bson:"signup_otp,omitempty"            json:"-"`
	SignupOTPExpiresAt *time.Time `bson:"signup_otp_expires_at,omitempty" json:"-"`
	ResetOTP           string     `bson:"reset_otp,omitempty"             json:"-"`
	ResetOTPExpiresAt  *time.Time `bson:"reset_otp_expires_at,omitempty"  json:"-"`

	// SessionToken is an advisory copy of the last issued token. Tokens are
	// stateless; persisting one here revokes nothing.
	SessionToken string `bson:"session_token,omitempty" json:"-"`

	Registration RegistrationMeta `bson:"registration,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
