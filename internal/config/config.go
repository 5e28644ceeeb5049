package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting for the API process. It is parsed once
// in main and injected into the components that need it; nothing reads the
// environment after startup.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Token  TokenConfig
	OTP    OTPConfig
	SMTP   SMTPConfig
	Cart   CartConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT"             envDefault:"8080"`
	Environment     string        `env:"ENVIRONMENT"             envDefault:"dev"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"shoply"`
}

type TokenConfig struct {
	Secret           string        `env:"TOKEN_SECRET,required"`
	Issuer           string        `env:"TOKEN_ISSUER"             envDefault:"shoply-api"`
	SessionExpiresIn time.Duration `env:"TOKEN_SESSION_EXPIRES_IN" envDefault:"72h"`
}

type OTPConfig struct {
	SignupExpiresIn time.Duration `env:"OTP_SIGNUP_EXPIRES_IN" envDefault:"5m"`
	ResetExpiresIn  time.Duration `env:"OTP_RESET_EXPIRES_IN"  envDefault:"10m"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

type CartConfig struct {
	ReminderDelay time.Duration `env:"CART_REMINDER_DELAY" envDefault:"1m"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
