package identity

import (
	"os"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password SignUp accepts.
const MinPasswordLength = 6

// Config holds token signing settings.
type Config struct {
	// Secret signs session tokens. When empty, New generates a random
	// secret, so tokens do not survive a restart.
	Secret []byte

	// TokenTTL is how long a signed-in token stays valid.
	TokenTTL time.Duration

	// Issuer is written into and checked on every token.
	Issuer string
}

// DefaultConfig returns a Config with a 24h token lifetime and no secret.
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
		Issuer:   "essence",
	}
}

// ConfigFromEnv reads ESSENCE_JWT_SECRET and ESSENCE_TOKEN_TTL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if s := strings.TrimSpace(os.Getenv("ESSENCE_JWT_SECRET")); s != "" {
		cfg.Secret = []byte(s)
	}
	if d := os.Getenv("ESSENCE_TOKEN_TTL"); d != "" {
		if v, err := time.ParseDuration(d); err == nil && v > 0 {
			cfg.TokenTTL = v
		}
	}
	return cfg
}
