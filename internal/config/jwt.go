package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrJWTSecretMissing is returned when JWT_SECRET is unset. The server treats it as
// "preset API auth disabled" rather than a startup failure.
var ErrJWTSecretMissing = errors.New("JWT_SECRET is required but not set")

// DefaultJWTExpirationHours is the token lifetime when JWT_EXPIRATION_HOURS is unset.
const DefaultJWTExpirationHours = 24

// JWTConfig holds the HS256 secret and token lifetime for preset API tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET and JWT_EXPIRATION_HOURS from the process environment.
func NewJWTConfig() (*JWTConfig, error) {
	return JWTConfigFromEnv(os.Getenv)
}

// JWTConfigFromEnv builds the configuration from getenv. The secret is required and
// the lifetime must be at least one hour.
func JWTConfigFromEnv(getenv func(string) string) (*JWTConfig, error) {
	secret := strings.TrimSpace(getenv("JWT_SECRET"))
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}

	hours := DefaultJWTExpirationHours
	if raw := strings.TrimSpace(getenv("JWT_EXPIRATION_HOURS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", raw, err)
		}
		hours = parsed
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", hours)
	}

	return &JWTConfig{Secret: secret, ExpirationHours: hours}, nil
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
