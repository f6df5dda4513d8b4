package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the process configuration, decoded from the environment
type Config struct {
	// HTTPAddr is the listen address of the gateway
	HTTPAddr string `env:"HTTP_ADDR,default=:8080"`

	// PublicBaseURL is the externally reachable base URL, used in join
	// links and QR codes
	PublicBaseURL string `env:"PUBLIC_BASE_URL,default=http://localhost:8080"`

	// AllowedOrigins are the CORS origins, separated by semicolons
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=*"`

	// RedisAddr is the Redis host:port
	RedisAddr string `env:"REDIS_ADDR,default=localhost:6379"`

	// RedisPassword is the Redis password, empty for none
	RedisPassword string `env:"REDIS_PASSWORD,default="`

	// RedisDB is the Redis database number
	RedisDB int `env:"REDIS_DB,default=0"`

	// TokenSecret is the shared HS256 key of the identity service
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// TokenIssuer is the expected iss claim, empty to skip the check
	TokenIssuer string `env:"TOKEN_ISSUER,default="`

	// ChaosMultiplier scales matched-card drink values in chaos mode
	ChaosMultiplier int `env:"CHAOS_MULTIPLIER,default=2"`

	// Debug switches on development logging
	Debug bool `env:"DEBUG,default=false"`
}

// Load reads an optional .env file and decodes the environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set directly
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	return &cfg, nil
}
