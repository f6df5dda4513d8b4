package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// Verification errors
var (
	// ErrInvalidToken covers malformed tokens, bad signatures and
	// missing claims
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken marks a token past its expiry
	ErrExpiredToken = errors.New("token expired")
)

// Principal is the verified identity behind a request. Registration and
// token issuance live in the external identity service; this package only
// validates what that service signed.
type Principal struct {
	// ID is the stable account identifier (the token subject)
	ID string

	// Name is the account's display name
	Name string

	// Gender is the gender the account registered with
	Gender models.Gender
}

// Verifier resolves a bearer token to a principal
type Verifier interface {
	// Verify checks the token and extracts its principal
	Verify(token string) (*Principal, error)
}

// Config holds configuration for the token verifier
type Config struct {
	// Secret is the shared HS256 signing key
	Secret string

	// Issuer, when set, must match the token's iss claim
	Issuer string
}

// TokenVerifier validates HS256 JWTs issued by the identity service
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a token verifier
func NewTokenVerifier(cfg *Config) (*TokenVerifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Secret == "" {
		return nil, errors.New("secret cannot be empty")
	}

	return &TokenVerifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}, nil
}

// Verify checks the token signature and expiry and extracts the principal.
func (v *TokenVerifier) Verify(token string) (*Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if v.issuer != "" {
		if issuer, _ := claims["iss"].(string); issuer != v.issuer {
			return nil, fmt.Errorf("%w: wrong issuer", ErrInvalidToken)
		}
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	name, _ := claims["name"].(string)
	gender, _ := claims["gender"].(string)

	return &Principal{
		ID:     subject,
		Name:   name,
		Gender: models.Gender(gender),
	}, nil
}

// Issue signs a token for a principal. The production issuer is the external
// identity service; this mirror of its format backs local development and
// tests.
func (v *TokenVerifier) Issue(principal *Principal, ttl time.Duration) (string, error) {
	if principal == nil || principal.ID == "" {
		return "", errors.New("principal ID cannot be empty")
	}

	claims := jwt.MapClaims{
		"sub":    principal.ID,
		"name":   principal.Name,
		"gender": string(principal.Gender),
		"exp":    time.Now().Add(ttl).Unix(),
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
