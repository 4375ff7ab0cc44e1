package service

import (
	"errors"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity payload carried by handshake tokens. The auth
// service that issues them puts the numeric account id in "id"; Subject is
// accepted as a fallback for tokens minted elsewhere.
type Claims struct {
	UserID   model.UserID `json:"id,omitempty"`
	UserName string       `json:"userName,omitempty"`
	Email    string       `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the stable user identifier the token vouches for.
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID.String()
	}
	return c.Subject
}

// Auther validates the bearer credential presented at connection time.
type Auther interface {
	Verify(token string) (*Claims, error)
}

type AuthService struct {
	secret []byte
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{secret: []byte(cfg.Auth.JWTSecret)}
}

// Verify decodes and checks an HMAC-signed token. It fails with
// ErrMissingToken when none was supplied and ErrInvalidToken on a bad
// signature, malformed token, or expiry. Either failure must reject the
// connection before any presence state is created.
func (s *AuthService) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
