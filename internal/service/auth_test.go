package service

import (
	"errors"
	"testing"
	"time"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newAuth() *AuthService {
	return NewAuthService(&config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret},
	})
}

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestVerifyValidToken(t *testing.T) {
	a := newAuth()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id":       7, // issued as a JSON number, like the auth service does
		"userName": "maria",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	claims, err := a.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got := claims.Identity(); got != "7" {
		t.Errorf("Identity = %q, want \"7\"", got)
	}
	if claims.UserName != "maria" {
		t.Errorf("UserName = %q", claims.UserName)
	}
}

func TestVerifySubjectFallback(t *testing.T) {
	a := newAuth()
	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	claims, err := a.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got := claims.Identity(); got != "42" {
		t.Errorf("Identity = %q, want \"42\"", got)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	if _, err := newAuth().Verify(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("err = %v, want ErrMissingToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{"id": 7})
	if _, err := newAuth().Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	if _, err := newAuth().Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	if _, err := newAuth().Verify("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
