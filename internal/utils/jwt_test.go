package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("test-secret", 42, "ORG", true, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if got := claims["sub"].(float64); got != 42 {
		t.Errorf("sub = %v, want 42", got)
	}
	if got := claims["role"].(string); got != "ORG" {
		t.Errorf("role = %q, want ORG", got)
	}
	if got := claims["su"].(bool); !got {
		t.Errorf("su = %v, want true", got)
	}
	if until := time.Until(at.Exp); until < 14*time.Minute || until > 16*time.Minute {
		t.Errorf("expiry not ~15m out: %v", until)
	}
}

func TestRefreshTokenHashStable(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Errorf("raw token length = %d, want 96", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
		t.Error("hash not deterministic")
	}
	other, _ := NewRefreshToken(7)
	if rt.Raw == other.Raw {
		t.Error("two refresh tokens collided")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}
