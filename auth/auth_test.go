package auth

import (
	"testing"
	"time"

	"pranerpujo/middleware"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken("507f1f77bcf86cd799439011", time.Now())
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}

	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateJWT rejected fresh token: %v", err)
	}
	if claims.AdminID != "507f1f77bcf86cd799439011" {
		t.Fatalf("wrong admin id in claims: %s", claims.AdminID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := NewToken("507f1f77bcf86cd799439011", time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	if _, err := middleware.ValidateJWT("Bearer " + token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestMalformedAuthorizationRejected(t *testing.T) {
	for _, header := range []string{"", "Bearer ", "Basic abc", "not-a-token"} {
		if _, err := middleware.ValidateJWT(header); err == nil {
			t.Errorf("header %q must be rejected", header)
		}
	}
}
