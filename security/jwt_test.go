package security

import (
	"testing"
	"time"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := CreateJWTManager("test-secret", "invoice-be", time.Hour)

	token, err := manager.GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("claims.Subject = %q, want user-1", claims.Subject)
	}
	if claims.Username != "alice" {
		t.Errorf("claims.Username = %q, want alice", claims.Username)
	}
	if claims.Issuer != "invoice-be" {
		t.Errorf("claims.Issuer = %q, want invoice-be", claims.Issuer)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := CreateJWTManager("test-secret", "invoice-be", -time.Minute)

	token, err := manager.GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := CreateJWTManager("test-secret", "invoice-be", time.Hour)
	other := CreateJWTManager("other-secret", "invoice-be", time.Hour)

	token, err := manager.GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestJWTManager_Garbage(t *testing.T) {
	manager := CreateJWTManager("test-secret", "invoice-be", time.Hour)

	if _, err := manager.ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted a malformed token")
	}
}
