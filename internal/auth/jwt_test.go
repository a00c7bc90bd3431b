package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateJWT(secret, userID, "jane", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "jane" || claims.Role != "admin" {
		t.Errorf("claims = %s/%s, want jane/admin", claims.Username, claims.Role)
	}
	if claims.Issuer != "employee-manager" {
		t.Errorf("Issuer = %s", claims.Issuer)
	}
}

func TestParseJWT_Expired(t *testing.T) {
	short, err := GenerateJWT("s", uuid.New(), "jane", "hr", time.Millisecond)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := ParseJWT("s", short); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("right-secret", uuid.New(), "jane", "hr", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT("wrong-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseJWT_Garbage(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := ParseJWT("s", tok); err == nil {
			t.Errorf("expected error for token %q", tok)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("unexpected hash %q", hash)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
