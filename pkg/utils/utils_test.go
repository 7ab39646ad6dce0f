package utils

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateShareCodeFormat(t *testing.T) {
	tg := NewTokenGenerator()
	v := NewValidator()

	code := tg.GenerateShareCode()
	if !v.ValidateShareCode(code) {
		t.Fatalf("generated share code %q does not match expected format", code)
	}

	if code == tg.GenerateShareCode() {
		t.Fatal("two generated share codes collided")
	}
}

func TestPasswordHasherRoundTrip(t *testing.T) {
	ph := NewPasswordHasher(bcrypt.MinCost)

	hash, err := ph.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if !ph.Compare(hash, "correct horse battery staple") {
		t.Error("Compare rejected the correct password")
	}
	if ph.Compare(hash, "wrong password") {
		t.Error("Compare accepted a wrong password")
	}
}

func TestPasswordHasherClampsCost(t *testing.T) {
	ph := NewPasswordHasher(99)
	if ph.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", ph.cost, bcrypt.DefaultCost)
	}
}

func TestJWTManagerRoundTrip(t *testing.T) {
	jm := NewJWTManager("test-secret", 1)

	token, err := jm.GenerateToken(42, "amelia@example.com", "Amelia")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := jm.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "amelia@example.com" || claims.Name != "Amelia" {
		t.Errorf("claims = %+v, want user 42 amelia@example.com Amelia", claims)
	}
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", 1).GenerateToken(1, "a@b.co", "A")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewJWTManager("secret-b", 1).ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	valid := []string{"user@example.com", "first.last+tag@sub.domain.org"}
	for _, email := range valid {
		if !v.ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "plainaddress", "@no-local.com", "user@", "user@host"}
	for _, email := range invalid {
		if v.ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	v := NewValidator()

	if got := v.SanitizeInput("  Tokyo\x00 trip\n "); got != "Tokyo trip" {
		t.Errorf("SanitizeInput = %q, want %q", got, "Tokyo trip")
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	if got := ExportFilename("Japan in spring!", now); got != "Japaninspring_20250314092653.json" {
		t.Errorf("ExportFilename = %q", got)
	}
	if got := ExportFilename("日本", now); got != "trip_20250314092653.json" {
		t.Errorf("ExportFilename for non-ASCII name = %q", got)
	}
}

func TestPaginationBounds(t *testing.T) {
	p := NewPagination(0, 500, 95)
	if p.Page != 1 {
		t.Errorf("Page = %d, want 1", p.Page)
	}
	if p.Limit != 100 {
		t.Errorf("Limit = %d, want 100", p.Limit)
	}
	if p.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", p.TotalPages)
	}

	p = NewPagination(2, 10, 95)
	if p.TotalPages != 10 {
		t.Errorf("TotalPages = %d, want 10", p.TotalPages)
	}
	if p.GetOffset() != 10 {
		t.Errorf("GetOffset = %d, want 10", p.GetOffset())
	}
}
