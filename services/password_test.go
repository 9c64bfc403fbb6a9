package services

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	password := "secret1!"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hashed == password {
		t.Fatal("HashPassword() returned the plaintext password")
	}

	match, err := VerifyPassword(hashed, password)
	if err != nil {
		t.Fatalf("VerifyPassword() error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() rejected the correct password")
	}

	match, err = VerifyPassword(hashed, "wrong2pass!")
	if err != nil {
		t.Fatalf("VerifyPassword() error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() accepted an incorrect password")
	}
}

func TestHashPasswordRejectsWeakPassword(t *testing.T) {
	weak := []string{"", "short", "nonumbers!", "nospecial1"}
	for _, password := range weak {
		if _, err := HashPassword(password); err == nil {
			t.Errorf("HashPassword(%q) accepted a weak password", password)
		}
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-hash", "secret1!"); err == nil {
		t.Error("VerifyPassword() accepted a malformed stored hash")
	}
}
