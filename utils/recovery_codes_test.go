package utils

import (
	"regexp"
	"testing"
)

func TestGenerateRecoveryCodes(t *testing.T) {
	codes, err := GenerateRecoveryCodes()
	if err != nil {
		t.Fatalf("GenerateRecoveryCodes() error: %v", err)
	}

	if len(codes) != NumRecoveryCodes {
		t.Fatalf("generated %d codes, want %d", len(codes), NumRecoveryCodes)
	}

	format := regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}$`)
	seen := make(map[string]bool)
	for _, code := range codes {
		if !format.MatchString(code) {
			t.Errorf("code %q does not match expected format", code)
		}
		if seen[code] {
			t.Errorf("duplicate recovery code %q", code)
		}
		seen[code] = true
	}
}

func TestHashRecoveryCodes(t *testing.T) {
	codes := []string{"ABCD-1234", "EF01-5678"}

	hashed := HashRecoveryCodes(codes)
	if len(hashed) != len(codes) {
		t.Fatalf("hashed %d codes, want %d", len(hashed), len(codes))
	}

	for i, code := range codes {
		if hashed[i] != HashString(code) {
			t.Errorf("hashed[%d] does not match HashString(%q)", i, code)
		}
		if hashed[i] == code {
			t.Errorf("code %q stored unhashed", code)
		}
	}
}
