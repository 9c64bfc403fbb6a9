package utils

import (
	"testing"
	"time"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid password", "secret1!", true},
		{"too short", "a1!", false},
		{"missing number", "secret!!", false},
		{"missing special character", "secret123", false},
		{"empty", "", false},
		{"symbols count as special", "pass2word$", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestValidateGraduationYear(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name string
		year int
		want bool
	}{
		{"lower bound", 2000, true},
		{"below lower bound", 1999, false},
		{"current year", currentYear, true},
		{"five years out", currentYear + 5, true},
		{"six years out", currentYear + 6, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateGraduationYear(tt.year); got != tt.want {
				t.Errorf("ValidateGraduationYear(%d) = %v, want %v", tt.year, got, tt.want)
			}
		})
	}
}
