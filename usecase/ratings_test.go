package usecase

import (
	"strings"
	"testing"
)

func TestValidateRating(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		label     string
		wantLabel string
		wantErr   bool
	}{
		{"valid rating", 5, "Great", "Great", false},
		{"lowest valid score", 1, "Poor", "Poor", false},
		{"score below range", 0, "Bad", "", true},
		{"score above range", 6, "Amazing", "", true},
		{"negative score", -1, "Bad", "", true},
		{"label trimmed", 3, "  Ok  ", "Ok", false},
		{"empty label", 4, "", "", true},
		{"whitespace label", 4, "   ", "", true},
		{"label too long", 4, strings.Repeat("a", 101), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := ValidateRating(tt.score, tt.label)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRating(%d, %q) error = %v, wantErr %v", tt.score, tt.label, err, tt.wantErr)
			}
			if label != tt.wantLabel {
				t.Errorf("ValidateRating(%d, %q) label = %q, want %q", tt.score, tt.label, label, tt.wantLabel)
			}
		})
	}
}
