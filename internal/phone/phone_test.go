package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare 10 digits", "5321234567", "+905321234567", true},
		{"national with leading zero", "05321234567", "+905321234567", true},
		{"country code", "905321234567", "+905321234567", true},
		{"plus prefix", "+90 532 123 45 67", "+905321234567", true},
		{"double zero prefix", "00905321234567", "+905321234567", true},
		{"spaces and dashes", "0532-123-45-67", "+905321234567", true},
		{"landline rejected", "02121234567", "", false},
		{"too short", "532123", "", false},
		{"too long", "53212345678", "", false},
		{"empty", "", "", false},
		{"letters only", "telefon", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToE164(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
