package flight

import "testing"

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{"standard identifier", "AA1234", true},
		{"lowercase is normalized", "aa1234", true},
		{"digit in airline code", "U21843", true},
		{"minimum length", "AA1", true},
		{"maximum length", "AA12345", true},
		{"too short", "A1", false},
		{"too many digits", "AA123456", false},
		{"way too long", "AA123456789", false},
		{"letters past the airline code", "AAA123", false},
		{"special characters", "AA12!@", false},
		{"whitespace", "AA 123", false},
		{"empty string", "", false},
		{"digits only prefix ok", "121234", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidIdentifier(tt.token); got != tt.valid {
				t.Errorf("ValidIdentifier(%q) = %v, want %v", tt.token, got, tt.valid)
			}
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	if got := NormalizeIdentifier("aa1234"); got != "AA1234" {
		t.Errorf("NormalizeIdentifier(\"aa1234\") = %q, want \"AA1234\"", got)
	}
	if got := NormalizeIdentifier("AA1234"); got != "AA1234" {
		t.Errorf("NormalizeIdentifier(\"AA1234\") = %q, want \"AA1234\"", got)
	}
}
