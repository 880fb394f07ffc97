package utils

import "testing"

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		wantErr bool
	}{
		{"simple word", "cat", false},
		{"word with space", "ice cream", false},
		{"uppercase normalized", "Apple", false},
		{"surrounding whitespace trimmed", "  dog  ", false},
		{"empty", "", true},
		{"only whitespace", "   ", true},
		{"digits rejected", "cat3", true},
		{"double space rejected", "ice  cream", true},
		{"leading space inside rejected", " ice cream", false},
		{"too long", "pneumonoultramicroscopicsilico", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.word, err, tt.wantErr)
			}
		})
	}
}

func TestValidateImageRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"empty allowed", "", false},
		{"https url", "https://example.com/cat.png", false},
		{"static path", "/static/images/cat.png", false},
		{"relative path rejected", "images/cat.png", true},
		{"javascript scheme rejected", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePasscode(t *testing.T) {
	if err := ValidatePasscode(""); err == nil {
		t.Error("ValidatePasscode(\"\") = nil, want error")
	}
	if err := ValidatePasscode("abc"); err == nil {
		t.Error("ValidatePasscode(short) = nil, want error")
	}
	if err := ValidatePasscode("letters123"); err != nil {
		t.Errorf("ValidatePasscode(valid) = %v, want nil", err)
	}
}
