package auth

import "testing"

func TestEmailFromClaims(t *testing.T) {
	if email, ok := emailFromClaims(map[string]interface{}{"email": "anna@example.com"}); !ok || email != "anna@example.com" {
		t.Errorf("Expected email to be extracted, got %q / %v", email, ok)
	}

	// Phone-auth identities verify without an email claim; the handlers
	// must reject them instead of asserting nil to string.
	if _, ok := emailFromClaims(map[string]interface{}{"phone_number": "+37120000000"}); ok {
		t.Error("Expected missing email claim to be rejected")
	}
	if _, ok := emailFromClaims(map[string]interface{}{"email": nil}); ok {
		t.Error("Expected nil email claim to be rejected")
	}
	if _, ok := emailFromClaims(map[string]interface{}{"email": ""}); ok {
		t.Error("Expected empty email claim to be rejected")
	}
	if _, ok := emailFromClaims(map[string]interface{}{"email": 42}); ok {
		t.Error("Expected non-string email claim to be rejected")
	}
}
