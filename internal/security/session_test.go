package security

import (
	"testing"
	"time"
)

func TestPlayerTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	sessionToken := NewSessionToken()

	signed, err := SignPlayerToken(secret, sessionToken, time.Hour)
	if err != nil {
		t.Fatalf("SignPlayerToken() failed: %v", err)
	}

	got, err := ParsePlayerToken(secret, signed)
	if err != nil {
		t.Fatalf("ParsePlayerToken() failed: %v", err)
	}
	if got != sessionToken {
		t.Errorf("ParsePlayerToken() = %q, want %q", got, sessionToken)
	}
}

func TestPlayerTokenRejectsWrongSecret(t *testing.T) {
	signed, err := SignPlayerToken([]byte("secret-a"), "session-1", time.Hour)
	if err != nil {
		t.Fatalf("SignPlayerToken() failed: %v", err)
	}
	if _, err := ParsePlayerToken([]byte("secret-b"), signed); err == nil {
		t.Error("ParsePlayerToken() accepted a token signed with another secret")
	}
}

func TestPlayerTokenRejectsExpired(t *testing.T) {
	signed, err := SignPlayerToken([]byte("secret"), "session-1", -time.Minute)
	if err != nil {
		t.Fatalf("SignPlayerToken() failed: %v", err)
	}
	if _, err := ParsePlayerToken([]byte("secret"), signed); err == nil {
		t.Error("ParsePlayerToken() accepted an expired token")
	}
}

func TestPlayerTokenRejectsGarbage(t *testing.T) {
	if _, err := ParsePlayerToken([]byte("secret"), "not-a-jwt"); err == nil {
		t.Error("ParsePlayerToken() accepted garbage input")
	}
}

func TestPasscodeHashAndCheck(t *testing.T) {
	hash, err := HashPasscode("letters123")
	if err != nil {
		t.Fatalf("HashPasscode() failed: %v", err)
	}
	if !CheckPasscode(hash, "letters123") {
		t.Error("CheckPasscode() rejected the correct passcode")
	}
	if CheckPasscode(hash, "letters124") {
		t.Error("CheckPasscode() accepted a wrong passcode")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied within the limit", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit was allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("a different IP was throttled by the first IP's bucket")
	}
}
