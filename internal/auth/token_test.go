package auth

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()

	token, err := SignToken("usr_abc123", testSecret, now)
	if err != nil {
		t.Fatalf("SignToken error = %v", err)
	}

	uid, err := VerifyToken(token, testSecret, now)
	if err != nil {
		t.Fatalf("VerifyToken error = %v", err)
	}
	if uid != "usr_abc123" {
		t.Fatalf("VerifyToken uid = %q, want usr_abc123", uid)
	}
}

func TestTokenExpiry(t *testing.T) {
	issued := time.Now()

	token, err := SignToken("usr_abc123", testSecret, issued)
	if err != nil {
		t.Fatalf("SignToken error = %v", err)
	}

	t.Run("just inside window", func(t *testing.T) {
		if _, err := VerifyToken(token, testSecret, issued.Add(TokenMaxAge-time.Minute)); err != nil {
			t.Fatalf("VerifyToken inside window error = %v", err)
		}
	})

	t.Run("past window", func(t *testing.T) {
		_, err := VerifyToken(token, testSecret, issued.Add(TokenMaxAge+time.Minute))
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("VerifyToken past window error = %v, want ErrTokenExpired", err)
		}
	})
}

func TestTokenBadSignature(t *testing.T) {
	now := time.Now()

	token, err := SignToken("usr_abc123", testSecret, now)
	if err != nil {
		t.Fatalf("SignToken error = %v", err)
	}

	_, err = VerifyToken(token, []byte("other-secret"), now)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("VerifyToken wrong secret error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	now := time.Now()
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := VerifyToken(tok, testSecret, now); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("VerifyToken(%q) error = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestTokenRotatedSecretInvalidatesAll(t *testing.T) {
	now := time.Now()

	token, err := SignToken("usr_abc123", []byte("old-secret"), now)
	if err != nil {
		t.Fatalf("SignToken error = %v", err)
	}

	if _, err := VerifyToken(token, []byte("new-secret"), now); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("VerifyToken after rotation error = %v, want ErrTokenInvalid", err)
	}
}
