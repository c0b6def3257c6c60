package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testJWTSecret, "HS256", ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected subject 42, got %d", userID)
	}
}

func TestTokenExpiry(t *testing.T) {
	const ttl = time.Hour
	svc := newTestTokenService(t, ttl)

	// Issued almost a full TTL ago: still inside the window.
	svc.now = func() time.Time { return time.Now().Add(-ttl + time.Second) }
	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token just inside its TTL should verify, got %v", err)
	}

	// Issued just past a full TTL ago: expired.
	svc.now = func() time.Time { return time.Now().Add(-ttl - time.Second) }
	token, err = svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(9)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] != 'A' {
		sig[0] = 'A'
	} else {
		sig[0] = 'B'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	other, err := NewTokenService("a-completely-different-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := other.Issue(3)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestNewTokenServiceRejectsNonHMAC(t *testing.T) {
	if _, err := NewTokenService(testJWTSecret, "RS256", time.Hour); err == nil {
		t.Fatal("expected an error for a non-HMAC algorithm")
	}
	if _, err := NewTokenService(testJWTSecret, "bogus", time.Hour); err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
}
