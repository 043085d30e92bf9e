package jwt

import (
	"errors"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

type stubUUID struct{}

func (stubUUID) Generate() string { return "token-id-1" }

var testSecret = []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

func newTestJWT(t *testing.T, now time.Time) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:     testSecret,
		Issuer:     "veriauth-test",
		Audiences:  []string{"veriauth"},
		TTLMinutes: 15 * time.Minute,
		Clock:      stubClock{now: now},
		UUID:       stubUUID{},
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}
	return s
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too-short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("NewHS512() error = %v, want ErrSigningKeyTooShort", err)
	}
}

func TestSymmetricGenerateVerify(t *testing.T) {
	s := newTestJWT(t, time.Now())

	token, err := s.Generate(7, "user@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.UserEmail != "user@example.com" {
		t.Errorf("UserEmail = %q", claims.UserEmail)
	}
	if claims.Subject != "7" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "7")
	}
}

func TestSymmetricVerifyExpiredToken(t *testing.T) {
	s := newTestJWT(t, time.Now().Add(-time.Hour))

	token, err := s.Generate(7, "user@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := s.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestSymmetricVerifyWrongSecret(t *testing.T) {
	s := newTestJWT(t, time.Now())

	token, err := s.Generate(7, "user@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	other := newTestJWT(t, time.Now())
	other.secret = []byte("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")

	if _, err := other.Verify(token); err == nil {
		t.Fatal("Verify() error = nil with a different secret")
	}
}
