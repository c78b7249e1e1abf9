package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newSessions(t *testing.T, password string, ttl time.Duration) *Sessions {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return NewSessions(string(hash), ttl)
}

func TestLoginAndValidate(t *testing.T) {
	s := newSessions(t, "hunter2", time.Hour)

	token, err := s.Login("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !s.Valid(token) {
		t.Error("fresh token should be valid")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newSessions(t, "hunter2", time.Hour)

	if _, err := s.Login("hunter3"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUnknownTokenIsInvalid(t *testing.T) {
	s := newSessions(t, "hunter2", time.Hour)

	if s.Valid("not-a-token") {
		t.Error("unknown token should be invalid")
	}
}

func TestTokenExpiry(t *testing.T) {
	s := newSessions(t, "hunter2", time.Minute)

	token, err := s.Login("hunter2")
	if err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if s.Valid(token) {
		t.Error("token should have expired")
	}
	// Expired tokens are pruned, so they stay invalid after the clock rolls back.
	s.now = time.Now
	if s.Valid(token) {
		t.Error("pruned token should stay invalid")
	}
}

func TestTokensAreUnique(t *testing.T) {
	s := newSessions(t, "hunter2", time.Hour)

	a, _ := s.Login("hunter2")
	b, _ := s.Login("hunter2")
	if a == b {
		t.Error("each login must issue a distinct token")
	}
}
