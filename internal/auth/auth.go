package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Sessions verifies the admin password against a bcrypt hash and issues
// opaque session tokens with a TTL. Tokens live in process memory.
type Sessions struct {
	hash []byte
	ttl  time.Duration

	mu     sync.Mutex
	tokens map[string]time.Time

	// overridable in tests
	now func() time.Time
}

func NewSessions(passwordHash string, ttl time.Duration) *Sessions {
	return &Sessions{
		hash:   []byte(passwordHash),
		ttl:    ttl,
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Login compares the password against the configured hash and returns a new
// session token on success.
func (s *Sessions) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = s.now().Add(s.ttl)
	s.mu.Unlock()

	return token, nil
}

// Valid reports whether token is a live session. Expired tokens are pruned
// on sight.
func (s *Sessions) Valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}
