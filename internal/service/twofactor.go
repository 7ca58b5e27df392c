package service

import (
	"crypto/rand"
	"encoding/base32"
	"sync"

	"github.com/ironbark/buildmat/internal/domain"

	"github.com/pquerna/otp/hotp"
)

// ChallengeCache holds pending email verification challenges keyed by
// account email. It is purely in-memory: a restart drops all pending
// logins, which just forces those users back through the password step.
//
// Issuing a new challenge for an email overwrites any pending one, so the
// latest code is the only code that works. Expired entries are not swept
// by a background job; they are caught and removed when the login flow
// reads them.
type ChallengeCache struct {
	mu         sync.Mutex
	challenges map[string]domain.Challenge
}

func NewChallengeCache() *ChallengeCache {
	return &ChallengeCache{
		challenges: make(map[string]domain.Challenge),
	}
}

// Put stores a challenge, replacing any pending one for the same email.
func (c *ChallengeCache) Put(ch domain.Challenge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.challenges[ch.Email] = ch
}

// Get returns the pending challenge for an email, expired or not. Callers
// decide between "absent" and "present but expired".
func (c *ChallengeCache) Get(email string) (domain.Challenge, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.challenges[email]
	return ch, ok
}

// Delete removes a challenge after it is consumed or invalidated.
func (c *ChallengeCache) Delete(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.challenges, email)
}

// Len reports the number of cached challenges, expired entries included.
func (c *ChallengeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.challenges)
}

// generateChallengeCode produces a 6 digit one-time code. Each challenge
// gets a fresh random HOTP secret used exactly once at counter zero, so
// codes are independent across challenges.
func generateChallengeCode() (string, error) {
	var seed [20]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return "", err
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(seed[:])
	return hotp.GenerateCode(secret, 0)
}
