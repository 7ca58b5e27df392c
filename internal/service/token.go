package service

import (
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/pkg/jwtx"
)

// TokenService issues and verifies stateless session tokens. Verification
// needs no store round trip: the signature, issuer and expiry checks are
// all the state there is.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	SessionTTL time.Duration
}

// Issue signs a session token for the given account.
func (s *TokenService) Issue(u domain.User) (domain.Session, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(u.Email, u.FullName, u.Role, ttl, s.Issuer, time.Now())

	signer := s.KeyManager.GetSigner()
	if signer == nil {
		return domain.Session{}, jwtx.ErrNoKey
	}

	token, err := signer.Sign(claims)
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		Token:     token,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}

// Verify parses and validates a session token, returning its claims.
// Failures surface as jwtx sentinel errors (ErrExpired, ErrInvalidSig, ...).
func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	return s.KeyManager.Verifier.Verify(token)
}
