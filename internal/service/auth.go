package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/mail"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/cryptox"
	"github.com/ironbark/buildmat/pkg/idx"
	"github.com/ironbark/buildmat/pkg/slogx"
)

const (
	// DefaultChallengeTTL is how long an emailed login code stays valid.
	DefaultChallengeTTL = 30 * time.Minute

	// DefaultResetTTL is how long a password reset token stays valid.
	DefaultResetTTL = 30 * time.Minute
)

var (
	ErrDuplicateAccount   = errors.New("duplicate_account")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNoChallenge        = errors.New("no_challenge")
	ErrChallengeExpired   = errors.New("challenge_expired")
	ErrChallengeMismatch  = errors.New("challenge_mismatch")
	ErrNotificationFailed = errors.New("notification_failed")
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrInvalidResetToken  = errors.New("invalid_reset_token")
	ErrResetTokenExpired  = errors.New("reset_token_expired")
)

// AuthService owns the credential lifecycle: registration, the two-step
// login (password then emailed code), and password resets.
//
// Login codes live in the in-memory ChallengeCache; reset tokens are
// persisted so they survive a restart within their validity window.
type AuthService struct {
	Store      store.Store
	Mailer     mail.Mailer
	Tokens     *TokenService
	Challenges *ChallengeCache

	ChallengeTTL time.Duration
	ResetTTL     time.Duration

	// ResetBaseURL is the page the emailed reset link points at. The opaque
	// token is appended as a query parameter.
	ResetBaseURL string
}

// Register creates a new account. An empty role defaults to "user"; the
// HTTP layer never forwards a caller-chosen role, so anything other than
// "user" only enters through trusted code paths.
func (s *AuthService) Register(ctx context.Context, email, password, fullName, role string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("registration rejected, email taken", slog.String("email", email))
			return domain.User{}, ErrDuplicateAccount
		}
		return domain.User{}, err
	}

	l.Info("account registered", slog.String("user_id", u.ID))
	return u, nil
}

// BeginLogin checks the password and, on success, emails a one-time code.
// The code is cached before the mail goes out, so a delivery failure still
// leaves a redeemable challenge behind; callers may retry BeginLogin to
// reissue, which overwrites the pending code.
func (s *AuthService) BeginLogin(ctx context.Context, email, password string) error {
	l := slogx.FromContext(ctx)

	email = normalizeEmail(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login password check failed", slog.String("user_id", u.ID))
		return ErrInvalidCredentials
	}

	code, err := generateChallengeCode()
	if err != nil {
		return err
	}

	s.Challenges.Put(domain.Challenge{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.challengeTTL()),
	})

	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s.\n\nIt expires in %d minutes. If you did not try to sign in, you can ignore this email.\n",
		u.FullName, code, int(s.challengeTTL().Minutes()))

	if err := s.Mailer.Send(ctx, email, "Your verification code", body); err != nil {
		l.Error("challenge email delivery failed", slog.String("user_id", u.ID), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	l.Info("login challenge issued", slog.String("user_id", u.ID))
	return nil
}

// CompleteLogin redeems an emailed code and returns a signed session.
// The challenge is single-use: it is removed on success and on expiry,
// but kept on a wrong code so the user can retype it.
func (s *AuthService) CompleteLogin(ctx context.Context, email, code string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	email = normalizeEmail(email)

	ch, ok := s.Challenges.Get(email)
	if !ok {
		return domain.Session{}, ErrNoChallenge
	}

	if ch.Expired(time.Now()) {
		s.Challenges.Delete(email)
		return domain.Session{}, ErrChallengeExpired
	}

	if subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) != 1 {
		l.Info("login code mismatch", slog.String("email", email))
		return domain.Session{}, ErrChallengeMismatch
	}

	s.Challenges.Delete(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Account deleted between the two login steps.
			return domain.Session{}, ErrAccountNotFound
		}
		return domain.Session{}, err
	}

	session, err := s.Tokens.Issue(u)
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("login completed", slog.String("user_id", u.ID))
	return session, nil
}

// RequestPasswordReset issues a single-use reset token and emails a link
// carrying it. Any older tokens for the account are invalidated first, so
// only the most recent link works.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)

	email = normalizeEmail(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}

	now := time.Now()
	record := domain.PasswordResetToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.resetTTL()),
		CreatedAt: now,
	}

	// Only the opaque token's fingerprint is stored; the link below is the
	// only place the token itself ever appears.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetTokens().DeleteUserResetTokens(ctx, u.ID); err != nil {
			return err
		}
		return tx.ResetTokens().CreateResetToken(ctx, record)
	})
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s", s.ResetBaseURL, token)
	body := fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your account. Follow the link below within %d minutes to choose a new password:\n\n%s\n\nIf you did not request this, you can ignore this email.\n",
		u.FullName, int(s.resetTTL().Minutes()), link)

	if err := s.Mailer.Send(ctx, email, "Reset your password", body); err != nil {
		l.Error("reset email delivery failed", slog.String("user_id", u.ID), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	l.Info("password reset requested", slog.String("user_id", u.ID))
	return nil
}

// ResetPassword redeems a reset token and installs the new password. The
// token is consumed in the same transaction that updates the hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	l := slogx.FromContext(ctx)

	if token == "" || newPassword == "" {
		return ErrInvalidResetToken
	}

	record, err := s.Store.ResetTokens().GetResetTokenByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		_ = s.Store.ResetTokens().DeleteResetToken(ctx, record.ID)
		return ErrResetTokenExpired
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, record.UserID, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		return tx.ResetTokens().DeleteResetToken(ctx, record.ID)
	})
	if err != nil {
		return err
	}

	l.Info("password reset completed", slog.String("user_id", record.UserID))
	return nil
}

// SetRole promotes or demotes an account. Only reachable through the
// admin-gated endpoint; sessions issued before the change keep their old
// role claim until they expire.
func (s *AuthService) SetRole(ctx context.Context, userID, role string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if role != domain.RoleUser && role != domain.RoleAdmin {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	if err := s.Store.Users().UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrAccountNotFound
		}
		return domain.User{}, err
	}

	l.Info("account role changed", slog.String("user_id", userID), slog.String("role", role))
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *AuthService) challengeTTL() time.Duration {
	if s.ChallengeTTL > 0 {
		return s.ChallengeTTL
	}
	return DefaultChallengeTTL
}

func (s *AuthService) resetTTL() time.Duration {
	if s.ResetTTL > 0 {
		return s.ResetTTL
	}
	return DefaultResetTTL
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
