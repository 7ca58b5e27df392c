package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/mail"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/internal/store/drivers/sqlite"
	"github.com/ironbark/buildmat/pkg/cryptox"
	"github.com/ironbark/buildmat/pkg/idx"
	"github.com/ironbark/buildmat/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "buildmat-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.bin"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

// captureMailer records outgoing mail instead of sending it. Setting fail
// makes Send record the message and then report a delivery error.
type captureMailer struct {
	mu   sync.Mutex
	sent []capturedMail
	fail bool
}

var _ mail.Mailer = (*captureMailer)(nil)

func (m *captureMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, capturedMail{To: to, Subject: subject, Body: body})
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func (m *captureMailer) last(t *testing.T) capturedMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

var (
	codePattern  = regexp.MustCompile(`code is (\d{6})`)
	tokenPattern = regexp.MustCompile(`\?token=([A-Za-z0-9_-]+)`)
)

func (m *captureMailer) lastCode(t *testing.T) string {
	t.Helper()
	match := codePattern.FindStringSubmatch(m.last(t).Body)
	require.Len(t, match, 2)
	return match[1]
}

func (m *captureMailer) lastResetToken(t *testing.T) string {
	t.Helper()
	match := tokenPattern.FindStringSubmatch(m.last(t).Body)
	require.Len(t, match, 2)
	return match[1]
}

func newAuthService(t *testing.T) (*AuthService, *captureMailer) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "buildmat-test", NumKeys: 1})
	require.NoError(t, err)

	mailer := &captureMailer{}

	return &AuthService{
		Store:      st,
		Mailer:     mailer,
		Tokens:     &TokenService{KeyManager: km, Issuer: "buildmat-test", SessionTTL: time.Hour},
		Challenges: NewChallengeCache(),

		ResetBaseURL: "https://buildmat.example/reset",
	}, mailer
}

func TestRegisterLoginVerifyHappyPath(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	u, err := svc.Register(ctx, "alice@example.com", "s3cret-password", "Alice Example", domain.RoleUser)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, u.Role)

	require.NoError(t, svc.BeginLogin(ctx, "alice@example.com", "s3cret-password"))

	msg := mailer.last(t)
	require.Equal(t, "alice@example.com", msg.To)

	session, err := svc.CompleteLogin(ctx, "alice@example.com", mailer.lastCode(t))
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "alice@example.com", session.Email)
	require.Equal(t, "Alice Example", session.FullName)
	require.EqualValues(t, 3600, session.ExpiresIn)

	claims, err := svc.Tokens.Verify(session.Token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, domain.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Register(ctx, "bob@example.com", "password-1", "Bob", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob@example.com", "password-2", "Bobby", domain.RoleUser)
	require.ErrorIs(t, err, ErrDuplicateAccount)

	// Same address, different case.
	_, err = svc.Register(ctx, "BOB@Example.com", "password-3", "Robert", domain.RoleUser)
	require.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestRegisterRoles(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	u, err := svc.Register(ctx, "root@example.com", "password", "Root", domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, u.Role)

	// Empty role falls back to the plain user role.
	u, err = svc.Register(ctx, "plain@example.com", "password", "Plain", "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, u.Role)

	_, err = svc.Register(ctx, "odd@example.com", "password", "Odd", "superuser")
	require.ErrorIs(t, err, ErrValidation)
}

func TestBeginLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "carol@example.com", "right-password", "Carol", domain.RoleUser)
	require.NoError(t, err)

	err = svc.BeginLogin(ctx, "carol@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.BeginLogin(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Empty(t, mailer.sent)
	require.Zero(t, svc.Challenges.Len())
}

func TestCompleteLoginWithoutChallenge(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.CompleteLogin(ctx, "dave@example.com", "123456")
	require.ErrorIs(t, err, ErrNoChallenge)
}

func TestCompleteLoginWrongCodeKeepsChallenge(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "erin@example.com", "password", "Erin", domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, svc.BeginLogin(ctx, "erin@example.com", "password"))

	code := mailer.lastCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err = svc.CompleteLogin(ctx, "erin@example.com", wrong)
	require.ErrorIs(t, err, ErrChallengeMismatch)

	// A wrong guess does not burn the challenge.
	session, err := svc.CompleteLogin(ctx, "erin@example.com", code)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
}

func TestCompleteLoginExpiredChallenge(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "frank@example.com", "password", "Frank", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.BeginLogin(ctx, "frank@example.com", "password"))

	// Backdate the pending challenge past its deadline.
	svc.Challenges.Put(domain.Challenge{
		Email:     "frank@example.com",
		Code:      mailer.lastCode(t),
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err = svc.CompleteLogin(ctx, "frank@example.com", mailer.lastCode(t))
	require.ErrorIs(t, err, ErrChallengeExpired)

	// Expiry consumes the challenge.
	_, err = svc.CompleteLogin(ctx, "frank@example.com", mailer.lastCode(t))
	require.ErrorIs(t, err, ErrNoChallenge)
}

func TestChallengeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "grace@example.com", "password", "Grace", domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, svc.BeginLogin(ctx, "grace@example.com", "password"))

	code := mailer.lastCode(t)

	_, err = svc.CompleteLogin(ctx, "grace@example.com", code)
	require.NoError(t, err)

	_, err = svc.CompleteLogin(ctx, "grace@example.com", code)
	require.ErrorIs(t, err, ErrNoChallenge)
}

func TestReissueOverwritesPendingChallenge(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "heidi@example.com", "password", "Heidi", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.BeginLogin(ctx, "heidi@example.com", "password"))
	first := mailer.lastCode(t)

	require.NoError(t, svc.BeginLogin(ctx, "heidi@example.com", "password"))
	second := mailer.lastCode(t)

	_, err = svc.CompleteLogin(ctx, "heidi@example.com", first)
	require.ErrorIs(t, err, ErrChallengeMismatch)

	session, err := svc.CompleteLogin(ctx, "heidi@example.com", second)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
}

func TestBeginLoginMailFailureKeepsChallenge(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "ivan@example.com", "password", "Ivan", domain.RoleUser)
	require.NoError(t, err)

	mailer.fail = true
	err = svc.BeginLogin(ctx, "ivan@example.com", "password")
	require.ErrorIs(t, err, ErrNotificationFailed)

	// The code was cached before the send, so it is still redeemable if the
	// user got the mail through a slow retry path.
	session, err := svc.CompleteLogin(ctx, "ivan@example.com", mailer.lastCode(t))
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
}

func TestCompleteLoginAccountRemovedBetweenSteps(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	svc.Challenges.Put(domain.Challenge{
		Email:     "ghost@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(time.Minute),
	})

	_, err := svc.CompleteLogin(ctx, "ghost@example.com", "123456")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRequestPasswordResetUnknownAccount(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	err := svc.RequestPasswordReset(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
	require.Empty(t, mailer.sent)
}

func TestPasswordResetHappyPath(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "judy@example.com", "old-password", "Judy", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "judy@example.com"))
	token := mailer.lastResetToken(t)

	require.NoError(t, svc.ResetPassword(ctx, token, "new-password"))

	err = svc.BeginLogin(ctx, "judy@example.com", "old-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.BeginLogin(ctx, "judy@example.com", "new-password"))

	// Tokens are single-use.
	err = svc.ResetPassword(ctx, token, "another-password")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordRejectsGarbageToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	err := svc.ResetPassword(ctx, "not-a-real-token", "new-password")
	require.ErrorIs(t, err, ErrInvalidResetToken)

	err = svc.ResetPassword(ctx, "", "new-password")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	u, err := svc.Register(ctx, "karl@example.com", "password", "Karl", domain.RoleUser)
	require.NoError(t, err)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	record := domain.PasswordResetToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-31 * time.Minute),
	}
	require.NoError(t, svc.Store.ResetTokens().CreateResetToken(ctx, record))

	err = svc.ResetPassword(ctx, token, "new-password")
	require.ErrorIs(t, err, ErrResetTokenExpired)

	// Redeeming an expired token removes it.
	_, err = svc.Store.ResetTokens().GetResetTokenByHash(ctx, record.TokenHash)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestReissueInvalidatesOlderResetTokens(t *testing.T) {
	ctx := context.Background()
	svc, mailer := newAuthService(t)

	_, err := svc.Register(ctx, "lena@example.com", "password", "Lena", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "lena@example.com"))
	first := mailer.lastResetToken(t)

	require.NoError(t, svc.RequestPasswordReset(ctx, "lena@example.com"))
	second := mailer.lastResetToken(t)

	err = svc.ResetPassword(ctx, first, "new-password")
	require.ErrorIs(t, err, ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(ctx, second, "new-password"))
}
