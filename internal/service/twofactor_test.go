package service

import (
	"testing"
	"time"

	"github.com/ironbark/buildmat/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestChallengeCachePutGetDelete(t *testing.T) {
	c := NewChallengeCache()

	_, ok := c.Get("a@example.com")
	require.False(t, ok)

	ch := domain.Challenge{
		Email:     "a@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	c.Put(ch)

	got, ok := c.Get("a@example.com")
	require.True(t, ok)
	require.Equal(t, "123456", got.Code)
	require.Equal(t, 1, c.Len())

	c.Delete("a@example.com")
	_, ok = c.Get("a@example.com")
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestChallengeCacheOverwrite(t *testing.T) {
	c := NewChallengeCache()

	c.Put(domain.Challenge{Email: "b@example.com", Code: "111111", ExpiresAt: time.Now().Add(time.Minute)})
	c.Put(domain.Challenge{Email: "b@example.com", Code: "222222", ExpiresAt: time.Now().Add(time.Minute)})

	got, ok := c.Get("b@example.com")
	require.True(t, ok)
	require.Equal(t, "222222", got.Code)
	require.Equal(t, 1, c.Len())
}

func TestChallengeExpiredMethod(t *testing.T) {
	now := time.Now()

	live := domain.Challenge{ExpiresAt: now.Add(time.Second)}
	require.False(t, live.Expired(now))

	dead := domain.Challenge{ExpiresAt: now.Add(-time.Second)}
	require.True(t, dead.Expired(now))
}

func TestGenerateChallengeCodeFormat(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 32; i++ {
		code, err := generateChallengeCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.GreaterOrEqual(t, r, '0')
			require.LessOrEqual(t, r, '9')
		}
		seen[code] = struct{}{}
	}

	// With fresh random secrets the codes should not all collapse to a
	// single value.
	require.Greater(t, len(seen), 1)
}
