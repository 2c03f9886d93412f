package service

import (
	"booking/internal/api/models"
	"booking/pkg"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sweepTestSecret = "sweep-test-secret"

// newTestSweepService creates a minimal SessionSweepService for unit
// tests that don't need DB access.
func newTestSweepService() *SessionSweepService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionSweepService{
		secret:   sweepTestSecret,
		logger:   zerolog.Nop(),
		ctx:      ctx,
		cancel:   cancel,
		interval: 15 * time.Minute,
	}
}

func validSessionToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := pkg.GenerateRefreshToken(userID, sweepTestSecret, 30)
	require.NoError(t, err)
	return token
}

func foreignSessionToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := pkg.GenerateRefreshToken(userID, "some-other-secret", 30)
	require.NoError(t, err)
	return token
}

func expiredSessionToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := pkg.GenerateRefreshToken(userID, sweepTestSecret, -1)
	require.NoError(t, err)
	return token
}

func TestSweepSessions_MixedTokens(t *testing.T) {
	valid := validSessionToken(t, 1)
	user := models.User{
		ID: 1,
		Sessions: models.SessionRecords{
			{Token: valid, LastModified: time.Now()},
			{Token: foreignSessionToken(t, 1), LastModified: time.Now()},
			{Token: expiredSessionToken(t, 1), LastModified: time.Now()},
			{Token: "", LastModified: time.Now()},
		},
	}

	changed := SweepSessions(&user, sweepTestSecret)

	require.True(t, changed)
	assert.Equal(t, valid, user.Sessions[0].Token, "valid token must be untouched")
	assert.Equal(t, "", user.Sessions[1].Token, "token signed with another secret must be cleared")
	assert.Equal(t, "", user.Sessions[2].Token, "expired token must be cleared")
	assert.Equal(t, "", user.Sessions[3].Token, "revoked sentinel stays as is")
}

func TestSweepSessions_AllValid(t *testing.T) {
	user := models.User{
		ID: 1,
		Sessions: models.SessionRecords{
			{Token: validSessionToken(t, 1), LastModified: time.Now()},
			{Token: validSessionToken(t, 1), LastModified: time.Now()},
		},
	}

	changed := SweepSessions(&user, sweepTestSecret)
	assert.False(t, changed, "nothing to persist when every token verifies")
}

func TestSweepSessions_NoSessions(t *testing.T) {
	user := models.User{ID: 1}
	assert.False(t, SweepSessions(&user, sweepTestSecret))
}

// A user whose save blows up is contained; the sweep moves on to the
// next user.
func TestSweepUser_FailureIsolated(t *testing.T) {
	svc := newTestSweepService()
	defer svc.cancel()

	// userRepo is nil: persisting the cleared session panics, which
	// sweepUser must absorb.
	failing := models.User{
		ID: 1,
		Sessions: models.SessionRecords{
			{Token: foreignSessionToken(t, 1), LastModified: time.Now()},
		},
	}
	assert.NotPanics(t, func() {
		assert.False(t, svc.sweepUser(&failing))
	})

	// The next user is still swept normally (nothing to persist here).
	clean := models.User{
		ID: 2,
		Sessions: models.SessionRecords{
			{Token: validSessionToken(t, 2), LastModified: time.Now()},
		},
	}
	assert.NotPanics(t, func() {
		assert.False(t, svc.sweepUser(&clean))
	})
	assert.NotEmpty(t, clean.Sessions[0].Token, "valid session must survive the sweep")
}
