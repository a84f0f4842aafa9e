package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/institute-site/database/dbtest"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationLifecycle(t *testing.T) {
	db := dbtest.New(t)
	svc := auth.NewRevocationService(db)
	ctx := context.Background()

	revoked, err := svc.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Revoke(ctx, "jti-1", "admin-1", time.Now().Add(time.Hour), "logout"))
	require.NoError(t, svc.Revoke(ctx, "jti-1", "admin-1", time.Now().Add(time.Hour), "logout"))

	revoked, err = svc.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, db.Create(&model.RevokedSession{JTI: "old", ExpiresAt: time.Now().Add(-time.Hour)}).Error)
	removed, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
