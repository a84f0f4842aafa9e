package database_test

import (
	"testing"

	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/database/dbtest"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAllIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "correct-horse")

	require.NoError(t, database.RunSeeds(db))
	require.NoError(t, database.RunSeeds(db))

	var admins, courses, batches int64
	db.Model(&model.Admin{}).Count(&admins)
	db.Model(&model.Course{}).Count(&courses)
	db.Model(&model.Batch{}).Count(&batches)

	assert.Equal(t, int64(1), admins)
	assert.Equal(t, int64(3), courses)
	assert.Equal(t, int64(3), batches)
}

func TestUpsertAdminResetsPassword(t *testing.T) {
	db := dbtest.New(t)

	first, err := database.UpsertAdmin(db, "owner", "first-password", "")
	require.NoError(t, err)
	assert.Equal(t, model.AdminRoleAdmin, first.Role)

	second, err := database.UpsertAdmin(db, "owner", "second-password", "EDITOR")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var stored model.Admin
	require.NoError(t, db.First(&stored, "username = ?", "owner").Error)
	assert.Equal(t, "EDITOR", stored.Role)
	assert.NoError(t, auth.VerifyPassword(stored.PasswordHash, "second-password"))
	assert.ErrorIs(t, auth.VerifyPassword(stored.PasswordHash, "first-password"), auth.ErrPasswordMismatch)
}

func TestUpsertAdminRejectsShortPassword(t *testing.T) {
	db := dbtest.New(t)

	_, err := database.UpsertAdmin(db, "owner", "short", "")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}
