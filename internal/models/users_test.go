package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicates(t *testing.T) {
	database := newTestDB(t)

	mustCreateUser(t, database, "alice", "alice@x.com")

	_, err := CreateUser(database, "alice", "other@x.com", "h")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = CreateUser(database, "other", "alice@x.com", "h")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// the first record is unaffected
	u, err := GetUserByLogin(database, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Equal(t, "user", u.Role)
}

func TestGetUserByLogin(t *testing.T) {
	database := newTestDB(t)
	id := mustCreateUser(t, database, "alice", "alice@x.com")

	byName, err := GetUserByLogin(database, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	byEmail, err := GetUserByLogin(database, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	_, err = GetUserByLogin(database, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	database := newTestDB(t)
	id := mustCreateUser(t, database, "alice", "alice@x.com")

	require.NoError(t, UpdateProfile(database, id, "hello there", "avatars/x.png"))
	u, err := GetUserByID(database, id)
	require.NoError(t, err)
	assert.Equal(t, "hello there", u.Bio)
	assert.Equal(t, "avatars/x.png", u.Avatar)

	// empty avatar clears the column
	require.NoError(t, UpdateProfile(database, id, "hello there", ""))
	u, err = GetUserByID(database, id)
	require.NoError(t, err)
	assert.Empty(t, u.Avatar)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "adm***forum.com", MaskEmail("admin@forum.com"))
	assert.Equal(t, "ali***x.com", MaskEmail("alice@x.com"))
	assert.Equal(t, "***", MaskEmail("ab@x.com"))
	assert.Equal(t, "***", MaskEmail("nodomain"))
}
