package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/db"
)

func TestCountStats(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")
	id, err := CreatePost(database, alice, 1, "Hello", "World", "")
	require.NoError(t, err)
	_, err = CreateComment(database, int(id), alice, "first", "")
	require.NoError(t, err)

	stats, err := CountStats(database)
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 1, Posts: 1, Comments: 1}, stats)
}

func TestDeleteUserCascades(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")
	bob := mustCreateUser(t, database, "bob", "bob@x.com")

	alicePost, err := CreatePost(database, alice, 1, "alice post", "hers", "")
	require.NoError(t, err)
	bobPost, err := CreatePost(database, bob, 1, "bob post", "his", "posts/bob.png")
	require.NoError(t, err)

	// bob comments on alice's post, alice comments on bob's
	_, err = CreateComment(database, int(alicePost), bob, "from bob", "comments/bob.png")
	require.NoError(t, err)
	_, err = CreateComment(database, int(bobPost), alice, "from alice", "")
	require.NoError(t, err)

	images, err := DeleteUser(database, bob)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"posts/bob.png", "comments/bob.png"}, images)

	// all of bob's content is gone
	_, err = GetPost(database, int(bobPost))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetUserByID(database, bob)
	assert.ErrorIs(t, err, ErrNotFound)

	// alice's content is unaffected, minus bob's comment on it
	p, err := GetPost(database, int(alicePost))
	require.NoError(t, err)
	assert.Equal(t, "alice post", p.Title)
	comments, err := ListComments(database, int(alicePost))
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteUserRefusesAdmin(t *testing.T) {
	database := newTestDB(t)
	require.NoError(t, db.SeedAdmin(database, "admin123"))
	admin, err := GetUserByLogin(database, "admin")
	require.NoError(t, err)

	_, err = DeleteUser(database, admin.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = GetUserByLogin(database, "admin")
	assert.NoError(t, err)
}

func TestListUsersMasksEmails(t *testing.T) {
	database := newTestDB(t)
	mustCreateUser(t, database, "alice", "alice@x.com")

	users, err := ListUsers(database)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ali***x.com", users[0].MaskedEmail)
}
