package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewPostIncrements(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")
	id, err := CreatePost(database, alice, 1, "Hello", "World", "")
	require.NoError(t, err)

	var last *Post
	for i := 0; i < 3; i++ {
		last, err = ViewPost(database, int(id))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, last.Views)
	assert.Equal(t, "alice", last.Username)
	assert.Equal(t, "General", last.CategoryName)
}

func TestViewPostNotFound(t *testing.T) {
	database := newTestDB(t)
	_, err := ViewPost(database, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")
	bob := mustCreateUser(t, database, "bob", "bob@x.com")

	id, err := CreatePost(database, alice, 1, "Hello", "World", "posts/a.png")
	require.NoError(t, err)
	_, err = CreateComment(database, int(id), bob, "Nice!", "comments/b.png")
	require.NoError(t, err)

	images, err := DeletePost(database, int(id))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"posts/a.png", "comments/b.png"}, images)

	_, err = GetPost(database, int(id))
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := ListComments(database, int(id))
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestListRecentPinnedFirst(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")

	first, err := CreatePost(database, alice, 1, "older", "body", "")
	require.NoError(t, err)
	_, err = CreatePost(database, alice, 2, "newer", "body", "")
	require.NoError(t, err)
	require.NoError(t, SetPostPinned(database, int(first), true))

	posts, err := ListRecentPosts(database, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "older", posts[0].Title)
	assert.True(t, posts[0].IsPinned)
}

func TestCreatePostUnknownCategoryRejected(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")

	// foreign keys are enforced: no post may reference a category that
	// does not exist
	_, err := CreatePost(database, alice, 99, "orphan", "body", "")
	assert.Error(t, err)

	stats, err := CountStats(database)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Posts)
}

func TestListLatestPostsIgnoresPins(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")

	pinned, err := CreatePost(database, alice, 1, "pinned old", "body", "")
	require.NoError(t, err)
	require.NoError(t, SetPostPinned(database, int(pinned), true))
	_, err = CreatePost(database, alice, 1, "plain new", "body", "")
	require.NoError(t, err)

	// the home listing floats the pin, the activity listing does not
	posts, err := ListRecentPosts(database, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "pinned old", posts[0].Title)

	posts, err = ListLatestPosts(database, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "plain new", posts[0].Title)
}

func TestListPostsByCategory(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")

	_, err := CreatePost(database, alice, 1, "general post", "body", "")
	require.NoError(t, err)
	_, err = CreatePost(database, alice, 2, "question post", "body", "")
	require.NoError(t, err)

	posts, err := ListPostsByCategory(database, 2)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "question post", posts[0].Title)
	assert.Equal(t, "Questions", posts[0].CategoryName)
}

func TestSearchPosts(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")
	bob := mustCreateUser(t, database, "bob", "bob@x.com")

	_, err := CreatePost(database, alice, 1, "Gardening tips", "tomatoes love sunshine", "")
	require.NoError(t, err)
	_, err = CreatePost(database, bob, 1, "Unrelated", "nothing to see", "")
	require.NoError(t, err)

	// substring that appears only in one post's content
	posts, err := SearchPosts(database, "sunshine")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Gardening tips", posts[0].Title)

	// case-insensitive title match
	posts, err = SearchPosts(database, "gardening")
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	// author username match
	posts, err = SearchPosts(database, "bob")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Unrelated", posts[0].Title)

	// category name match
	posts, err = SearchPosts(database, "General")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestCanModify(t *testing.T) {
	owner := &User{ID: 1, Role: "user"}
	other := &User{ID: 2, Role: "user"}
	admin := &User{ID: 3, Role: "admin"}

	assert.True(t, owner.CanModify(1))
	assert.False(t, other.CanModify(1))
	assert.True(t, admin.CanModify(1))
}

// Walks the full lifecycle: post, view, comment, delete, gone.
func TestPostLifecycle(t *testing.T) {
	database := newTestDB(t)
	alice := mustCreateUser(t, database, "alice", "alice@x.com")
	bob := mustCreateUser(t, database, "bob", "bob@x.com")

	id, err := CreatePost(database, alice, 1, "Hello", "World", "")
	require.NoError(t, err)

	p, err := ViewPost(database, int(id))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Views)

	_, err = CreateComment(database, int(id), bob, "Nice!", "")
	require.NoError(t, err)
	comments, err := ListComments(database, int(id))
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "bob", comments[0].Username)
	assert.Equal(t, "Nice!", comments[0].Content)

	_, err = DeletePost(database, int(id))
	require.NoError(t, err)

	_, err = ViewPost(database, int(id))
	assert.ErrorIs(t, err, ErrNotFound)
	comments, err = ListComments(database, int(id))
	require.NoError(t, err)
	assert.Empty(t, comments)
}
