package repositories

import (
	"testing"
	"time"

	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// TranslateError matches the production Postgres config so unique
// violations surface as gorm.ErrDuplicatedKey in both.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one in-memory database, one connection

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: author.ID, Text: text, PubDate: time.Now()}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestUserRepository_Lookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)

	require.NoError(t, repo.CreateUser(&models.User{Username: "alice", Email: "alice@example.com", Password: "x"}))

	byName, err := repo.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byName.Email)

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byEmail.ID)

	byID, err := repo.GetUserByID(byName.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)

	require.NoError(t, repo.CreateUser(&models.User{Username: "alice", Email: "a@example.com"}))
	err := repo.CreateUser(&models.User{Username: "alice", Email: "b@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestPostRepository_Pagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	alice := createTestUser(t, db, "alice")

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Post{
			AuthorID: alice.ID,
			Text:     "post",
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	count, err := repo.CountPosts()
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)

	window, err := repo.GetPosts(2, 1)
	require.NoError(t, err)
	require.Len(t, window, 2)
	// Newest first, offset skips the newest.
	assert.True(t, window[0].PubDate.After(window[1].PubDate))

	all, err := repo.GetPosts(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, "alice", all[0].Author.Username)
}

func TestPostRepository_DeleteCascadesComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice, "hello")
	require.NoError(t, db.Create(&models.Comment{AuthorID: alice.ID, PostID: post.ID, Text: "hi", Created: time.Now()}).Error)

	require.NoError(t, repo.DeletePost(post.ID))

	_, err := repo.GetPostByID(post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var remaining int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)
}

func TestCommentRepository_ScopedToParent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCommentRepository(db)
	alice := createTestUser(t, db, "alice")
	p1 := createTestPost(t, db, alice, "first")
	p2 := createTestPost(t, db, alice, "second")

	require.NoError(t, repo.CreateComment(&models.Comment{AuthorID: alice.ID, PostID: p1.ID, Text: "on first", Created: time.Now()}))
	require.NoError(t, repo.CreateComment(&models.Comment{AuthorID: alice.ID, PostID: p2.ID, Text: "on second", Created: time.Now()}))

	comments, err := repo.GetCommentsByPostID(p1.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "on first", comments[0].Text)
	assert.Equal(t, "alice", comments[0].Author.Username)
}

func TestFollowRepository_DuplicateEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: alice.ID, FollowingID: bob.ID}))

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The unique index rejects a second identical edge even when the
	// application-level check is bypassed.
	err = repo.CreateFollow(&models.Follow{UserID: alice.ID, FollowingID: bob.ID})
	assert.ErrorIs(t, err, ErrDuplicateFollow)

	// The reverse direction is a distinct edge.
	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: bob.ID, FollowingID: alice.ID}))
}

func TestFollowRepository_ListIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: alice.ID, FollowingID: carol.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{UserID: bob.ID, FollowingID: carol.ID}))

	follows, err := repo.GetFollowsByUserID(alice.ID, "")
	require.NoError(t, err)
	require.Len(t, follows, 2)
	for _, f := range follows {
		assert.Equal(t, alice.ID, f.UserID)
		assert.Equal(t, "alice", f.User.Username)
	}
}

func TestFollowRepository_SearchFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormFollowRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	bobby := createTestUser(t, db, "bobby")
	carol := createTestUser(t, db, "carol")

	for _, u := range []*models.User{bob, bobby, carol} {
		require.NoError(t, repo.CreateFollow(&models.Follow{UserID: alice.ID, FollowingID: u.ID}))
	}

	follows, err := repo.GetFollowsByUserID(alice.ID, "bob")
	require.NoError(t, err)
	require.Len(t, follows, 2)

	follows, err = repo.GetFollowsByUserID(alice.ID, "aro")
	require.NoError(t, err)
	require.Len(t, follows, 1)
	assert.Equal(t, "carol", follows[0].Following.Username)
}
