package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:models_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

// The User→Post relation joins through AuthorID, not the default UserID;
// migration of the full model set must succeed with that mapping.
func TestUserPostsMigrateAndJoinOnAuthorID(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&Project{},
		&Skill{},
		&Service{},
		&Technology{},
		&Post{},
		&Category{},
		&Tag{},
		&ContactMessage{},
	))

	user := User{Name: "Author", Email: "author@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	post := Post{Title: "T", Content: "<p>c</p>", Slug: "t", Status: PostStatusDraft, AuthorID: user.ID}
	require.NoError(t, db.Create(&post).Error)

	var posts []Post
	require.NoError(t, db.Model(&user).Association("Posts").Find(&posts))
	require.Len(t, posts, 1)
	assert.Equal(t, user.ID, posts[0].AuthorID)
}
