package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AVIDS2/Astris-Blog/internal/models"
)

// newTestDB opens an in-memory SQLite database named after the test so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Tool{},
		&models.Friend{},
		&models.Album{},
		&models.Photo{},
	))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x", IsActive: true}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

type postSpec struct {
	title     string
	slug      string
	content   string
	summary   string
	published bool
	pinned    bool
	createdAt time.Time
	category  *models.Category
	tags      []models.Tag
}

func seedPost(t *testing.T, gdb *gorm.DB, authorID uint, spec postSpec) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:       spec.title,
		Slug:        spec.slug,
		Content:     spec.content,
		IsPublished: spec.published,
		IsPinned:    spec.pinned,
		AuthorID:    authorID,
		Tags:        spec.tags,
	}
	if spec.summary != "" {
		s := spec.summary
		p.Summary = &s
	}
	if spec.category != nil {
		p.CategoryID = &spec.category.ID
	}
	if !spec.createdAt.IsZero() {
		p.CreatedAt = spec.createdAt
	}
	require.NoError(t, gdb.Create(p).Error)
	return p
}

func seedComment(t *testing.T, gdb *gorm.DB, postID uint, parentID *uint, approved bool, createdAt time.Time) *models.Comment {
	t.Helper()
	c := &models.Comment{
		Nickname:   "reader",
		Content:    "a comment",
		PostID:     postID,
		ParentID:   parentID,
		IsApproved: approved,
	}
	if !createdAt.IsZero() {
		c.CreatedAt = createdAt
	}
	require.NoError(t, gdb.Create(c).Error)
	return c
}
