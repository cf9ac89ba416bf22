package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AVIDS2/Astris-Blog/internal/auth"
	"github.com/AVIDS2/Astris-Blog/internal/config"
	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/service"
	"github.com/AVIDS2/Astris-Blog/internal/storage"
)

func newTestRouter(t *testing.T) (Router, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Tag{}, &models.Post{},
		&models.Comment{}, &models.Tool{}, &models.Friend{},
		&models.Album{}, &models.Photo{},
	))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	tokens := auth.NewManager("test-secret", 60)

	authSvc := service.NewAuthService(gdb, tokens, 0)
	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "admin", "s3cret"))

	cfg := &config.Config{CORSOrigins: []string{"*"}, UploadDir: t.TempDir()}
	r := NewRouter(Deps{
		Config:   cfg,
		Tokens:   tokens,
		Store:    store,
		Posts:    service.NewPostService(gdb, nil, nil, 0),
		Search:   service.NewSearchService(gdb, 0),
		Comments: service.NewCommentService(gdb, 0),
		Taxonomy: service.NewTaxonomyService(gdb, nil, 0),
		Auth:     authSvc,
		Stats:    service.NewStatsService(gdb, nil, 0),
		Tools:    service.NewToolService(gdb, 0),
		Friends:  service.NewFriendService(gdb, 0),
		Albums:   service.NewAlbumService(gdb, 0),
		Banners:  service.NewBannerService(store),
	})
	return r, gdb
}

func doJSON(t *testing.T, r Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r Router) string {
	t.Helper()
	w := doJSON(t, r, nethttp.MethodPost, "/api/admin/auth/login", "",
		map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, nethttp.StatusOK, w.Code)
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func seedPublishedPost(t *testing.T, gdb *gorm.DB, slug string) *models.Post {
	t.Helper()
	u := &models.User{Username: "author-" + slug, PasswordHash: "x", IsActive: true}
	require.NoError(t, gdb.Create(u).Error)
	p := &models.Post{Title: "Post " + slug, Slug: slug, Content: "body", IsPublished: true, AuthorID: u.ID}
	require.NoError(t, gdb.Create(p).Error)
	return p
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, nethttp.MethodGet, "/api/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
}

func TestPublicPostEndpoints(t *testing.T) {
	r, gdb := newTestRouter(t)
	seedPublishedPost(t, gdb, "hello")

	w := doJSON(t, r, nethttp.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hello"`)

	w = doJSON(t, r, nethttp.MethodGet, "/api/posts/hello", "", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)

	w = doJSON(t, r, nethttp.MethodGet, "/api/posts/missing", "", nil)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post not found")

	w = doJSON(t, r, nethttp.MethodGet, "/api/posts?page=0", "", nil)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	r, gdb := newTestRouter(t)
	seedPublishedPost(t, gdb, "go-notes")

	w := doJSON(t, r, nethttp.MethodGet, "/api/search?q=post", "", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go-notes")

	w = doJSON(t, r, nethttp.MethodGet, "/api/search?q=post&limit=0", "", nil)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestAdminRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodGet, "/api/admin/posts", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)

	w = doJSON(t, r, nethttp.MethodGet, "/api/admin/posts", "not-a-token", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)

	token := login(t, r)
	w = doJSON(t, r, nethttp.MethodGet, "/api/admin/posts", token, nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, nethttp.MethodPost, "/api/admin/auth/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestCommentModerationFlow(t *testing.T) {
	r, gdb := newTestRouter(t)
	post := seedPublishedPost(t, gdb, "hello")

	// A visitor comment lands unapproved and stays invisible.
	w := doJSON(t, r, nethttp.MethodPost, "/api/comments", "",
		map[string]interface{}{"post_id": post.ID, "nickname": "visitor", "content": "hi"})
	require.Equal(t, nethttp.StatusCreated, w.Code)

	w = doJSON(t, r, nethttp.MethodGet, "/api/posts/hello/comments", "", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	token := login(t, r)
	w = doJSON(t, r, nethttp.MethodGet, "/api/admin/comments?approved=false", token, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	var pending []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)

	w = doJSON(t, r, nethttp.MethodPut, fmt.Sprintf("/api/admin/comments/%d/approve", pending[0].ID), token, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	w = doJSON(t, r, nethttp.MethodGet, "/api/posts/hello/comments", "", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visitor")
}

func TestAdminCreatePost(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, nethttp.MethodPost, "/api/admin/posts", token, map[string]interface{}{
		"title": "New", "slug": "new", "content": "body", "is_published": true,
	})
	require.Equal(t, nethttp.StatusCreated, w.Code)

	// Same slug again maps to a validation failure.
	w = doJSON(t, r, nethttp.MethodPost, "/api/admin/posts", token, map[string]interface{}{
		"title": "New", "slug": "new", "content": "body",
	})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)

	w = doJSON(t, r, nethttp.MethodGet, "/api/posts/new", "", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(nethttp.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, nethttp.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
