package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AVIDS2/Astris-Blog/internal/auth"
	"github.com/AVIDS2/Astris-Blog/internal/config"
	"github.com/AVIDS2/Astris-Blog/internal/service"
	"github.com/AVIDS2/Astris-Blog/internal/storage"
	"github.com/AVIDS2/Astris-Blog/internal/transport/http/handlers"
	"github.com/AVIDS2/Astris-Blog/internal/transport/http/middleware"
)

type Router = *gin.Engine

// Deps carries everything the route tree needs.
type Deps struct {
	Config   *config.Config
	Tokens   *auth.Manager
	Store    storage.FileStore
	Posts    *service.PostService
	Search   *service.SearchService
	Comments *service.CommentService
	Taxonomy *service.TaxonomyService
	Auth     *service.AuthService
	Stats    *service.StatsService
	Tools    *service.ToolService
	Friends  *service.FriendService
	Albums   *service.AlbumService
	Banners  *service.BannerService
}

func NewRouter(d Deps) Router {
	if mode := gin.Mode(); mode == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS(d.Config.CORSOrigins))

	posts := handlers.NewPostHandler(d.Posts, d.Auth)
	search := handlers.NewSearchHandler(d.Search)
	comments := handlers.NewCommentHandler(d.Comments)
	taxonomy := handlers.NewTaxonomyHandler(d.Taxonomy)
	authH := handlers.NewAuthHandler(d.Auth)
	stats := handlers.NewStatsHandler(d.Stats)
	tools := handlers.NewToolHandler(d.Tools)
	friends := handlers.NewFriendHandler(d.Friends)
	albums := handlers.NewAlbumHandler(d.Albums)
	banners := handlers.NewBannerHandler(d.Banners, d.Store)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/posts", posts.List)
		api.GET("/posts/:slug", posts.Get)
		api.GET("/posts/:slug/comments", comments.Thread)
		api.GET("/posts/:slug/related", posts.Related)
		api.GET("/search", search.Search)
		api.GET("/categories", taxonomy.ListCategories)
		api.GET("/tags", taxonomy.ListTags)
		api.POST("/comments", comments.Create)
		api.GET("/stats", stats.Stats)
		api.GET("/tools", tools.ListGrouped)
		api.GET("/friends", friends.ListVisible)
		api.GET("/albums", albums.ListVisible)
		api.GET("/albums/:id/photos", albums.ListPhotos)
		api.GET("/banner", banners.List)
	}

	admin := r.Group("/api/admin")
	admin.POST("/auth/login", authH.Login)
	admin.Use(middleware.RequireAuth(d.Tokens))
	{
		admin.GET("/auth/me", authH.Me)

		admin.GET("/posts", posts.ListAll)
		admin.POST("/posts", posts.Create)
		admin.PUT("/posts/:id", posts.Update)
		admin.DELETE("/posts/:id", posts.Delete)

		admin.POST("/categories", taxonomy.CreateCategory)
		admin.DELETE("/categories/:id", taxonomy.DeleteCategory)
		admin.POST("/tags", taxonomy.CreateTag)
		admin.DELETE("/tags/:id", taxonomy.DeleteTag)

		admin.GET("/comments", comments.ListAll)
		admin.PUT("/comments/:id/approve", comments.Approve)
		admin.DELETE("/comments/:id", comments.Delete)

		admin.GET("/tools", tools.ListAll)
		admin.POST("/tools", tools.Create)
		admin.PUT("/tools/:id", tools.Update)
		admin.DELETE("/tools/:id", tools.Delete)

		admin.GET("/friends", friends.ListAll)
		admin.POST("/friends", friends.Create)
		admin.PUT("/friends/:id", friends.Update)
		admin.DELETE("/friends/:id", friends.Delete)

		admin.GET("/albums", albums.ListAll)
		admin.POST("/albums", albums.Create)
		admin.PUT("/albums/:id", albums.Update)
		admin.DELETE("/albums/:id", albums.Delete)
		admin.POST("/albums/:id/photos", albums.AddPhoto)
		admin.PUT("/photos/:id", albums.UpdatePhoto)
		admin.DELETE("/photos/:id", albums.DeletePhoto)

		admin.POST("/banner/:device", banners.Upload)
		admin.DELETE("/banner/:device/:filename", banners.Delete)
		admin.POST("/upload", banners.UploadImage)
	}

	r.Static("/uploads", d.Config.UploadDir)

	return r
}
