package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AVIDS2/Astris-Blog/internal/auth"
	"github.com/AVIDS2/Astris-Blog/internal/cache"
	"github.com/AVIDS2/Astris-Blog/internal/config"
	"github.com/AVIDS2/Astris-Blog/internal/db"
	"github.com/AVIDS2/Astris-Blog/internal/models"
	"github.com/AVIDS2/Astris-Blog/internal/search"
	"github.com/AVIDS2/Astris-Blog/internal/service"
	"github.com/AVIDS2/Astris-Blog/internal/storage"
	"github.com/AVIDS2/Astris-Blog/internal/transport/http"
)

type Application struct {
	Config *config.Config
	DB     *db.Database
	Cache  *cache.RedisClient
	Search *search.Elastic
	Router http.Router
}

func Initialize() (*Application, error) {
	cfg := config.Load()

	database, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Tool{},
		&models.Friend{},
		&models.Album{},
		&models.Photo{},
	); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	es, err := search.NewElastic(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := es.EnsurePostsIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure search index: %w", err)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload store: %w", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpireMinutes)
	timeout := time.Duration(cfg.DBTimeoutSec) * time.Second

	authSvc := service.NewAuthService(database.Gorm, tokens, timeout)
	if err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("ensure admin user: %w", err)
	}

	r := http.NewRouter(http.Deps{
		Config:   cfg,
		Tokens:   tokens,
		Store:    store,
		Posts:    service.NewPostService(database.Gorm, redisClient, es, timeout),
		Search:   service.NewSearchService(database.Gorm, timeout),
		Comments: service.NewCommentService(database.Gorm, timeout),
		Taxonomy: service.NewTaxonomyService(database.Gorm, redisClient, timeout),
		Auth:     authSvc,
		Stats:    service.NewStatsService(database.Gorm, redisClient, timeout),
		Tools:    service.NewToolService(database.Gorm, timeout),
		Friends:  service.NewFriendService(database.Gorm, timeout),
		Albums:   service.NewAlbumService(database.Gorm, timeout),
		Banners:  service.NewBannerService(store),
	})

	return &Application{
		Config: cfg,
		DB:     database,
		Cache:  redisClient,
		Search: es,
		Router: r,
	}, nil
}

func (a *Application) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
}
