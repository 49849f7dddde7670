package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"studiocatalog/internal/config"
	"studiocatalog/internal/database"
	"studiocatalog/internal/domain"
	"studiocatalog/internal/modules/auth"
	"studiocatalog/internal/modules/catalog"
	"studiocatalog/internal/modules/upload"
	jwtsvc "studiocatalog/internal/pkg/jwt"
	"studiocatalog/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&domain.AdminUser{}, &domain.Studio{}); err != nil {
		log.Fatal(err)
	}

	adminRepo := repository.NewAdminRepository(db)
	studioRepo := repository.NewStudioRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(adminRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(studioRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	blobs := upload.NewDiskBlobStore(cfg.UploadsDir, cfg.StaticURLBase, cfg.PublicBaseURL)
	uploadService := upload.NewService(blobs)
	uploadHandler := upload.NewHandler(uploadService)

	authService.OnSessionChange(func(s *auth.Session) {
		if s != nil {
			log.Printf("admin session started: %s", s.Admin.Email)
		} else {
			log.Println("admin session ended")
		}
	})

	catalogService.Subscribe(func(e catalog.Event) {
		if e.Type != "stats" {
			log.Printf("catalog %s: studio %d", e.Type, e.ID)
		}
	})

	// Load the catalog once at startup. The store serves an empty
	// catalog until this succeeds; a failure is fatal because every
	// surface reads from the cache.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.FetchAll(ctx); err != nil {
		cancel()
		log.Fatal("initial catalog fetch failed: ", err)
	}
	cancel()

	r := gin.Default()

	static := r.Group(cfg.StaticURLBase)
	static.Use(func(c *gin.Context) {
		c.Header("Cache-Control", upload.CacheControl)
	})
	static.Static("/", cfg.UploadsDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// admin surface behind bearer auth
		admin := v1.Group("/admin")
		admin.Use(auth.Middleware(j))
		{
			catalogHandler.RegisterAdminRoutes(admin)
			uploadHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
