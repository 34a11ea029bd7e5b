package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/config"
	"github.com/Sanket4450/SonicBox-sub000/handler"
	"github.com/Sanket4450/SonicBox-sub000/logger"
	"github.com/Sanket4450/SonicBox-sub000/middleware"
	"github.com/Sanket4450/SonicBox-sub000/repository"
	"github.com/Sanket4450/SonicBox-sub000/service"
	"github.com/Sanket4450/SonicBox-sub000/utils"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(logger.Config{
		ServiceName: "sonicbox",
		Environment: cfg.Environment,
		LogFilePath: cfg.LogFilePath,
		HMACKey:     cfg.LogHMACKey,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})

	logger.Info(logger.EventServiceStartup, "SonicBox starting", logger.Fields(
		"port", cfg.ServerPort,
		"environment", cfg.Environment,
	))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal(logger.EventDBError, "Failed to connect to MongoDB", logger.Fields("error", err.Error()))
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal(logger.EventDBError, "Failed to ping MongoDB", logger.Fields("error", err.Error()))
	}
	logger.Info(logger.EventDBConnection, "Connected to MongoDB successfully", nil)

	db := client.Database(cfg.MongoDatabase)

	tokens := auth.NewManager(auth.ManagerConfig{
		AccessSecret:  cfg.AccessTokenSecret,
		AccessExpiry:  cfg.AccessTokenExpiry,
		RefreshSecret: cfg.RefreshTokenSecret,
		RefreshExpiry: cfg.RefreshTokenExpiry,
		ResetSecret:   cfg.ResetTokenSecret,
		ResetExpiry:   cfg.ResetTokenExpiry,
	})

	emailService := utils.NewEmailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
		cfg.SMTPFrom,
		cfg.AppURL,
	)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	followerRepo := repository.NewFollowerRepository(db)
	albumRepo := repository.NewAlbumRepository(db)
	songRepo := repository.NewSongRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)

	authService := service.NewAuthService(userRepo, sessionRepo, libraryRepo, tokens, emailService, cfg.ArtistSecret, cfg.AdminSecret)
	userService := service.NewUserService(userRepo, sessionRepo, followerRepo, libraryRepo, playlistRepo, tokens)
	albumService := service.NewAlbumService(userRepo, albumRepo, songRepo, libraryRepo, tokens)
	songService := service.NewSongService(userRepo, albumRepo, songRepo, playlistRepo, tokens)
	playlistService := service.NewPlaylistService(userRepo, playlistRepo, songRepo, categoryRepo, libraryRepo, tokens)
	categoryService := service.NewCategoryService(userRepo, categoryRepo, playlistRepo, tokens)
	libraryService := service.NewLibraryService(userRepo, libraryRepo, playlistRepo, albumRepo, tokens)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Content-Security-Policy", "default-src 'self'")

		c.Next()
	})

	router.Use(middleware.RequestID())

	generalLimiter := middleware.NewRateLimiter(10*time.Millisecond, 100)
	router.Use(generalLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Stricter bucket on credential endpoints
	authLimiter := middleware.NewRateLimiter(12*time.Second, 5)

	api := router.Group("/api/v1")

	handler.NewAuthHandler(authService).RegisterRoutes(api, authLimiter.Middleware())
	handler.NewUserHandler(userService).RegisterRoutes(api)
	handler.NewAlbumHandler(albumService).RegisterRoutes(api)
	handler.NewSongHandler(songService).RegisterRoutes(api)
	handler.NewPlaylistHandler(playlistService).RegisterRoutes(api)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api)
	handler.NewLibraryHandler(libraryService).RegisterRoutes(api)

	logger.Info(logger.EventServiceStartup, "Server starting", logger.Fields("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal(logger.EventGeneral, "Failed to start server", logger.Fields("error", err.Error()))
	}
}
