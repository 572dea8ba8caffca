package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"titlehub/database"
	"titlehub/internal/config"
	"titlehub/internal/http-api/handler"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/repository"
	"titlehub/internal/http-api/service"
	"titlehub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// services
	mail := mailer.NewSMTPMailer(cfg)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, mail, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, genreRepo, categoryRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	auth := middleware.AuthMiddleware(authService)

	v1 := r.Group("/v1")
	// resolve the caller's identity on the open read routes too
	v1.Use(middleware.OptionalAuthMiddleware(authService))

	authGroup := v1.Group("/auth")
	authGroup.Use(middleware.RateLimit(cfg.AuthRatePerSecond, cfg.AuthRateBurst))
	handler.NewAuthHandler(authService).RegisterRoutes(authGroup)

	handler.NewUserHandler(userService).RegisterRoutes(v1, auth)
	handler.NewTitleHandler(titleService).RegisterRoutes(v1, auth)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(v1, auth)
	handler.NewGenreHandler(genreService).RegisterRoutes(v1, auth)
	handler.NewReviewHandler(reviewService).RegisterRoutes(v1, auth)
	handler.NewCommentHandler(commentService).RegisterRoutes(v1, auth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
