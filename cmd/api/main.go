package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
	"github.com/CamiloArboledaG/reviewHub/internal/handlers"
	"github.com/CamiloArboledaG/reviewHub/internal/middleware"
	"github.com/CamiloArboledaG/reviewHub/internal/repository"
	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/cache"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/mediastore"
	"github.com/CamiloArboledaG/reviewHub/pkg/queue"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting ReviewHub API server...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	userEventsProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.UserEvents)
	defer userEventsProducer.Close()

	reviewEventsProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.ReviewEvents)
	defer reviewEventsProducer.Close()

	mediaStore, err := mediastore.NewStore(ctx, &cfg.Media)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize media store")
	}

	userRepo := repository.NewUserRepository(db.DB)
	followRepo := repository.NewFollowRepository(db.DB)
	categoryRepo := repository.NewCategoryRepository(db.DB)
	itemRepo := repository.NewItemRepository(db.DB)
	avatarRepo := repository.NewAvatarRepository(db.DB)
	reviewRepo := repository.NewReviewRepository(db.DB)

	if err := categoryRepo.SeedDefaults(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to seed categories")
	}

	revocationList := services.NewRevocationList(redisClient)

	authService := services.NewAuthService(userRepo, revocationList, userEventsProducer, logger)
	userService := services.NewUserService(userRepo, followRepo, userEventsProducer, logger)
	feedService := services.NewFeedService(reviewRepo, itemRepo, categoryRepo, userRepo, followRepo, reviewEventsProducer, &cfg.Feed, logger)
	itemService := services.NewItemService(itemRepo, categoryRepo, mediaStore, &cfg.Feed, logger)
	avatarService := services.NewAvatarService(avatarRepo, mediaStore, logger)

	authHandler := handlers.NewAuthHandler(authService, &cfg.JWT, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	feedHandler := handlers.NewFeedHandler(feedService, logger)
	itemHandler := handlers.NewItemHandler(itemService, logger)
	avatarHandler := handlers.NewAvatarHandler(avatarService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, logger)
	uploadHandler := handlers.NewUploadHandler(mediaStore, logger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// CORS must echo a single origin and allow credentials for the
	// session cookie to travel.
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.Server.AllowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	jwtConfig := &middleware.JWTConfig{Secret: cfg.JWT.Secret, Revoked: revocationList}
	requireAuth := middleware.NewJWTAuth(jwtConfig)
	optionalAuth := middleware.NewOptionalJWTAuth(jwtConfig)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/profile", requireAuth, authHandler.GetProfile)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", optionalAuth, feedHandler.GetFeed)
			reviews.POST("", requireAuth, feedHandler.CreateReview)
		}

		items := api.Group("/items")
		{
			items.GET("", itemHandler.Search)
			items.GET("/:id", itemHandler.GetByID)
			items.POST("", requireAuth, itemHandler.Create)
		}

		avatars := api.Group("/avatars")
		{
			avatars.GET("", avatarHandler.List)
			avatars.GET("/defaults", avatarHandler.ListDefaults)
			avatars.GET("/:id", avatarHandler.GetByID)
			avatars.POST("", requireAuth, avatarHandler.Create)
			avatars.DELETE("/:id", requireAuth, avatarHandler.Delete)
		}

		api.GET("/categories", categoryHandler.List)

		api.POST("/upload", requireAuth, uploadHandler.Upload)
		api.DELETE("/upload/*publicId", requireAuth, uploadHandler.Delete)

		users := api.Group("/users")
		{
			users.POST("/:id/follow", requireAuth, userHandler.Follow)
			users.POST("/:id/unfollow", requireAuth, userHandler.Unfollow)
			users.GET("/following", requireAuth, userHandler.GetFollowing)
			users.GET("/followers", requireAuth, userHandler.GetFollowers)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func init() {
	if err := os.MkdirAll("configs", 0755); err != nil {
		log.Printf("Failed to create configs directory: %v", err)
	}

	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s
  allowed_origin: "http://localhost:3000"

database:
  host: "localhost"
  port: 5432
  user: "reviewhub"
  password: "reviewhub"
  dbname: "reviewhub"
  sslmode: "disable"
  max_open_conns: 100
  max_idle_conns: 10

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 100
  min_idle_conns: 10

kafka:
  brokers:
    - "localhost:9092"
  topics:
    user_events: "user-events"
    review_events: "review-events"

jwt:
  secret: "your-secret-key-change-in-production"
  expire_time: 720h
  cookie_secure: false

media:
  endpoint: ""
  region: "auto"
  access_key: ""
  secret_key: ""
  bucket: "reviewhub-media"
  public_url: "http://localhost:9000/reviewhub-media"

feed:
  default_page_size: 10
  max_page_size: 50
  stats_ttl: 0s`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
