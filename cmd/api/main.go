package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/postfolio/postfolio-backend/internal/classifier"
	"github.com/postfolio/postfolio-backend/internal/config"
	"github.com/postfolio/postfolio-backend/internal/handler"
	"github.com/postfolio/postfolio-backend/internal/middleware"
	"github.com/postfolio/postfolio-backend/internal/migration"
	"github.com/postfolio/postfolio-backend/internal/repository"
	"github.com/postfolio/postfolio-backend/internal/routes"
	"github.com/postfolio/postfolio-backend/internal/service"
	pkgcache "github.com/postfolio/postfolio-backend/pkg/cache"
	"github.com/postfolio/postfolio-backend/pkg/jwt"
	pkglogger "github.com/postfolio/postfolio-backend/pkg/logger"
	pkgredis "github.com/postfolio/postfolio-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Postfolio Backend API
// @version         1.0
// @description     Portfolio-building social platform: posts are classified and projected into a living CV
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.GetLogger().Info().
		Str("env", env).
		Strs("env_files", dotenvFiles).
		Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	pkglogger.GetLogger().Info().Msg("connected to MySQL")

	// Redis is optional; everything degrades to cache misses without it
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("redis unavailable, continuing without cache")
		redisClient = nil
	} else {
		pkglogger.GetLogger().Info().Msg("connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Classifier: Gemini when a key is configured, keyword heuristic
	// otherwise
	var cls classifier.Classifier
	if cfg.Classifier.APIKey != "" {
		cls = classifier.NewGemini(cfg.Classifier.APIKey, cfg.Classifier.Model, cfg.Classifier.BaseURL, cfg.Classifier.Timeout)
		pkglogger.GetLogger().Info().Str("model", cfg.Classifier.Model).Msg("using Gemini classifier")
	} else {
		cls = classifier.NewHeuristic()
		pkglogger.GetLogger().Warn().Msg("no API key configured, using heuristic classifier")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	cvEntryRepo := repository.NewCvEntryRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	jobRepo := repository.NewJobRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	// Services
	cvService := service.NewCvService(cvEntryRepo, cacheService)
	postService := service.NewPostService(db, postRepo, profileRepo, reactionRepo, connectionRepo, cls, cvService, cacheService)
	authService := service.NewAuthService(userRepo, profileRepo, jwtManager)
	profileService := service.NewProfileService(profileRepo)
	connectionService := service.NewConnectionService(connectionRepo, userRepo)
	jobService := service.NewJobService(jobRepo, profileRepo)
	searchService := service.NewSearchService(userRepo, profileRepo, connectionRepo)
	cvExportService := service.NewCvExportService(profileRepo, postRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	profileHandler := handler.NewProfileHandler(profileService)
	cvHandler := handler.NewCvHandler(cvService, cvExportService)
	connectionHandler := handler.NewConnectionHandler(connectionService)
	jobHandler := handler.NewJobHandler(jobService)
	searchHandler := handler.NewSearchHandler(searchService)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "postfolio-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(
		router,
		authHandler,
		postHandler,
		profileHandler,
		cvHandler,
		connectionHandler,
		jobHandler,
		searchHandler,
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.GetLogger().Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDB opens the MySQL connection and tunes the pool
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
