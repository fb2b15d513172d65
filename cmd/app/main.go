package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slapflip-backend/docs"
	"slapflip-backend/internal/common/admin"
	"slapflip-backend/internal/common/cache"
	"slapflip-backend/internal/common/config"
	"slapflip-backend/internal/common/logger"
	"slapflip-backend/internal/common/middleware"
	chatHTTP "slapflip-backend/internal/features/chat/delivery/http"
	chatRepo "slapflip-backend/internal/features/chat/repository"
	chatMemory "slapflip-backend/internal/features/chat/repository/memory"
	chatMongo "slapflip-backend/internal/features/chat/repository/mongodb"
	chatService "slapflip-backend/internal/features/chat/service"
	twitterHTTP "slapflip-backend/internal/features/twitter/delivery/http"
	twitterRepo "slapflip-backend/internal/features/twitter/repository"
	twitterMemory "slapflip-backend/internal/features/twitter/repository/memory"
	twitterMongo "slapflip-backend/internal/features/twitter/repository/mongodb"
	twitterService "slapflip-backend/internal/features/twitter/service"
	userHTTP "slapflip-backend/internal/features/user/delivery/http"
	userRepo "slapflip-backend/internal/features/user/repository"
	userMemory "slapflip-backend/internal/features/user/repository/memory"
	userMongo "slapflip-backend/internal/features/user/repository/mongodb"
	userService "slapflip-backend/internal/features/user/service"
	whitelistHTTP "slapflip-backend/internal/features/whitelist/delivery/http"
	whitelistRepo "slapflip-backend/internal/features/whitelist/repository"
	whitelistMemory "slapflip-backend/internal/features/whitelist/repository/memory"
	whitelistMongo "slapflip-backend/internal/features/whitelist/repository/mongodb"
	whitelistService "slapflip-backend/internal/features/whitelist/service"
	"slapflip-backend/internal/platform/mongodb"
	"slapflip-backend/internal/platform/redis"
)

const serviceName = "slapflip-backend"

// @title           SlapFlip API
// @version         1.0
// @description     Backend for the SlapFlip game: wallet users, Twitter-gated whitelist and chat.

// @host      localhost:8080
// @BasePath  /api

// @tag.name users
// @tag.description Wallet user records

// @tag.name whitelist
// @tag.description Whitelist status, tiers and applications

// @tag.name twitter
// @tag.description Twitter OAuth2 account linking

// @tag.name chat
// @tag.description Public chat log

// @tag.name admin
// @tag.description Whitelist review, gated by admin credentials

type repositories struct {
	users     userRepo.UserRepository
	whitelist whitelistRepo.WhitelistRepository
	sessions  twitterRepo.SessionRepository
	chat      chatRepo.ChatRepository
}

// healthCheck is one dependency checked by /ready.
type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Debug)
	logger.Info().
		Str("storage", cfg.StorageDriver).
		Str("admin_mode", cfg.Admin.Mode).
		Msg("Starting SlapFlip backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var checks []healthCheck
	var repos repositories

	switch cfg.StorageDriver {
	case config.StorageMongo:
		mongoClient, err := mongodb.NewClient(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Close(closeCtx); err != nil {
				logger.Error().Err(err).Msg("Failed to disconnect MongoDB")
			}
		}()

		if err := mongoClient.EnsureIndexes(ctx, cfg.Twitter.SessionTTL); err != nil {
			logger.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
		}

		repos = repositories{
			users:     userMongo.NewMongoRepository(mongoClient.Collection(mongodb.CollectionUsers)),
			whitelist: whitelistMongo.NewMongoRepository(mongoClient.Collection(mongodb.CollectionWhitelist)),
			sessions:  twitterMongo.NewMongoRepository(mongoClient.Collection(mongodb.CollectionTwitterAuth)),
			chat:      chatMongo.NewMongoRepository(mongoClient.Collection(mongodb.CollectionChatMessages)),
		}
		checks = append(checks, healthCheck{name: "mongodb", check: mongoClient.HealthCheck})
	default:
		logger.Warn().Msg("Using in-memory storage, data is lost on restart")
		repos = repositories{
			users:     userMemory.NewRepository(),
			whitelist: whitelistMemory.NewRepository(),
			sessions:  twitterMemory.NewRepository(),
			chat:      chatMemory.NewRepository(),
		}
	}

	var cacheService cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		cacheService = cache.NewCacheService(redisClient)
		checks = append(checks, healthCheck{name: "redis", check: redisClient.HealthCheck})
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("Read cache enabled")
	}

	userSvc := userService.NewUserService(repos.users, cacheService, cfg.Redis.CacheTTL)
	whitelistSvc := whitelistService.NewWhitelistService(repos.whitelist, cacheService, whitelistService.Options{
		AllowRejoinAfterDenial: cfg.Whitelist.AllowRejoinAfterDenial,
		CacheTTL:               cfg.Redis.CacheTTL,
	})
	twitterSvc := twitterService.NewTwitterService(twitterService.Config{
		ClientID:     cfg.Twitter.ClientID,
		ClientSecret: cfg.Twitter.ClientSecret,
		CallbackURL:  cfg.Twitter.CallbackURL,
		AuthURL:      cfg.Twitter.AuthURL,
		TokenURL:     cfg.Twitter.TokenURL,
		APIBaseURL:   cfg.Twitter.APIBaseURL,
		SessionTTL:   cfg.Twitter.SessionTTL,
		RedirectURL:  cfg.Twitter.RedirectURL,
	}, repos.sessions, whitelistSvc, userSvc)
	chatSvc := chatService.NewChatService(repos.chat)

	if cfg.Twitter.ClientID == "" {
		logger.Warn().Msg("TWITTER_CLIENT_ID is not set, Twitter linking is disabled")
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Fatal().Err(err).Msg("Invalid TRUSTED_PROXIES")
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.Origins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	userHTTP.NewUserHandler(userSvc).RegisterRoutes(api)
	whitelistHTTP.NewWhitelistHandler(whitelistSvc, admin.NewGateFromConfig(cfg)).
		WithTiersCache(middleware.ResponseCache(cacheService, time.Hour)).
		RegisterRoutes(api)
	twitterHTTP.NewTwitterHandler(twitterSvc).RegisterRoutes(api)
	chatHTTP.NewChatHandler(chatSvc, middleware.NewRateLimiter(cfg.Chat.RatePerMinute, cfg.Chat.RateBurst)).RegisterRoutes(api)

	setupHealthRoutes(router, checks)

	docs.SwaggerInfo.Host = ""
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func setupHealthRoutes(router *gin.Engine, checks []healthCheck) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		for _, hc := range checks {
			if err := hc.check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   hc.name + " unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})
}
