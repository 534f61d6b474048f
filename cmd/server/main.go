package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sentinel-mod/dashboard"
	dashapi "github.com/sentinel-mod/dashboard/api/echo"
	"github.com/sentinel-mod/dashboard/cache"
	redicache "github.com/sentinel-mod/dashboard/cache/redis"
	"github.com/sentinel-mod/dashboard/config"
	"github.com/sentinel-mod/dashboard/log"
	"github.com/sentinel-mod/dashboard/mongodb"
	"github.com/sentinel-mod/dashboard/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
	}
	appLogger := log.NewZerologAdapter(logLevel, cfg.LogPretty)

	ctx := context.Background()
	appLogger.Info(ctx, "Starting sentinel dashboard backend...")

	// Missing Discord credentials must kill the process here, not surface
	// as a broken login flow later.
	if err := cfg.Validate(); err != nil {
		appLogger.Fatal(ctx, "Invalid configuration", err)
	}
	if cfg.BotSyncToken == "" {
		appLogger.Warn(ctx, "BOT_SYNC_TOKEN is not set; /api/bot routes are unauthenticated")
	}

	var tracerProvider *sdktrace.TracerProvider
	tracerProvider, err = tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize TracerProvider", err)
	}

	if initErr := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); initErr != nil {
		appLogger.Fatal(ctx, "Failed to initialize MongoDB connection", initErr)
	}
	db := mongodb.GetDB()

	// Repositories
	userRepo, err := mongodb.NewUserRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize UserRepository", err)
	}
	settingsRepo, err := mongodb.NewGuildSettingsRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize GuildSettingsRepository", err)
	}
	moderationRepo, err := mongodb.NewModerationRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize ModerationRepository", err)
	}
	aiRepo, err := mongodb.NewAISettingsRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize AISettingsRepository", err)
	}

	// Guild-membership cache: Redis when configured, in-process otherwise.
	cacheTTL := time.Duration(cfg.GuildCacheTTLSec) * time.Second
	var guildCache cache.GuildCache
	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		guildCache = redicache.NewGuildCache(redisClient, cfg.OtelServiceName, cacheTTL)
		appLogger.Info(ctx, "Guild cache backed by Redis", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		guildCache = cache.NewMemoryGuildCache(cacheTTL)
	}

	// Core services
	discordClient := dashboard.NewDiscordClient(dashboard.DiscordConfig{
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		RedirectURI:  cfg.DiscordRedirectURI,
		BotToken:     cfg.DiscordBotToken,
	})
	sessionTTL := time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	sessions := dashboard.NewSessionService(cfg.SessionSecret, sessionTTL)
	authorizer := dashboard.NewAuthorizer(cfg.BotOwnerID, discordClient, guildCache)

	api := dashapi.NewDashboardAPI(
		sessions,
		authorizer,
		discordClient,
		userRepo,
		settingsRepo,
		moderationRepo,
		aiRepo,
		cfg.FrontendURL,
		cfg.BotSyncToken,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	api.RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(ctx, "HTTP server failed", err)
		}
	}()
	appLogger.Info(ctx, "HTTP server listening", map[string]interface{}{"port": cfg.HTTPPort})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "HTTP server shutdown failed", err)
	}
	mongodb.CloseMongoDB(shutdownCtx)
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "TracerProvider shutdown failed", err)
	}
	appLogger.Info(ctx, "Shutdown complete.")
}
