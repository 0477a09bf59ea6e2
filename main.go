package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"planova_backend/internals/configs"
	database "planova_backend/internals/databases"
	themeService "planova_backend/internals/features/preferences/theme/service"
	generationDto "planova_backend/internals/features/timetable/generation/dto"
	generationService "planova_backend/internals/features/timetable/generation/service"
	historyService "planova_backend/internals/features/timetable/history/service"
	"planova_backend/internals/features/timetable/scheduler"
	workspaceService "planova_backend/internals/features/timetable/workspace/service"
	helper "planova_backend/internals/helpers"
	middlewares "planova_backend/internals/middlewares"
	routes "planova_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ErrorHandler:            helper.ErrorHandler,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	// DB is optional: without it history is off and themes go to redis/memory
	var history historyService.Repository
	if !configs.GetEnvBool("DB_DISABLED", false) {
		if err := database.ConnectDB(); err != nil {
			log.Printf("[WARN] %v, running without history", err)
		} else {
			database.TunePool()
			if err := database.Migrate(); err != nil {
				log.Printf("[WARN] migrate: %v", err)
			}
			database.WarmUpQueries()
			history = historyService.NewGormRepository(database.DB)
		}
	}

	var themes themeService.Store
	switch rdb := configs.ConnectRedis(); {
	case rdb != nil:
		themes = themeService.NewRedisStore(rdb, 0)
		defer rdb.Close()
	case database.DB != nil:
		themes = themeService.NewGormStore(database.DB)
	default:
		themes = themeService.NewMemoryStore()
	}

	client := generationService.NewClient(configs.SchedulerURL, configs.SchedulerTimeout)

	// a nil interface, not a typed nil, when history is off
	var sink workspaceService.HistorySink
	if history != nil {
		sink = history
	}
	store := workspaceService.NewStore(client, sink)

	var purger scheduler.HistoryPurger
	if history != nil {
		purger = history
	}
	cron, err := scheduler.StartCleanupScheduler(store, purger, scheduler.CleanupConfig{
		CronSchedule:  configs.GetEnv("CRON_SCHEDULE", "*/15 * * * *"),
		IdleTTL:       configs.GetEnvDuration("WORKSPACE_IDLE_TTL", 2*time.Hour),
		RetentionDays: configs.GetEnvInt("HISTORY_RETENTION_DAYS", 30),
	})
	if err != nil {
		log.Fatalf("[CRON] add cron failed: %v", err)
	}

	secret := configs.JWTSecret
	if secret == "" {
		secret = "planova-dev-secret"
		log.Println("[WARN] using development client-token secret")
	}

	routes.SetupRoutes(app, routes.Deps{
		DB:              database.DB,
		Store:           store,
		History:         history,
		Themes:          themes,
		Validate:        generationDto.NewValidator(),
		JWTSecret:       secret,
		SecureCookie:    configs.GetEnvBool("COOKIE_SECURE", os.Getenv("RAILWAY_ENVIRONMENT") != ""),
		GenerateLimiter: middlewares.GenerateRateLimiter(),
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = configs.GetEnvDuration("WRITE_TIMEOUT", 2*time.Minute)
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("[INFO] Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-cron.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close()
}
