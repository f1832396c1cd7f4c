package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron"
	"github.com/spf13/cobra"

	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/api/handlers"
	"github.com/maheshrc27/postcal/internal/api/middleware"
	"github.com/maheshrc27/postcal/internal/database"
	"github.com/maheshrc27/postcal/internal/events"
	job "github.com/maheshrc27/postcal/internal/jobs"
	"github.com/maheshrc27/postcal/internal/queue"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the publish sweep and the delivery worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	if err := database.CreateTables(ctx, db); err != nil {
		closeDB(db)
		return err
	}

	loc := cfg.Location()
	hub := events.NewHub()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	historyRepo := repository.NewPostingHistoryRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)

	generator := service.NewAnthropicGenerator(cfg.Anthropic)
	publishService := service.NewPublishService(postRepo, historyRepo, service.NewLoggingPublisher(), hub)

	var mediaService service.MediaService
	if cfg.R2.BucketName != "" {
		r2Service, err := service.NewR2Service(ctx, cfg.R2)
		if err != nil {
			closeDB(db)
			return err
		}
		mediaService = service.NewMediaService(r2Service, mediaAssetRepo)
	} else {
		log.Println("Warning: R2 bucket is not configured, media uploads are disabled")
	}

	var (
		client    *asynq.Client
		scheduler service.PublishScheduler
		worker    *asynq.Server
	)
	if cfg.RedisURI != "" {
		redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
		client = asynq.NewClient(redisConn)
		scheduler = queue.NewScheduler(client)
		worker = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})
	} else {
		log.Println("Warning: REDIS_URI is not set, scheduled posts are delivered by the sweep only")
	}

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	postService := service.NewPostService(postRepo, mediaService, scheduler, hub)
	analyticsService := service.NewAnalyticsService(postRepo, generator, loc, nil)
	calendarService := service.NewCalendarService(postRepo, settingsRepo, generator, loc, hub, nil)
	assistantService := service.NewAssistantService(settingsRepo, generator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	routes := handlers.Routes{
		Auth:      handlers.NewAuthHandler(*cfg, authService),
		User:      handlers.NewUserHandler(userService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Posts:     handlers.NewPostHandler(postService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Calendar:  handlers.NewCalendarHandler(calendarService),
		Assistant: handlers.NewAssistantHandler(assistantService),
	}
	if mediaService != nil {
		routes.Media = handlers.NewMediaHandler(mediaService)
	}
	handlers.Register(app, middleware.NewAuthMiddleware(*cfg).AuthMiddleware(), routes)

	// cron jobs
	sweepJob := job.NewPublishSweepJob(postRepo, publishService, cfg.Sweep.Interval.Duration)
	c := cron.New()
	if err := c.AddFunc("@every "+cfg.Sweep.Interval.Duration.String(), sweepJob.Run); err != nil {
		closeDB(db)
		return err
	}
	c.Start()

	// queue
	if worker != nil {
		queueW := queue.NewQueue(postRepo, publishService)
		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		go func() {
			log.Println("Starting the Asynq server...")
			if err := worker.Run(mux); err != nil {
				log.Fatalf("Could not start Asynq server: %v", err)
			}
		}()
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db, c, worker, client)
	return nil
}

func gracefulShutdown(app *fiber.App, db *sql.DB, c *cron.Cron, worker *asynq.Server, client *asynq.Client) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	c.Stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if client != nil {
		if err := client.Close(); err != nil {
			log.Printf("Failed to close queue client: %v", err)
		}
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
