package main

import (
	"context"
	"database/sql"
	"fmt"
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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/content-studio/configs"
	"github.com/maheshrc27/content-studio/internal/api/handlers"
	"github.com/maheshrc27/content-studio/internal/api/middleware"
	job "github.com/maheshrc27/content-studio/internal/jobs"
	"github.com/maheshrc27/content-studio/internal/lifecycle"
	"github.com/maheshrc27/content-studio/internal/notify"
	"github.com/maheshrc27/content-studio/internal/publish"
	"github.com/maheshrc27/content-studio/internal/queue"
	"github.com/maheshrc27/content-studio/internal/repository"
	"github.com/maheshrc27/content-studio/internal/service"
	"github.com/maheshrc27/content-studio/internal/store"
	"github.com/maheshrc27/content-studio/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	sealer, err := utils.NewSealer([]byte(cfg.SecretKey))
	if err != nil {
		log.Fatalf("SECRET_KEY: %v", err)
	}

	apiToken := cfg.APIToken
	if apiToken == "" {
		apiToken, err = utils.GenerateRandomKey(32)
		if err != nil {
			log.Fatalf("Failed to generate api token: %v", err)
		}
		log.Printf("API_TOKEN not set, using generated token %s", apiToken)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer rdb.Close()
	feed := notify.NewRedisFeed(rdb, 50)

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()
	inspector := asynq.NewInspector(redisConn)
	defer inspector.Close()

	contentRepo := repository.NewContentRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	scheduledPostRepo := repository.NewScheduledPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	publishAttemptRepo := repository.NewPublishAttemptRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	chatRepo := repository.NewChatRepository(db)

	st := store.New(contentRepo, templateRepo, scheduledPostRepo, store.Options{
		RemoteTimeout: cfg.RemoteTimeout,
		Notifier:      notify.Multi{notify.LogNotifier{}, feed},
	})
	st.LoadTemplates(ctx)
	if err := st.LoadContent(ctx); err != nil {
		log.Printf("Warning: starting without stored drafts: %v", err)
	}
	if err := st.LoadScheduledPosts(ctx); err != nil {
		log.Printf("Warning: starting without scheduled posts: %v", err)
	}

	r2Service, err := service.NewR2Service(ctx, cfg.R2)
	if err != nil {
		log.Fatalf("Failed to configure media storage: %v", err)
	}

	accountService := service.NewAccountService(socialAccountRepo, sealer)
	credentialService := service.NewCredentialService(credentialRepo, sealer)
	settingsService := service.NewSettingsService(settingsRepo)
	aiService := service.NewAIService(cfg, credentialService, nil)
	contentService := service.NewContentService(st, lifecycle.NewRegistry(), aiService, settingsService)
	mediaService := service.NewMediaService(r2Service, mediaAssetRepo, st)
	chatService := service.NewChatService(chatRepo, aiService)
	publisher := service.NewSocialPublisher(accountService, nil)

	orchestrator := publish.New(st, publisher, accountService, publishAttemptRepo, queue.NewDispatcher(client, inspector), publish.Options{
		Timeout:     cfg.PublishTimeout,
		Concurrency: cfg.PublishConcurrency,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		BodyLimit:    20 * 1024 * 1024, // 20 MB
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Use(middleware.NewTokenMiddleware(apiToken).TokenMiddleware())

	handlers.NewContentHandler(contentService, orchestrator).Routes(api)
	handlers.NewScheduleHandler(st).Routes(api)
	handlers.NewAccountHandler(accountService).Routes(api)
	handlers.NewSettingsHandler(settingsService, credentialService).Routes(api)
	handlers.NewMediaHandler(mediaService).Routes(api)
	handlers.NewChatHandler(chatService).Routes(api)
	handlers.NewNotificationHandler(feed).Routes(api)
	handlers.NewHistoryHandler(publishAttemptRepo, st).Routes(api)

	// cron jobs
	sweepJob := job.NewOverdueSweepJob(orchestrator, cfg.SweepInterval)
	c := cron.New()
	if err := sweepJob.Schedule(c, cfg.SweepInterval); err != nil {
		log.Fatalf("Failed to schedule overdue sweep: %v", err)
	}
	c.Start()

	//queue
	worker := queue.NewQueue(orchestrator)
	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: cfg.PublishConcurrency,
	})
	mux := asynq.NewServeMux()
	worker.Register(mux)

	go func() {
		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, server, c, st, cfg.RemoteTimeout)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, server *asynq.Server, c *cron.Cron, st *store.Store, drain time.Duration) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
	c.Stop()
	server.Shutdown()

	// let background writes to the database finish before it is closed
	ctx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := st.Close(ctx); err != nil {
		log.Printf("Pending remote writes abandoned: %v", err)
	}

	log.Println("Server shutdown complete.")
}
