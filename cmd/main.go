package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"quote-service/internal/ai/gemini"
	"quote-service/internal/config"
	"quote-service/internal/database/minio"
	"quote-service/internal/database/postgres"
	"quote-service/internal/database/redis"
	"quote-service/internal/event"
	"quote-service/internal/handlers"
	"quote-service/internal/mail"
	"quote-service/internal/pricing"
	"quote-service/internal/repository"
	"quote-service/internal/services"
	"quote-service/internal/worker"
	utils "quote-service/shared/utils"

	"github.com/jmoiron/sqlx"
)

func setupLogging(cfg config.LogConfig) (*os.File, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(cfg.Dir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(os.Stdout, file), &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	slog.SetDefault(slog.New(handler))
	return file, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// waitForDatabase blocks until Postgres is reachable or ctx is done.
func waitForDatabase(ctx context.Context, cfg config.PostgresConfig) *sqlx.DB {
	connected := make(chan *sqlx.DB, 1)
	go postgres.RetryConnectOnFailed(ctx, 10*time.Second, cfg, func(db *sqlx.DB) {
		connected <- db
	})
	select {
	case db := <-connected:
		return db
	case <-ctx.Done():
		return nil
	}
}

func main() {
	cfg := config.New()
	logFile, err := setupLogging(cfg.LogCfg)
	if err != nil {
		log.Printf("Failed to set up file logging, logging to stdout only: %v", err)
	} else {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Connecting to PostgreSQL",
		"host", cfg.PostgresCfg.Host,
		"port", cfg.PostgresCfg.Port,
		"user", cfg.PostgresCfg.Username,
		"dbname", cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("error connect to database, retrying", "error", err)
		if db = waitForDatabase(ctx, cfg.PostgresCfg); db == nil {
			return
		}
	}
	defer db.Close()

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	healthChecks := map[string]handlers.HealthCheck{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.GetClient().Ping(ctx).Err()
		},
	}

	var storage services.ObjectStorage
	if minioClient, err := minio.NewMinioClient(cfg.MinioCfg); err != nil {
		slog.Warn("MinIO unavailable, logo upload and rate table snapshots disabled", "error", err)
	} else {
		storage = minioClient
		healthChecks["minio"] = minioClient.HealthCheck
	}

	var (
		publisher      services.QuoteEventPublisher
		quotePublisher *event.QuotePublisher
	)
	if rabbit, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg); err != nil {
		slog.Warn("RabbitMQ unavailable, quote events disabled", "error", err)
	} else {
		defer rabbit.Close()
		quotePublisher = event.NewQuotePublisher(rabbit)
		publisher = quotePublisher
	}

	var mailer services.QuoteMailer
	if cfg.MailCfg.Enabled {
		mailer = mail.NewEmailService(cfg.MailCfg)
	} else {
		slog.Warn("MAIL_USERNAME not set, quote emails disabled")
	}

	var chatModel services.ChatModel
	if keys := utils.SplitAndTrim(cfg.GeminiAPICfg.APIKeys); len(keys) > 0 {
		clients, err := gemini.NewGenAIClients(keys, cfg.GeminiAPICfg.FlashName)
		if err != nil {
			slog.Error("failed to create Gemini clients", "error", err)
		} else {
			chatModel = gemini.NewGeminiClientSelector(clients)
			defer func() {
				for i := range clients {
					clients[i].Close()
				}
			}()
		}
	} else {
		slog.Warn("GEMINI_KEYS not set, chat assistant answers with the fallback message")
	}

	pool := worker.NewWorkingPool(cfg.WorkerCfg.NumWorkers, cfg.WorkerCfg.QueueSize)
	poolCtx, stopPool := context.WithCancel(context.Background())
	var poolWg sync.WaitGroup
	poolWg.Add(1)
	go pool.Start(poolCtx, &poolWg)

	// repositories
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient.GetClient())
	companyCache := repository.NewCompanyCacheRepository(redisClient.GetClient(), cfg.RedisCfg.ProductCacheTTL)
	chatRepo := repository.NewChatSessionRepository(redisClient.GetClient(), cfg.GeminiAPICfg.ChatTTL)

	// services
	jwtService := services.NewJWTService(cfg.AuthCfg.JWTSecret, cfg.AuthCfg.TokenTTL)
	authService := services.NewAuthService(userRepo, companyRepo, sessionRepo, jwtService)
	companyService := services.NewCompanyService(companyRepo, companyCache, storage)
	insuranceService := services.NewInsuranceTypeService(companyRepo, companyCache, storage)
	quoteService := services.NewQuoteService(insuranceService, pricing.NewCalculator(slog.Default()), pool, publisher, mailer)
	chatService := services.NewChatService(chatRepo, insuranceService, quoteService, chatModel)

	app := handlers.NewApp()
	middleware := handlers.NewMiddleware(authService)
	handlers.NewHealthHandler(healthChecks).Register(app)
	handlers.NewAuthHandler(authService, middleware).Register(app)
	handlers.NewCompanyHandler(companyService, middleware).Register(app)
	handlers.NewInsuranceHandler(insuranceService, middleware).Register(app)
	handlers.NewQuoteHandler(quoteService).Register(app)
	handlers.NewChatHandler(chatService).Register(app)

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			slog.Error("Error starting server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	stopPool()
	poolWg.Wait()

	if quotePublisher != nil {
		published, failed := quotePublisher.Stats()
		slog.Info("Quote events summary", "published", published, "failed", failed)
	}
	slog.Info("Server stopped")
}
