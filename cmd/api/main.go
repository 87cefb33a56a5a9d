package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"honeypot-llm/internal/config"
	"honeypot-llm/internal/db"
	"honeypot-llm/internal/email"
	apihttp "honeypot-llm/internal/http"
	"honeypot-llm/internal/llm"
	"honeypot-llm/internal/repository"
	"honeypot-llm/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		sessionRepo repository.SessionRepository
		messageRepo repository.MessageRepository
		intelRepo   repository.IntelligenceRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		sessionRepo = repository.NewPgSessionRepository(pool)
		messageRepo = repository.NewPgMessageRepository(pool)
		intelRepo = repository.NewPgIntelligenceRepository(pool)
	} else {
		logger.Warn("database not configured, running without persistence")
	}

	var limiter service.DelegateRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisDelegateRateLimiter(
				redisClient,
				time.Duration(cfg.DelegateRateWindowS)*time.Second,
				cfg.DelegateRateMax,
				cfg.DelegateRateGlobalMax,
			)
		}
		cancel()
	}

	var delegate *service.GenerationDelegate
	if cfg.LLMAPIKey != "" {
		llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
		delegate = service.NewGenerationDelegate(
			llmClient,
			cfg.PersonaDirective,
			time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
			limiter,
			logger,
		)
	} else {
		logger.Warn("llm api key not configured, delegated generation disabled")
	}

	alertSender := email.NewDisabledSender("alert sender not configured")
	if cfg.SMTPHost != "" && cfg.AlertTo != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.AlertTo, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			alertSender = sender
		}
	}

	if cfg.APIKey == "" {
		logger.Warn("submission api key not configured, requests are unauthenticated")
	}

	classifier := service.NewSignalClassifier(service.DefaultVocabulary())
	engine := service.NewEngine(classifier, delegate, logger)
	sessionSvc := service.NewSessionService(logger, sessionRepo, messageRepo, intelRepo, alertSender)
	chatHandler := apihttp.NewChatHandler(logger, engine, sessionSvc)
	router := apihttp.NewRouter(logger, cfg.APIKey, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting honeypot server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
