package main

import (
	"time"

	"github.com/xaenox/scamshield/internal/bot"
	"github.com/xaenox/scamshield/internal/classifier"
	"github.com/xaenox/scamshield/internal/entitlement"
	"github.com/xaenox/scamshield/internal/janitor"
	"github.com/xaenox/scamshield/internal/orchestrator"
	"github.com/xaenox/scamshield/internal/payments"
	"github.com/xaenox/scamshield/internal/promo"
	"github.com/xaenox/scamshield/internal/quota"
	"github.com/xaenox/scamshield/internal/storage"
	"github.com/xaenox/scamshield/internal/verdict"
	"github.com/xaenox/scamshield/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	switch {
	case cfg.Database.UseInMemory:
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	case cfg.Redis.Enabled:
		logger.Info("Using Redis storage")
		store, err = storage.NewRedisStorage(storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	default:
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Wire the decision core
	entitlements := entitlement.NewService(store, logger)
	usage := quota.New(store, entitlements, cfg.Quota.DailyLimit, logger)

	if cfg.OpenAI.APIKey == "" {
		logger.Info("OPENAI_API_KEY not set — AI fallback disabled")
	}
	clf := classifier.NewOpenAIClassifier(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)
	policy := verdict.NewPolicy(clf, time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second, logger)
	orch := orchestrator.New(usage, policy, logger)

	// Promo codes
	codes := make(map[string]promo.Code, len(cfg.Premium.PromoCodes))
	for name, c := range cfg.Premium.PromoCodes {
		codes[name] = promo.Code{Days: c.Days, Description: c.Description}
	}
	redeemer := promo.NewRedeemer(codes, entitlements, logger)

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, orch, entitlements, redeemer, cfg.Quota.DailyLimit, cfg.Premium.CheckoutURL, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Payment event listener
	paymentHandler := payments.NewHandler(entitlements, b.Notify, cfg.Premium.DefaultDays, logger)
	paymentServer := payments.NewServer(paymentHandler, logger)
	go func() {
		if err := paymentServer.Run(cfg.Payments.ListenAddr); err != nil {
			logger.Fatal("Payment server error", zap.Error(err))
		}
	}()

	// Nightly usage purge
	j := janitor.New(store, logger)
	if err := j.Start(); err != nil {
		logger.Fatal("Failed to start janitor", zap.Error(err))
	}
	defer j.Stop()

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
