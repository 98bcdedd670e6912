package cmd

import (
	"context"
	"fmt"
	"time"

	"annobot/bot"
	"annobot/bot/commands"
	"annobot/config"
	"annobot/database"
	"annobot/events"
	"annobot/infrastructure"
	"annobot/infrastructure/observability"
	"annobot/repository"

	log "github.com/sirupsen/logrus"
)

// Run wires the stores, the optional backends and the Discord session, then
// blocks until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config) error {
	log.WithField("environment", cfg.Environment).Info("Starting annobot...")

	// Initialize database connection
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	if err := database.MigrateUp(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics.SubscribeTo(eventBus)
	defer shutdownMetrics(metrics)

	dispatcherOpts := []commands.DispatcherOption{commands.WithRecorder(metrics)}

	if cfg.RedisURL != "" {
		redisClient, err := infrastructure.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		dispatcherOpts = append(dispatcherOpts, commands.WithCooldowns(infrastructure.NewRedisCooldowns(redisClient)))
	} else {
		log.Info("REDIS_URL not set, keeping cooldowns in memory")
	}

	if cfg.NATSServers != "" {
		natsClient, err := connectAudit(ctx, cfg.NATSServers)
		if err != nil {
			return err
		}
		defer natsClient.Close()
		infrastructure.NewNATSAuditPublisher(natsClient, metrics).SubscribeTo(eventBus)
	} else {
		log.Info("NATS_SERVERS not set, audit events stay local")
	}

	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		Prefix:  cfg.CommandPrefix,
		OwnerID: cfg.OwnerID,
		Version: cfg.BotVersion,
	}, uowFactory, eventBus, dispatcherOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Info("Bot is running, press Ctrl+C to exit")
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord session")
	}
	return nil
}

func connectAudit(ctx context.Context, servers string) (*infrastructure.NATSClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := infrastructure.NewNATSClient(servers)
	if err := client.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	if err := client.EnsureAuditStream(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure audit stream: %w", err)
	}
	return client, nil
}

func shutdownMetrics(metrics *observability.MetricsProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metrics.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Failed to shut down metrics provider")
	}
}
