package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-companion/internal/config"
	"github.com/KirkDiggler/dnd-companion/internal/handlers/discord"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
	"github.com/KirkDiggler/dnd-companion/internal/services"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateDiscord(); err != nil {
		log.Fatalf("Invalid Discord config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("no .env file found")
	}

	logger.Info("starting bot",
		zap.String("app_id", cfg.Discord.AppID),
		zap.String("guild_id", cfg.Discord.GuildID),
		zap.String("profile", cfg.Profile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := services.OpenTokenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open token store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close token store", zap.Error(err))
		}
	}()

	provider, err := services.NewProvider(&services.ProviderConfig{
		Config:          cfg,
		TokenRepository: store.Repository,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("failed to create service provider", zap.Error(err))
	}

	state, err := provider.SessionService.Init(ctx)
	if err != nil {
		logger.Warn("failed to restore session", zap.Error(err))
	}
	logger.Info("session restored", zap.String("state", string(state)))

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Fatal("failed to create discord session", zap.Error(err))
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: provider,
		OwnerIDs:        cfg.Discord.OwnerIDs,
		Logger:          logger.Named("discord"),
	})

	dg.AddHandler(discord.Chain(handler.HandleInteraction,
		discord.Recover(logger),
		discord.LogInteractions(logger.Named("interactions")),
	))

	if err := dg.Open(); err != nil {
		logger.Error("failed to open discord connection", zap.Error(err))
		return
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("failed to close discord connection", zap.Error(err))
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		logger.Error("failed to register commands", zap.Error(err))
		return
	}

	if cfg.Discord.GuildID != "" {
		logger.Info("registered guild commands")
	} else {
		logger.Info("registered global commands (may take up to 1 hour to propagate)")
	}

	logger.Info("bot is now running, press CTRL-C to exit")
	<-ctx.Done()
	logger.Info("shutting down")
}
