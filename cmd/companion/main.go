package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/dnd-companion/internal/config"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
	"github.com/KirkDiggler/dnd-companion/internal/services"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TokenDB == "" {
		cfg.TokenDB = defaultTokenDB()
	}

	store, err := services.OpenTokenStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token store: %v\n", err)
		return 1
	}
	defer func() { _ = store.Close() }()
	if store.Backend == "memory" {
		logger.Warn("logins are kept in memory and end with this process")
	}

	provider, err := services.NewProvider(&services.ProviderConfig{
		Config:          cfg,
		TokenRepository: store.Repository,
		Logger:          logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if err := newApp(provider, os.Stdout).run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// defaultTokenDB places the token file in the user config dir, empty when
// there is none so the store stays in memory
func defaultTokenDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dnd-companion", "tokens.db")
}
