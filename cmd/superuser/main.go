package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/millermeares/FantasyFootballSuperUser/internal/analysis"
	"github.com/millermeares/FantasyFootballSuperUser/internal/api/snapshot"
	"github.com/millermeares/FantasyFootballSuperUser/internal/bot"
	"github.com/millermeares/FantasyFootballSuperUser/internal/config"
	"github.com/millermeares/FantasyFootballSuperUser/internal/directory"
	"github.com/millermeares/FantasyFootballSuperUser/internal/httpapi"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
	"github.com/millermeares/FantasyFootballSuperUser/internal/repository/memory"
	"github.com/millermeares/FantasyFootballSuperUser/internal/scheduler"
	"github.com/millermeares/FantasyFootballSuperUser/internal/service"
)

func main() {
	logging.SetDefault(logging.NewJSON(logging.LevelInfo))
	if err := run(); err != nil {
		logging.Default().Error("Error running application", "error", err)
		_ = logging.Default().Sync()
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		logging.Default().Warn("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := logging.NewJSON(logging.ParseLevel(cfg.LogLevel))
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	policy, err := analysis.ParseConflictPolicy(cfg.Analysis.ConflictPolicy)
	if err != nil {
		return err
	}

	players, err := directory.Load(cfg.Data.PlayersPath)
	if err != nil {
		return err
	}
	logger.Info("Player directory loaded", "players", players.Len())

	snapshotAPI := snapshot.NewAPI(snapshot.NewClient(cfg.Data.SnapshotPath), logger)

	repo := memory.NewRepository()
	fantasyService := service.NewFantasyService(snapshotAPI, repo, players, service.Options{
		RefreshInterval: cfg.Data.RefreshInterval,
		ConflictPolicy:  policy,
		Logger:          logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fantasyService.Refresh(ctx); err != nil {
		logger.Error("Initial snapshot load failed", "error", err, "path", cfg.Data.SnapshotPath)
	}

	var sendMessage func(string) error
	if cfg.BotEnabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, fantasyService, logger)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				logger.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		logger.Info("Telegram token not set, bot disabled")
	}

	sched, err := scheduler.NewScheduler(fantasyService, sendMessage, scheduler.Options{
		Timezone:        cfg.Analysis.Timezone,
		RefreshInterval: cfg.Data.RefreshInterval,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			logger.Error("Error stopping scheduler", "error", err)
		}
	}()

	server := httpapi.NewServer(fantasyService, logger)
	if err := server.ListenAndServe(ctx, cfg.HTTP.Addr); err != nil {
		return err
	}

	logger.Info("Shutting down gracefully...")
	return nil
}
