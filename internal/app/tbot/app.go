package tbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DenisKhanov/GameSearchBOT/internal/logcfg"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/config"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/metrics"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	pollTimeout       = 60 // long polling timeout, seconds
	maxEvictInterval  = 5 * time.Minute
	serverStopTimeout = 5 * time.Second
)

// App represents the application structure responsible for initializing dependencies
// and running the Telegram bot.
type App struct {
	serviceProvider *ServiceProvider // The service provider for dependency injection
	config          *config.Config   // The configuration object for the application
	envFile         string           // Path of the env file to load
	logLevel        string           // Overrides LOG_LEVEL when set
}

// NewApp creates a new instance of the application.
func NewApp(ctx context.Context, envFile, logLevel string) (*App, error) {
	app := &App{envFile: envFile, logLevel: logLevel}
	err := app.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run starts the application and runs the Telegram bot until ctx is done
// or SIGINT/SIGTERM is received.
func (a *App) Run(ctx context.Context) error {
	defer a.serviceProvider.Close()
	return a.runTelegramBot(ctx)
}

// initDeps initializes all dependencies required by the application.
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// initConfig initializes the application configuration.
func (a *App) initConfig(_ context.Context) error {
	cfg, err := config.NewConfig(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.EnvLogsLevel = a.logLevel
	}
	a.config = cfg
	return logcfg.RunLoggerConfig(a.config.EnvLogsLevel, a.config.EnvLogFileName)
}

// initServiceProvider initializes the service provider for dependency injection.
func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = NewServiceProvider(a.config)
	return nil
}

// runTelegramBot polls Telegram and processes updates with graceful shutdown.
func (a *App) runTelegramBot(ctx context.Context) error {
	myBot, err := a.serviceProvider.BotService(ctx)
	if err != nil {
		return fmt.Errorf("can't make telegram bot: %w", err)
	}
	botAPI, err := a.serviceProvider.BotAPI()
	if err != nil {
		return err
	}

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.config.EnvMetricsAddr != "" {
		srv := a.startOpsServer()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverStopTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logrus.Errorf("Ops server shutdown: %v", err)
			}
		}()
	}

	go a.evictIdleConversations(ctx, a.serviceProvider.ConversationRepository())

	// Configure updates channel
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeout
	updates := botAPI.GetUpdatesChan(ctx, updateConfig)

	logrus.Infof("Bot %s started, processing up to %d chats at once", botAPI.Self.UserName, a.config.EnvMaxConcurrentUpdates)

	// In-flight turns finish after shutdown starts
	if err = DispatchUpdates(context.WithoutCancel(ctx), updates, myBot, a.config.EnvMaxConcurrentUpdates); err != nil {
		return err
	}
	logrus.Info("Bot stopped")
	return nil
}

// startOpsServer serves metrics and health checks on METRICS_ADDR.
func (a *App) startOpsServer() *http.Server {
	srv := &http.Server{
		Addr:              a.config.EnvMetricsAddr,
		Handler:           a.serviceProvider.OpsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logrus.Infof("Ops server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("Ops server: %v", err)
		}
	}()
	return srv
}

// evictIdleConversations drops conversations idle for longer than STATE_TTL.
func (a *App) evictIdleConversations(ctx context.Context, store *repository.ConversationStore) {
	ttl := a.config.EnvStateTTL
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(min(ttl, maxEvictInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.EvictIdle(ttl); n > 0 {
				logrus.Infof("Evicted %d idle conversations", n)
			}
			metrics.ActiveConversations.Set(float64(store.Len()))
		}
	}
}
