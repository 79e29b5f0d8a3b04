// Package tbot provides dependency injection and service management for Telegram bot components.
// It initializes and provides access to services, repositories, and handlers required for bot operations.
package tbot

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/DenisKhanov/GameSearchBOT/internal/app/custom"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/api"
	botHand "github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/api/http"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/config"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/infra/translator"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/repository"
	botServ "github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// ServiceProvider manages the dependency injection for Telegram bot components.
type ServiceProvider struct {
	cfg *config.Config

	// Services
	translateService botServ.Translator
	catalogService   *api.RawgAPI
	videoService     botServ.VideoSearch
	gameFinder       *botServ.GameFinder

	// ConversationRepository
	conversationRepo *repository.ConversationStore

	// Operational HTTP handler
	opsHandler http.Handler

	// Bot API
	botAPI *custom.BotAPICustom

	// Bot service
	botService *botServ.TgBotServices

	translateOnce  sync.Once
	catalogOnce    sync.Once
	videoOnce      sync.Once
	finderOnce     sync.Once
	stateRepoOnce  sync.Once
	opsHandlerOnce sync.Once
	botAPIOnce     sync.Once
	botServiceOnce sync.Once

	translateErr  error
	videoErr      error
	botAPIErr     error
	botServiceErr error
}

// NewServiceProvider creates a new instance of the service provider.
func NewServiceProvider(cfg *config.Config) *ServiceProvider {
	return &ServiceProvider{cfg: cfg}
}

// TranslateService returns the translation backend selected by TRANSLATE_PROVIDER.
func (s *ServiceProvider) TranslateService() (botServ.Translator, error) {
	s.translateOnce.Do(func() {
		s.translateService, s.translateErr = translator.TranslatorFactory(s.cfg.EnvTranslateProvider, translator.Options{
			APIKey:            s.cfg.EnvTranslateApiKey,
			Model:             s.cfg.EnvGenerativeModel,
			TranslateEndpoint: s.cfg.EnvTranslateApiEndpoint,
			DetectEndpoint:    s.cfg.EnvDictionaryDetectApiEndpoint,
			BaseURL:           s.cfg.EnvGenerativeBaseURL,
			Timeout:           s.cfg.EnvHTTPTimeout,
		})
		if s.translateErr != nil {
			logrus.Errorf("Failed to initialize TranslateService: %v", s.translateErr)
			return
		}
		logrus.Infof("TranslateService initialized with provider %s", s.cfg.EnvTranslateProvider)
	})
	return s.translateService, s.translateErr
}

// CatalogService returns the RAWG catalog client.
func (s *ServiceProvider) CatalogService() *api.RawgAPI {
	s.catalogOnce.Do(func() {
		s.catalogService = api.NewRawgAPI(s.cfg.EnvRawgApiEndpoint, s.cfg.EnvRawgApiKey, s.cfg.EnvHTTPTimeout)
		logrus.Info("CatalogService initialized")
	})
	return s.catalogService
}

// VideoService returns the YouTube search client.
func (s *ServiceProvider) VideoService(ctx context.Context) (botServ.VideoSearch, error) {
	s.videoOnce.Do(func() {
		var yt *api.YouTubeAPI
		yt, s.videoErr = api.NewYouTubeAPI(ctx, s.cfg.EnvYoutubeApiKey, s.cfg.EnvYoutubeApiEndpoint, s.cfg.EnvHTTPTimeout)
		if s.videoErr != nil {
			logrus.Errorf("Failed to initialize VideoService: %v", s.videoErr)
			return
		}
		s.videoService = yt
		logrus.Info("VideoService initialized")
	})
	return s.videoService, s.videoErr
}

// GameFinder returns the search and enrichment service.
func (s *ServiceProvider) GameFinder(ctx context.Context) (*botServ.GameFinder, error) {
	translate, err := s.TranslateService()
	if err != nil {
		return nil, err
	}
	videos, err := s.VideoService(ctx)
	if err != nil {
		return nil, err
	}
	s.finderOnce.Do(func() {
		s.gameFinder = botServ.NewGameFinder(translate, s.CatalogService(), videos, s.cfg.EnvResultLimit, s.cfg.SearchPageSize())
		logrus.Infof("GameFinder initialized, limit %d, page size %d", s.cfg.EnvResultLimit, s.cfg.SearchPageSize())
	})
	return s.gameFinder, nil
}

// ConversationRepository returns the in-memory conversation state store.
func (s *ServiceProvider) ConversationRepository() *repository.ConversationStore {
	s.stateRepoOnce.Do(func() {
		s.conversationRepo = repository.NewConversationStore()
		logrus.Info("ConversationRepository initialized")
	})
	return s.conversationRepo
}

// OpsHandler returns the router serving /metrics and /healthz.
func (s *ServiceProvider) OpsHandler() http.Handler {
	s.opsHandlerOnce.Do(func() {
		s.opsHandler = botHand.NewRouter(botHand.NewHandler(s.ConversationRepository()))
		logrus.Info("OpsHandler initialized")
	})
	return s.opsHandler
}

// BotAPI returns the Telegram Bot API instance.
func (s *ServiceProvider) BotAPI() (*custom.BotAPICustom, error) {
	s.botAPIOnce.Do(func() {
		var bot *tgbotapi.BotAPI
		bot, s.botAPIErr = tgbotapi.NewBotAPI(s.cfg.EnvBotToken)
		if s.botAPIErr != nil {
			logrus.Errorf("Failed to initialize BotAPI: %v", s.botAPIErr)
			return
		}
		bot.Debug = s.cfg.EnvBotDebug
		s.botAPI = &custom.BotAPICustom{BotAPI: bot}
		logrus.Infof("BotApi initialized for %s", bot.Self.UserName)
	})
	return s.botAPI, s.botAPIErr
}

// BotService returns the main Telegram bot service.
func (s *ServiceProvider) BotService(ctx context.Context) (*botServ.TgBotServices, error) {
	s.botServiceOnce.Do(func() {
		var (
			finder *botServ.GameFinder
			bot    *custom.BotAPICustom
		)
		if finder, s.botServiceErr = s.GameFinder(ctx); s.botServiceErr != nil {
			return
		}
		if bot, s.botServiceErr = s.BotAPI(); s.botServiceErr != nil {
			return
		}
		s.botService = botServ.NewTgBot(finder, s.ConversationRepository(), bot, s.cfg.EnvTurnTimeout)
		logrus.Info("BotService initialized")
	})
	if s.botServiceErr != nil {
		return nil, fmt.Errorf("bot service not initialized: %w", s.botServiceErr)
	}
	return s.botService, nil
}

// Close releases the clients that hold connections.
func (s *ServiceProvider) Close() {
	if s.catalogService != nil {
		if err := s.catalogService.Close(); err != nil {
			logrus.Errorf("Failed to close CatalogService: %v", err)
		}
	}
}
