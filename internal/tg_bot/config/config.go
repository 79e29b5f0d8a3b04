package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application configuration parameters.
// Each field corresponds to an expected environment variable.
type Config struct {
	EnvLogsLevel                   string        `env:"LOG_LEVEL" envDefault:"info"`                                                                            // Log level for the application (e.g., DEBUG, INFO)
	EnvLogFileName                 string        `env:"LOG_FILE_NAME" envDefault:"gameBot.log"`                                                                 // File's name for log (e.g., Bot.log)
	EnvBotToken                    string        `env:"TOKEN_BOT"`                                                                                              // Telegram Bot Token for authentication with the Telegram API
	EnvBotDebug                    bool          `env:"BOT_DEBUG" envDefault:"false"`                                                                           // Verbose Telegram API logging
	EnvRawgApiEndpoint             string        `env:"RAWG_API_ENDPOINT" envDefault:"https://api.rawg.io/api"`                                                 // Base URL of the RAWG game catalog API
	EnvRawgApiKey                  string        `env:"RAWG_API_KEY"`                                                                                           // API Key for the RAWG catalog
	EnvYoutubeApiKey               string        `env:"YOUTUBE_API_KEY"`                                                                                        // API Key for the YouTube Data API
	EnvYoutubeApiEndpoint          string        `env:"YOUTUBE_API_ENDPOINT"`                                                                                   // Optional YouTube Data API endpoint override
	EnvTranslateProvider           string        `env:"TRANSLATE_PROVIDER" envDefault:"yandex"`                                                                 // Translation backend (yandex, openai, deepseek, gemini, openrouter)
	EnvTranslateApiEndpoint        string        `env:"TRANSLATE_API_ENDPOINT" envDefault:"https://translate.api.cloud.yandex.net/translate/v2/translate"`      // Endpoint URL for the translation API
	EnvDictionaryDetectApiEndpoint string        `env:"DICTIONARY_DETECT_API_ENDPOINT" envDefault:"https://translate.api.cloud.yandex.net/translate/v2/detect"` // Endpoint URL for the detect language API
	EnvTranslateApiKey             string        `env:"TRANSLATE_API_KEY"`                                                                                      // API Key for the translation service
	EnvGenerativeModel             string        `env:"GENERATIVE_MODEL"`                                                                                       // Model name when a generative translation backend is used
	EnvGenerativeBaseURL           string        `env:"GENERATIVE_BASE_URL"`                                                                                    // Optional base URL override of the generative backend
	EnvResultLimit                 int           `env:"RESULT_LIMIT" envDefault:"3"`                                                                            // Max games shown per search
	EnvSearchPageSize              int           `env:"SEARCH_PAGE_SIZE" envDefault:"0"`                                                                        // Catalog candidates requested per search, 0 means RESULT_LIMIT
	EnvHTTPTimeout                 time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`                                                                          // Timeout of a single upstream HTTP call
	EnvTurnTimeout                 time.Duration `env:"TURN_TIMEOUT" envDefault:"60s"`                                                                          // Timeout of a whole dialog turn
	EnvMaxConcurrentUpdates        int           `env:"MAX_CONCURRENT_UPDATES" envDefault:"8"`                                                                  // Updates processed in parallel
	EnvStateTTL                    time.Duration `env:"STATE_TTL" envDefault:"24h"`                                                                             // Idle conversations older than this are evicted
	EnvMetricsAddr                 string        `env:"METRICS_ADDR"`                                                                                           // Address of the metrics/health HTTP server, empty disables it
}

// NewConfig initializes a new Config instance by loading environment variables from envFile.
// A missing env file is not an error: the process environment is used as is.
// It returns a pointer to the Config struct and an error if any of the environment variables are missing or invalid.
func NewConfig(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		logrus.Infof("Env file %s not found, using process environment", envFile)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the required keys and numeric limits.
func (c *Config) Validate() error {
	var errs []error
	if c.EnvBotToken == "" {
		errs = append(errs, errors.New("TOKEN_BOT is required"))
	}
	if c.EnvRawgApiKey == "" {
		errs = append(errs, errors.New("RAWG_API_KEY is required"))
	}
	if c.EnvYoutubeApiKey == "" {
		errs = append(errs, errors.New("YOUTUBE_API_KEY is required"))
	}
	if c.EnvTranslateApiKey == "" {
		errs = append(errs, errors.New("TRANSLATE_API_KEY is required"))
	}
	if c.EnvTranslateProvider != "yandex" && c.EnvGenerativeModel == "" {
		errs = append(errs, fmt.Errorf("GENERATIVE_MODEL is required for TRANSLATE_PROVIDER=%s", c.EnvTranslateProvider))
	}
	if c.EnvResultLimit < 1 {
		errs = append(errs, fmt.Errorf("RESULT_LIMIT must be positive, got %d", c.EnvResultLimit))
	}
	if c.EnvSearchPageSize < 0 {
		errs = append(errs, fmt.Errorf("SEARCH_PAGE_SIZE must not be negative, got %d", c.EnvSearchPageSize))
	}
	if c.EnvMaxConcurrentUpdates < 1 {
		errs = append(errs, fmt.Errorf("MAX_CONCURRENT_UPDATES must be positive, got %d", c.EnvMaxConcurrentUpdates))
	}
	return errors.Join(errs...)
}

// SearchPageSize returns the number of catalog candidates to request per search.
func (c *Config) SearchPageSize() int {
	if c.EnvSearchPageSize < c.EnvResultLimit {
		return c.EnvResultLimit
	}
	return c.EnvSearchPageSize
}
