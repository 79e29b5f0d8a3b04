package translator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/api"
	botServ "github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/service"
)

// Provider names accepted by TRANSLATE_PROVIDER.
const (
	ProviderYandex     = "yandex"
	ProviderOpenAI     = "openai"
	ProviderDeepSeek   = "deepseek"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Options carries everything a translator backend may need.
type Options struct {
	APIKey            string
	Model             string // chat model name, generative providers only
	TranslateEndpoint string // Yandex translate URL
	DetectEndpoint    string // Yandex detect URL
	BaseURL           string // overrides the generative provider base URL
	Timeout           time.Duration
}

// translatorCreator defines a function to create a Translator
type translatorCreator func(opts Options) (botServ.Translator, error)

// OpenAI-compatible base URLs of the generative providers.
var generativeBaseURLs = map[string]string{
	ProviderOpenAI:     "https://api.openai.com/v1",
	ProviderDeepSeek:   "https://api.deepseek.com",
	ProviderGemini:     "https://generativelanguage.googleapis.com/v1beta/openai/",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
}

// translatorRegistry stores registered implementations
var translatorRegistry = map[string]translatorCreator{
	ProviderYandex: func(opts Options) (botServ.Translator, error) {
		if opts.TranslateEndpoint == "" || opts.DetectEndpoint == "" {
			return nil, fmt.Errorf("yandex translator needs translate and detect endpoints")
		}
		return api.NewYandexAPI(opts.TranslateEndpoint, opts.DetectEndpoint, opts.APIKey, opts.Timeout), nil
	},
	ProviderOpenAI:     generativeCreator(ProviderOpenAI),
	ProviderDeepSeek:   generativeCreator(ProviderDeepSeek),
	ProviderGemini:     generativeCreator(ProviderGemini),
	ProviderOpenRouter: generativeCreator(ProviderOpenRouter),
}

func generativeCreator(provider string) translatorCreator {
	return func(opts Options) (botServ.Translator, error) {
		baseURL := generativeBaseURLs[provider]
		if opts.BaseURL != "" {
			baseURL = opts.BaseURL
		}
		t, err := api.NewGenerativeTranslator(opts.APIKey, opts.Model, baseURL, opts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%s translator: %w", provider, err)
		}
		return t, nil
	}
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(translatorRegistry))
	for name := range translatorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TranslatorFactory creates a Translator implementation for the named provider.
func TranslatorFactory(provider string, opts Options) (botServ.Translator, error) {
	creator, exists := translatorRegistry[strings.ToLower(provider)]
	if !exists {
		return nil, fmt.Errorf("unsupported TRANSLATE_PROVIDER: %s (expected one of %s)", provider, strings.Join(Providers(), ", "))
	}
	return creator(opts)
}
