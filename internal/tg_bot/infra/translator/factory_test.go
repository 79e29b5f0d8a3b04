package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatorFactoryProviders(t *testing.T) {
	assert.Equal(t, []string{"deepseek", "gemini", "openai", "openrouter", "yandex"}, Providers())

	yandex, err := TranslatorFactory("Yandex", Options{
		APIKey:            "Api-Key k",
		TranslateEndpoint: "http://localhost/translate",
		DetectEndpoint:    "http://localhost/detect",
		Timeout:           time.Second,
	})
	require.NoError(t, err)
	assert.IsType(t, &api.YandexAPI{}, yandex)

	for _, provider := range []string{ProviderOpenAI, ProviderDeepSeek, ProviderGemini, ProviderOpenRouter} {
		tr, err := TranslatorFactory(provider, Options{APIKey: "k", Model: "m", Timeout: time.Second})
		require.NoError(t, err, provider)
		assert.IsType(t, &api.GenerativeTranslator{}, tr, provider)
	}
}

func TestTranslatorFactoryErrors(t *testing.T) {
	_, err := TranslatorFactory("babelfish", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported TRANSLATE_PROVIDER")

	_, err = TranslatorFactory(ProviderYandex, Options{APIKey: "k"})
	assert.Error(t, err)

	tr, err := TranslatorFactory(ProviderDeepSeek, Options{APIKey: "k"})
	assert.Error(t, err)
	assert.Nil(t, tr)
}

func TestTranslatorFactoryBaseURLOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "racing"}},
			},
		})
	}))
	defer srv.Close()

	tr, err := TranslatorFactory(ProviderOpenRouter, Options{
		APIKey:  "k",
		Model:   "m",
		BaseURL: srv.URL + "/v1",
		Timeout: time.Second,
	})
	require.NoError(t, err)

	got, err := tr.TranslateToEnglish(context.Background(), "гонки")
	require.NoError(t, err)
	assert.Equal(t, "racing", got)
}
