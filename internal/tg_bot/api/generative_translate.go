package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const translatePrompt = "Translate the user's text into English. " +
	"It describes a video game the user is looking for. " +
	"Reply with the translation only, without quotes or explanations."

// translateTemperature keeps translations close to deterministic. Zero is omitted on the wire.
const translateTemperature = 0.1

// GenerativeTranslator translates through an OpenAI compatible chat completion API.
type GenerativeTranslator struct {
	client    *openai.Client // Клиент для взаимодействия с API
	modelName string         // Версия генеративной модели
}

// NewGenerativeTranslator creates a translator for the given API key, model and base URL.
// An empty baseURL keeps the OpenAI default.
func NewGenerativeTranslator(apiKey, modelName, baseURL string, timeout time.Duration) (*GenerativeTranslator, error) {
	if apiKey == "" {
		return nil, errors.New("api key can't be empty")
	}
	if modelName == "" {
		return nil, errors.New("model name can't be empty")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &GenerativeTranslator{
		client:    openai.NewClientWithConfig(config),
		modelName: modelName,
	}, nil
}

// TranslateToEnglish asks the model for an English translation of text.
func (g *GenerativeTranslator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: translatePrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: translateTemperature,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		err = fmt.Errorf("chat completion with %s: %w", g.modelName, err)
		logrus.WithError(err).Error("Generative translation failed")
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyTranslation
	}
	result := strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"`)
	if result == "" {
		return "", ErrEmptyTranslation
	}

	logrus.WithField("model", g.modelName).Infof("Translated text to %s: %s", targetLanguage, result)
	return result, nil
}
