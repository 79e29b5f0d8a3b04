// Package api provides clients for the upstream services of the bot:
// translation backends, the RAWG game catalog and YouTube video search.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// targetLanguage is the language catalog queries are issued in.
const targetLanguage = "en"

// ErrEmptyTranslation is returned when a backend answers without any translated text.
var ErrEmptyTranslation = errors.New("no translations returned")

// YandexAPI manages interactions with the Yandex Translate and Detect Language APIs.
type YandexAPI struct {
	token        string       // Authentication header value for API requests.
	endTranslate string       // Endpoint URL for the Translate API.
	endDetect    string       // Endpoint URL for the Detect Language API.
	client       *http.Client // HTTP client
}

// TranslateRequest is the top-level structure for the translation request.
type TranslateRequest struct {
	SourceLanguageCode string   `json:"sourceLanguageCode,omitempty"` // Source language code (e.g., "fa").
	TargetLanguageCode string   `json:"targetLanguageCode"`           // Target language code (e.g., "en").
	Format             string   `json:"format"`                       // Format of the text (e.g., "PLAIN_TEXT").
	Texts              []string `json:"texts"`                        // List of texts to translate.
	Speller            bool     `json:"speller"`                      // Enable spell checking.
}

// Translation represents a single translation result.
type Translation struct {
	Text                 string `json:"text"`
	DetectedLanguageCode string `json:"detectedLanguageCode"`
}

// TranslateResponse contains the response from the Translate API.
type TranslateResponse struct {
	Translations []Translation `json:"translations"`
}

// DetectLangReq is the structure for a language detection request.
type DetectLangReq struct {
	Text              string   `json:"text"`
	LanguageCodeHints []string `json:"languageCodeHints"`
}

// DetectLangRes contains the response from the Detect Language API.
type DetectLangRes struct {
	LanguageCode string `json:"languageCode"`
}

// NewYandexAPI creates a new instance of YandexAPI with the specified endpoints and token.
// Arguments:
//   - endTranslate: endpoint URL for the Translate API.
//   - endDetect: endpoint URL for the Detect Language API.
//   - token: Authorization header value, e.g. "Api-Key <key>".
//   - timeout: timeout of a single request.
//
// Returns a pointer to a YandexAPI.
func NewYandexAPI(endTranslate, endDetect, token string, timeout time.Duration) *YandexAPI {
	return &YandexAPI{
		endTranslate: endTranslate,
		endDetect:    endDetect,
		token:        token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// TranslateToEnglish detects the language of text and translates it to English.
// Text already detected as English is returned unchanged.
func (y *YandexAPI) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	detectedLang, err := y.DetectLangAPI(ctx, text)
	if err != nil {
		return "", fmt.Errorf("language detection failed: %w", err)
	}
	if detectedLang == targetLanguage {
		return text, nil
	}

	reqBody := TranslateRequest{
		SourceLanguageCode: detectedLang,
		TargetLanguageCode: targetLanguage,
		Format:             "PLAIN_TEXT",
		Texts:              []string{text},
		Speller:            true,
	}
	var response TranslateResponse
	if err = y.postJSON(ctx, y.endTranslate, reqBody, &response); err != nil {
		logrus.WithError(err).Error("TranslateAPI request failed")
		return "", err
	}

	if len(response.Translations) == 0 || response.Translations[0].Text == "" {
		logrus.WithError(ErrEmptyTranslation).Error("TranslateAPI response is empty")
		return "", ErrEmptyTranslation
	}

	result := response.Translations[0].Text
	logrus.Infof("Translated text from %s to %s: %s", detectedLang, targetLanguage, result)
	return result, nil
}

// DetectLangAPI detects the language of the given text.
// Returns the detected language code or an error if the request fails.
func (y *YandexAPI) DetectLangAPI(ctx context.Context, text string) (string, error) {
	reqBody := DetectLangReq{
		Text:              text,
		LanguageCodeHints: []string{"fa", "ru", "en"},
	}
	var response DetectLangRes
	if err := y.postJSON(ctx, y.endDetect, reqBody, &response); err != nil {
		logrus.WithError(err).Error("DetectLangAPI request failed")
		return "", err
	}

	if response.LanguageCode == "" {
		err := errors.New("no language detected")
		logrus.WithError(err).Error("DetectLangAPI returned empty language code")
		return "", err
	}

	logrus.Debugf("Detected language: %s", response.LanguageCode)
	return response.LanguageCode, nil
}

// postJSON sends body as JSON to endpoint and decodes a 200 response into out.
func (y *YandexAPI) postJSON(ctx context.Context, endpoint string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", y.token)

	res, err := y.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer func() {
		if err = res.Body.Close(); err != nil {
			logrus.WithError(err).Errorf("Failed to close response body: %v", err)
		}
	}()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", res.StatusCode, string(data))
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
