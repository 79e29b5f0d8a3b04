package service

import (
	"context"
	"sync"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

type mockTranslator struct {
	mock.Mock
}

func (m *mockTranslator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	ret := m.Called(ctx, text)
	return ret.String(0), ret.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) SearchGames(ctx context.Context, query string, pageSize int) ([]models.GameSummary, error) {
	ret := m.Called(ctx, query, pageSize)
	games, _ := ret.Get(0).([]models.GameSummary)
	return games, ret.Error(1)
}

func (m *mockCatalog) GamePlatforms(ctx context.Context, gameID int) ([]models.PlatformEntry, error) {
	ret := m.Called(ctx, gameID)
	platforms, _ := ret.Get(0).([]models.PlatformEntry)
	return platforms, ret.Error(1)
}

type mockVideos struct {
	mock.Mock
}

func (m *mockVideos) FirstVideoURL(ctx context.Context, query string) (string, error) {
	ret := m.Called(ctx, query)
	return ret.String(0), ret.Error(1)
}

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) FindGames(ctx context.Context, keywords string, genre models.Genre) ([]models.GameSummary, error) {
	ret := m.Called(ctx, keywords, genre)
	games, _ := ret.Get(0).([]models.GameSummary)
	return games, ret.Error(1)
}

func (m *mockSearcher) Enrich(ctx context.Context, games []models.GameSummary) []models.GameCard {
	ret := m.Called(ctx, games)
	cards, _ := ret.Get(0).([]models.GameCard)
	return cards
}

// fakeBot records everything the service sends.
type fakeBot struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	answered  []string
	sendErrFn func(c tgbotapi.Chattable) error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErrFn != nil {
		if err := f.sendErrFn(c); err != nil {
			return tgbotapi.Message{}, err
		}
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.answered = append(f.answered, cb.CallbackQueryID)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// texts returns the text or caption of every sent message.
func (f *fakeBot) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.PhotoConfig:
			out = append(out, m.Caption)
		}
	}
	return out
}

func (f *fakeBot) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
	f.answered = nil
}
