package custom

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// RetryDelay is the pause after a failed getUpdates call.
var RetryDelay = 3 * time.Second

// UpdatesGetter polls Telegram for new updates.
type UpdatesGetter interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type BotAPICustom struct {
	*tgbotapi.BotAPI // Встраивание оригинального API бота
}

// GetUpdatesChan starts long polling that stops with ctx.
// The returned channel is closed once polling has stopped.
func (cb *BotAPICustom) GetUpdatesChan(ctx context.Context, config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return PollUpdates(ctx, cb.BotAPI, config, cb.Buffer)
}

// PollUpdates feeds updates from getter into a channel of the given buffer size until ctx is done.
func PollUpdates(ctx context.Context, getter UpdatesGetter, config tgbotapi.UpdateConfig, buffer int) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update, buffer)

	go func() {
		defer close(ch)
		for {
			if ctx.Err() != nil {
				return
			}
			updates, err := getter.GetUpdates(config)
			if err != nil {
				logrus.WithError(err).Warnf("Failed to get updates, retrying in %v", RetryDelay)
				select {
				case <-ctx.Done():
					return
				case <-time.After(RetryDelay):
				}
				continue
			}

			for _, update := range updates {
				if update.UpdateID < config.Offset {
					continue
				}
				config.Offset = update.UpdateID + 1
				select {
				case ch <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch
}
