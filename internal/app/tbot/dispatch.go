package tbot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// shardBuffer is the number of queued updates per worker before polling blocks.
const shardBuffer = 64

// UpdateHandler processes a single Telegram update.
type UpdateHandler interface {
	UpdateProcessing(ctx context.Context, update *tgbotapi.Update)
}

// DispatchUpdates hands updates to workers, each draining its own FIFO queue.
// All updates of one chat go to the same worker, so they are processed one by one in arrival order
// while different chats run in parallel. It returns after updates is closed and every queued update is handled.
func DispatchUpdates(ctx context.Context, updates <-chan tgbotapi.Update, handler UpdateHandler, workers int) error {
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	queues := make([]chan tgbotapi.Update, workers)
	for i := range queues {
		queue := make(chan tgbotapi.Update, shardBuffer)
		queues[i] = queue
		g.Go(func() error {
			for update := range queue {
				processUpdate(ctx, handler, &update)
			}
			return nil
		})
	}

	for update := range updates {
		queues[shardOf(updateChatID(&update), workers)] <- update
	}
	for _, queue := range queues {
		close(queue)
	}
	return g.Wait()
}

func processUpdate(ctx context.Context, handler UpdateHandler, update *tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("update_id", update.UpdateID).Errorf("Panic while processing update: %v", r)
		}
	}()
	handler.UpdateProcessing(ctx, update)
}

// shardOf maps a chat ID to a worker index. Group chats have negative IDs.
func shardOf(chatID int64, workers int) int {
	return int(uint64(chatID) % uint64(workers))
}

// updateChatID returns the chat an update belongs to, or 0 when it has none.
func updateChatID(update *tgbotapi.Update) int64 {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID
	default:
		return 0
	}
}
