package tbot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/repository"
	botServ "github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentBot struct{}

func (silentBot) Send(tgbotapi.Chattable) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (silentBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func message(chatID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
	if text == "/start" {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return tgbotapi.Update{Message: msg}
}

// recordingHandler remembers the order in which each chat's updates were handled.
type recordingHandler struct {
	mu    sync.Mutex
	seen  map[int64][]int
	delay time.Duration
}

func (h *recordingHandler) UpdateProcessing(_ context.Context, update *tgbotapi.Update) {
	time.Sleep(h.delay)
	h.mu.Lock()
	defer h.mu.Unlock()
	chatID := updateChatID(update)
	h.seen[chatID] = append(h.seen[chatID], update.UpdateID)
}

func TestDispatchUpdatesKeepsChatOrder(t *testing.T) {
	store := repository.NewConversationStore()
	bot := botServ.NewTgBot(nil, store, silentBot{}, time.Second)

	const chats = 50
	updates := make(chan tgbotapi.Update, 2*chats)
	for chatID := int64(1); chatID <= chats; chatID++ {
		updates <- message(chatID, "/start")
	}
	for chatID := int64(1); chatID <= chats; chatID++ {
		updates <- message(chatID, fmt.Sprintf("game %d", chatID))
	}
	close(updates)

	require.NoError(t, DispatchUpdates(context.Background(), updates, bot, 8))

	for chatID := int64(1); chatID <= chats; chatID++ {
		state, ok := store.Get(chatID)
		require.True(t, ok, "chat %d", chatID)
		assert.Equal(t, models.PhaseAwaitingGenre, state.Phase, "chat %d", chatID)
		assert.Equal(t, fmt.Sprintf("game %d", chatID), state.Keywords)
	}
}

func TestDispatchUpdatesBackToBackBatch(t *testing.T) {
	for i := 0; i < 200; i++ {
		store := repository.NewConversationStore()
		bot := botServ.NewTgBot(nil, store, silentBot{}, time.Second)

		updates := make(chan tgbotapi.Update, 2)
		updates <- message(7, "/start")
		updates <- message(7, "zelda")
		close(updates)

		require.NoError(t, DispatchUpdates(context.Background(), updates, bot, 8))

		state, ok := store.Get(7)
		require.True(t, ok)
		require.Equal(t, models.PhaseAwaitingGenre, state.Phase, "run %d", i)
		require.Equal(t, "zelda", state.Keywords)
	}
}

func TestDispatchUpdatesRunsChatsInParallel(t *testing.T) {
	h := &recordingHandler{seen: map[int64][]int{}, delay: 20 * time.Millisecond}

	updates := make(chan tgbotapi.Update, 40)
	id := 0
	for round := 0; round < 5; round++ {
		for chatID := int64(-4); chatID < 4; chatID++ {
			id++
			u := message(chatID, "x")
			u.UpdateID = id
			updates <- u
		}
	}
	close(updates)

	start := time.Now()
	require.NoError(t, DispatchUpdates(context.Background(), updates, h, 8))
	elapsed := time.Since(start)

	assert.Len(t, h.seen, 8)
	for chatID, ids := range h.seen {
		assert.IsIncreasing(t, ids, "chat %d", chatID)
		assert.Len(t, ids, 5)
	}
	assert.Less(t, elapsed, 40*20*time.Millisecond)
}

func TestShardOf(t *testing.T) {
	for _, chatID := range []int64{0, 1, 7, -1, -1001234567890} {
		shard := shardOf(chatID, 8)
		assert.GreaterOrEqual(t, shard, 0)
		assert.Less(t, shard, 8)
		assert.Equal(t, shard, shardOf(chatID, 8))
	}
}

func TestUpdateChatID(t *testing.T) {
	u := message(42, "hi")
	assert.Equal(t, int64(42), updateChatID(&u))

	cb := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 43}},
	}}
	assert.Equal(t, int64(43), updateChatID(&cb))

	from := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: 44}}}
	assert.Equal(t, int64(44), updateChatID(&from))

	assert.Zero(t, updateChatID(&tgbotapi.Update{}))
}
