// Package service provides the core logic of the game search Telegram bot.
// It drives the per-chat dialog, searches the game catalog and renders the results.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/constant"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/metrics"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BotSender is the part of the Telegram Bot API the service uses.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// The ConversationRepository defines the interface for conversation state storage.
type ConversationRepository interface {
	Get(chatID int64) (models.ConversationState, bool)
	Set(state models.ConversationState)
	Delete(chatID int64)
	Lock(chatID int64) func()
	Len() int
}

// GameSearcher defines the interface for catalog searches and result enrichment.
type GameSearcher interface {
	FindGames(ctx context.Context, keywords string, genre models.Genre) ([]models.GameSummary, error)
	Enrich(ctx context.Context, games []models.GameSummary) []models.GameCard
}

// TgBotServices is the main service struct for the Telegram bot, integrating all dependencies.
type TgBotServices struct {
	Finder      GameSearcher           // Catalog search and enrichment.
	StateRepo   ConversationRepository // Conversation state repository.
	Bot         BotSender              // Telegram Bot API instance.
	turnTimeout time.Duration          // Deadline of a single turn, 0 disables it
}

// turn is a single incoming event being processed.
type turn struct {
	chatID int64
	event  Event
	text   string
	genre  models.Genre
	log    *logrus.Entry
}

// NewTgBot creates a new TgBotServices instance with the specified dependencies.
// Arguments:
//   - finder: catalog search and enrichment service.
//   - stateRepository: conversation state repository.
//   - bot: Telegram Bot API instance.
//   - turnTimeout: deadline of a single turn, 0 disables it.
//
// Returns a pointer to a TgBotServices.
func NewTgBot(finder GameSearcher, stateRepository ConversationRepository, bot BotSender, turnTimeout time.Duration) *TgBotServices {
	return &TgBotServices{
		Finder:      finder,
		StateRepo:   stateRepository,
		Bot:         bot,
		turnTimeout: turnTimeout,
	}
}

// sendMessage sends a text message to the specified chat with optional markup.
// Arguments:
//   - chatID: the ID of the chat to send the message to.
//   - text: the text content of the message.
//   - markup: an optional keyboard or inline markup (nil if none).
//
// Returns an error if the message fails to send.
func (b *TgBotServices) sendMessage(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	return b.send(msg)
}

// send delivers any prepared Telegram message.
func (b *TgBotServices) send(c tgbotapi.Chattable) error {
	if _, err := b.Bot.Send(c); err != nil {
		metrics.UpstreamErrors.WithLabelValues(metrics.APITelegram).Inc()
		logrus.WithError(err).Errorf("Failed to send %T", c)
		return err
	}
	return nil
}

// UpdateProcessing handles an incoming Telegram update (message or callback query).
// Turns of the same chat are serialized; updates that are not dialog events are ignored.
func (b *TgBotServices) UpdateProcessing(ctx context.Context, update *tgbotapi.Update) {
	t, ok := b.parseUpdate(update)
	if !ok {
		return
	}
	metrics.UpdatesTotal.WithLabelValues(t.event.String()).Inc()

	if b.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.turnTimeout)
		defer cancel()
	}

	unlock := b.StateRepo.Lock(t.chatID)
	defer unlock()

	startTime := time.Now()
	err := b.handleTurn(ctx, t)
	metrics.ActiveConversations.Set(float64(b.StateRepo.Len()))

	switch {
	case err == nil:
		t.log.Debugf("Turn handled in %v", time.Since(startTime))
	case errors.Is(err, errNoConversation):
		t.log.Debug("Ignoring event without conversation")
	case errors.Is(err, ErrIllegalTransition):
		t.log.WithError(err).Warn("Event rejected")
	default:
		t.log.WithError(err).Error("Turn failed")
	}
}

// errNoConversation marks an illegal event of a chat that has no state.
var errNoConversation = errors.New("no conversation")

// parseUpdate maps a Telegram update to a dialog event.
func (b *TgBotServices) parseUpdate(update *tgbotapi.Update) (*turn, bool) {
	switch {
	case update.CallbackQuery != nil:
		return b.parseCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.Chat != nil && update.Message.Text != "":
		msg := update.Message
		t := &turn{chatID: msg.Chat.ID, event: EventText, text: strings.TrimSpace(msg.Text)}
		if isStartCommand(msg) {
			t.event = EventStart
		}
		t.log = turnLogger(t)
		if msg.From != nil {
			t.log = t.log.WithField("user", msg.From.UserName)
		}
		return t, true
	default:
		return nil, false
	}
}

// parseCallback answers the callback query and maps its data to a dialog event.
func (b *TgBotServices) parseCallback(query *tgbotapi.CallbackQuery) (*turn, bool) {
	if _, err := b.Bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logrus.WithError(err).Warn("Failed to answer callback query")
	}

	t := &turn{}
	switch {
	case query.Message != nil && query.Message.Chat != nil:
		t.chatID = query.Message.Chat.ID
	case query.From != nil:
		t.chatID = query.From.ID
	default:
		return nil, false
	}

	data := query.Data
	switch {
	case data == constant.BUTTON_CODE_CONTINUE:
		t.event = EventContinue
	case data == constant.BUTTON_CODE_STOP:
		t.event = EventStop
	case strings.HasPrefix(data, constant.BUTTON_CODE_GENRE_PREFIX):
		genre := models.Genres.Parse(strings.TrimPrefix(data, constant.BUTTON_CODE_GENRE_PREFIX))
		if genre == nil {
			logrus.WithField("data", data).Warn("Unknown genre in callback data")
			return nil, false
		}
		t.event = EventGenre
		t.genre = *genre
	default:
		logrus.WithField("data", data).Warn("Unknown callback data")
		return nil, false
	}
	t.log = turnLogger(t)
	return t, true
}

func turnLogger(t *turn) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"trace_id": uuid.NewString(),
		"chatID":   t.chatID,
		"event":    t.event.String(),
	})
}

func isStartCommand(msg *tgbotapi.Message) bool {
	if msg.IsCommand() {
		return msg.Command() == constant.COMMAND_START
	}
	return msg.Text == "/"+constant.COMMAND_START
}

// handleTurn runs the transition accepted for the event in the chat's current phase.
func (b *TgBotServices) handleTurn(ctx context.Context, t *turn) error {
	state, exists := b.StateRepo.Get(t.chatID)
	phase := models.PhaseIdle
	if exists {
		phase = state.Phase
	}

	tr, err := nextTransition(phase, t.event)
	if err != nil {
		metrics.IllegalTransitions.WithLabelValues(phase.String()).Inc()
		if !exists {
			return fmt.Errorf("%w: %w", errNoConversation, err)
		}
		return err
	}
	t.log.WithField("phase", phase.String()).Debugf("Transition to %s", tr.next)

	switch tr.act {
	case actionWelcome:
		b.StateRepo.Set(models.ConversationState{ChatID: t.chatID, Phase: tr.next})
		return b.sendMessage(t.chatID, constant.MSG_WELCOME, nil)

	case actionAskGenre:
		state.Keywords = t.text
		state.Phase = tr.next
		b.StateRepo.Set(state)
		return b.sendMessage(t.chatID, constant.MSG_ASK_GENRE, genreKeyboard())

	case actionUseButtons:
		return b.sendMessage(t.chatID, constant.MSG_USE_BUTTONS, nil)

	case actionSearch:
		state.Genre = t.genre
		return b.searchAndPresent(ctx, t, state, tr)

	case actionAskKeywords:
		b.StateRepo.Set(models.ConversationState{ChatID: t.chatID, Phase: tr.next})
		return b.sendMessage(t.chatID, constant.MSG_ASK_KEYWORDS, nil)

	case actionFarewell:
		b.StateRepo.Delete(t.chatID)
		return b.sendMessage(t.chatID, constant.MSG_FAREWELL, nil)

	default:
		return fmt.Errorf("unhandled action %d", tr.act)
	}
}

// searchAndPresent searches games for the stored keywords and genre, sends one card per game
// and offers to continue. With nothing to show the dialog goes back to keyword collection.
func (b *TgBotServices) searchAndPresent(ctx context.Context, t *turn, state models.ConversationState, tr transition) error {
	if err := b.sendMessage(t.chatID, fmt.Sprintf(constant.MSG_SEARCHING, state.Genre.Value), nil); err != nil {
		t.log.WithError(err).Warn("Failed to send search notice")
	}

	games, err := b.Finder.FindGames(ctx, state.Keywords, state.Genre)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(metrics.SearchFailed).Inc()
		t.log.WithError(err).Error("Game search failed")
		b.StateRepo.Set(models.ConversationState{ChatID: t.chatID, Phase: tr.fallback})
		return b.sendMessage(t.chatID, constant.MSG_SEARCH_FAILED, nil)
	}
	if len(games) == 0 {
		metrics.SearchesTotal.WithLabelValues(metrics.SearchEmpty).Inc()
		b.StateRepo.Set(models.ConversationState{ChatID: t.chatID, Phase: tr.fallback})
		return b.sendMessage(t.chatID, constant.MSG_NOT_FOUND, nil)
	}
	metrics.SearchesTotal.WithLabelValues(metrics.SearchFound).Inc()

	for _, card := range b.Finder.Enrich(ctx, games) {
		for _, c := range renderGameCard(t.chatID, card) {
			b.sendCardPart(t, c)
		}
		metrics.GamesShownTotal.Inc()
	}

	state.Phase = tr.next
	b.StateRepo.Set(state)
	return b.sendMessage(t.chatID, constant.MSG_ASK_CONTINUE, continueKeyboard())
}

// sendCardPart sends one rendered message. A photo Telegram refuses is resent as plain text.
func (b *TgBotServices) sendCardPart(t *turn, c tgbotapi.Chattable) {
	err := b.send(c)
	if err == nil {
		return
	}
	photo, ok := c.(tgbotapi.PhotoConfig)
	if !ok {
		return
	}
	t.log.WithError(err).Warn("Cover image rejected, sending caption only")
	_ = b.send(htmlMessage(t.chatID, photo.Caption))
}
