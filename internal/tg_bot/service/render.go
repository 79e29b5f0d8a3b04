package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/constant"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram limits the caption to 1024 and the message to 4096 characters.
const (
	maxNameLen        = 200
	maxRequirementLen = 1800
)

// genreKeyboard builds the genre menu, two buttons per row.
func genreKeyboard() tgbotapi.InlineKeyboardMarkup {
	genres := models.Genres.Members()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, (len(genres)+1)/2)
	for i := 0; i < len(genres); i += 2 {
		row := tgbotapi.NewInlineKeyboardRow(genreButton(genres[i]))
		if i+1 < len(genres) {
			row = append(row, genreButton(genres[i+1]))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func genreButton(g models.Genre) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(g.Value, constant.BUTTON_CODE_GENRE_PREFIX+g.Value)
}

// continueKeyboard builds the continue/stop menu shown after the results.
func continueKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(constant.BUTTON_TEXT_CONTINUE, constant.BUTTON_CODE_CONTINUE),
			tgbotapi.NewInlineKeyboardButtonData(constant.BUTTON_TEXT_STOP, constant.BUTTON_CODE_STOP),
		),
	)
}

// renderGameCard returns the messages presenting one game, in sending order:
// the summary (as a photo caption when a cover exists), the trailer link and the PC requirements.
// Absent parts are skipped.
func renderGameCard(chatID int64, card models.GameCard) []tgbotapi.Chattable {
	var out []tgbotapi.Chattable

	caption := gameCaption(card.Game)
	if card.Game.Image != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(card.Game.Image))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		out = append(out, photo)
	} else {
		out = append(out, htmlMessage(chatID, caption))
	}

	if card.TrailerURL != "" {
		text := fmt.Sprintf("%s %s:\n%s", constant.EMOJI_CLAPPER, constant.MSG_TRAILER_LABEL, card.TrailerURL)
		out = append(out, tgbotapi.NewMessage(chatID, text))
	}

	if card.Requirements.Available() {
		out = append(out, htmlMessage(chatID, requirementsText(card.Requirements)))
	}
	return out
}

func gameCaption(game models.GameSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b>\n", constant.EMOJI_VIDEO_GAME, escape(truncate(game.Name, maxNameLen)))
	fmt.Fprintf(&b, "%s %s: %s", constant.EMOJI_STAR, constant.MSG_RATING_LABEL, strconv.FormatFloat(game.Rating, 'f', -1, 64))
	if game.Released != "" {
		fmt.Fprintf(&b, "\n%s %s: %s", constant.EMOJI_CALENDAR, constant.MSG_RELEASED_LABEL, escape(game.Released))
	}
	return b.String()
}

func requirementsText(r models.Requirements) string {
	minimum, recommended := r.Minimum, r.Recommended
	if minimum == "" {
		minimum = models.RequirementsNotAvailable
	}
	if recommended == "" {
		recommended = models.RequirementsNotAvailable
	}
	return fmt.Sprintf("%s <b>%s</b>:\n\n%s <b>Minimum:</b>\n%s\n\n%s <b>Recommended:</b>\n%s",
		constant.EMOJI_COMPUTER, constant.MSG_SYSTEM_REQ_HEAD,
		constant.EMOJI_RED_TRIANGLE, escape(truncate(minimum, maxRequirementLen)),
		constant.EMOJI_BLUE_DIAMOND, escape(truncate(recommended, maxRequirementLen)),
	)
}

func htmlMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
