package models

import "time"

// Phase is the step a conversation is currently in.
type Phase int

const (
	PhaseIdle             Phase = iota // no state stored for the chat
	PhaseAwaitingKeywords              // waiting for a free-text game description
	PhaseAwaitingGenre                 // waiting for a genre button
	PhaseAwaitingContinue              // results shown, waiting for continue/stop
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingKeywords:
		return "awaiting_keywords"
	case PhaseAwaitingGenre:
		return "awaiting_genre"
	case PhaseAwaitingContinue:
		return "awaiting_continue"
	default:
		return "unknown"
	}
}

// ConversationState is the dialog state of a single chat.
type ConversationState struct {
	ChatID    int64     `json:"chatID"`    // Идентификатор чата
	Phase     Phase     `json:"phase"`     // Текущий этап диалога с пользователем
	Keywords  string    `json:"keywords"`  // Описание игры, введённое пользователем
	Genre     Genre     `json:"genre"`     // Выбранный жанр, пустой до выбора
	UpdatedAt time.Time `json:"updatedAt"` // Время последнего изменения состояния
}
