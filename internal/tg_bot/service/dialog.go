package service

import (
	"errors"
	"fmt"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
)

// ErrIllegalTransition is returned for an event the current phase does not accept.
var ErrIllegalTransition = errors.New("illegal dialog transition")

// Event is an input of the dialog state machine.
type Event int

const (
	EventStart    Event = iota // /start command
	EventText                  // any other text message
	EventGenre                 // genre button
	EventContinue              // "yes" button
	EventStop                  // "no" button
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventText:
		return "text"
	case EventGenre:
		return "genre"
	case EventContinue:
		return "continue"
	case EventStop:
		return "stop"
	default:
		return "unknown"
	}
}

// action is the work done when a transition fires.
type action int

const (
	actionWelcome action = iota
	actionAskGenre
	actionUseButtons
	actionSearch
	actionAskKeywords
	actionFarewell
)

type transitionKey struct {
	from  models.Phase
	event Event
}

// transition describes what an accepted event does.
// fallback is the phase entered when the action has nothing to show.
type transition struct {
	act      action
	next     models.Phase
	fallback models.Phase
}

var transitions = map[transitionKey]transition{
	{models.PhaseIdle, EventStart}:             {act: actionWelcome, next: models.PhaseAwaitingKeywords},
	{models.PhaseAwaitingKeywords, EventStart}: {act: actionWelcome, next: models.PhaseAwaitingKeywords},
	{models.PhaseAwaitingGenre, EventStart}:    {act: actionWelcome, next: models.PhaseAwaitingKeywords},
	{models.PhaseAwaitingContinue, EventStart}: {act: actionWelcome, next: models.PhaseAwaitingKeywords},

	{models.PhaseAwaitingKeywords, EventText}: {act: actionAskGenre, next: models.PhaseAwaitingGenre},
	{models.PhaseAwaitingContinue, EventText}: {act: actionUseButtons, next: models.PhaseAwaitingContinue},

	{models.PhaseAwaitingGenre, EventGenre}: {
		act:      actionSearch,
		next:     models.PhaseAwaitingContinue,
		fallback: models.PhaseAwaitingKeywords,
	},

	{models.PhaseAwaitingContinue, EventContinue}: {act: actionAskKeywords, next: models.PhaseAwaitingKeywords},
	{models.PhaseAwaitingContinue, EventStop}:     {act: actionFarewell, next: models.PhaseIdle},
}

// nextTransition looks up the transition for event in phase from.
func nextTransition(from models.Phase, event Event) (transition, error) {
	t, ok := transitions[transitionKey{from: from, event: event}]
	if !ok {
		return transition{}, fmt.Errorf("%w: %s in phase %s", ErrIllegalTransition, event, from)
	}
	return t, nil
}
