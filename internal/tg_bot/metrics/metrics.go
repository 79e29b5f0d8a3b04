// Package metrics holds the Prometheus collectors of the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream API labels.
const (
	APITranslate = "translate"
	APICatalog   = "catalog"
	APIVideo     = "video"
	APITelegram  = "telegram"
)

// Search outcome labels.
const (
	SearchFound  = "found"
	SearchEmpty  = "empty"
	SearchFailed = "failed"
)

var (
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamebot_updates_total",
		Help: "Telegram updates processed, by kind.",
	}, []string{"kind"})

	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamebot_searches_total",
		Help: "Game searches, by outcome.",
	}, []string{"outcome"})

	GamesShownTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamebot_games_shown_total",
		Help: "Game cards sent to users.",
	})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamebot_upstream_errors_total",
		Help: "Failed upstream calls, by API.",
	}, []string{"api"})

	IllegalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamebot_illegal_transitions_total",
		Help: "Events rejected by the dialog state machine, by phase.",
	}, []string{"phase"})

	ActiveConversations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gamebot_active_conversations",
		Help: "Conversations currently held in memory.",
	})
)
