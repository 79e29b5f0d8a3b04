package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/metrics"
	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// trailerSuffix is appended to a game name to form the video search query.
const trailerSuffix = " trailer"

// enrichLimit bounds parallel requirement and trailer lookups of one turn.
const enrichLimit = 4

// pcPlatformNames are matched case-insensitively against catalog platform names.
var pcPlatformNames = []string{"pc", "pc (windows)", "windows"}

// Translator defines the interface for translation operations.
type Translator interface {
	TranslateToEnglish(ctx context.Context, text string) (string, error)
}

// Catalog defines the interface for the game catalog.
type Catalog interface {
	SearchGames(ctx context.Context, query string, pageSize int) ([]models.GameSummary, error)
	GamePlatforms(ctx context.Context, gameID int) ([]models.PlatformEntry, error)
}

// VideoSearch defines the interface for trailer lookups.
type VideoSearch interface {
	FirstVideoURL(ctx context.Context, query string) (string, error)
}

// GameFinder runs catalog searches and enriches their results.
type GameFinder struct {
	translate Translator
	catalog   Catalog
	videos    VideoSearch
	limit     int // Max games returned by FindGames
	pageSize  int // Catalog candidates requested per search
}

// NewGameFinder creates a GameFinder.
// Arguments:
//   - translate: translation backend for non-Latin keywords.
//   - catalog: game catalog client.
//   - videos: video search client.
//   - limit: max number of games returned per search.
//   - pageSize: number of catalog candidates requested; values below limit are raised to limit.
func NewGameFinder(translate Translator, catalog Catalog, videos VideoSearch, limit, pageSize int) *GameFinder {
	if pageSize < limit {
		pageSize = limit
	}
	return &GameFinder{
		translate: translate,
		catalog:   catalog,
		videos:    videos,
		limit:     limit,
		pageSize:  pageSize,
	}
}

// ContainsNonLatin reports whether text has at least one letter outside the Latin script.
func ContainsNonLatin(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

// TranslateIfNeeded returns an English form of text when it contains non-Latin letters
// and text itself otherwise. A failed translation falls back to the original text.
func (f *GameFinder) TranslateIfNeeded(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if !ContainsNonLatin(text) {
		return text
	}

	translated, err := f.translate.TranslateToEnglish(ctx, text)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(metrics.APITranslate).Inc()
		logrus.WithError(err).WithField("text", text).Warn("Translation failed, searching with original text")
		return text
	}
	return translated
}

// FindGames searches the catalog for keywords and keeps games of genre, in catalog order,
// up to the configured limit. A zero genre disables the filter.
func (f *GameFinder) FindGames(ctx context.Context, keywords string, genre models.Genre) ([]models.GameSummary, error) {
	query := f.TranslateIfNeeded(ctx, keywords)

	candidates, err := f.catalog.SearchGames(ctx, query, f.pageSize)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(metrics.APICatalog).Inc()
		return nil, fmt.Errorf("find games: %w", err)
	}
	if len(candidates) > f.pageSize {
		candidates = candidates[:f.pageSize]
	}

	games := filterByGenre(candidates, genre, f.limit)
	logrus.WithFields(logrus.Fields{
		"query":      query,
		"genre":      genre.Value,
		"candidates": len(candidates),
		"kept":       len(games),
	}).Info("Catalog search finished")
	return games, nil
}

// filterByGenre keeps games containing genre, preserving order, and stops at limit.
func filterByGenre(games []models.GameSummary, genre models.Genre, limit int) []models.GameSummary {
	result := make([]models.GameSummary, 0, min(len(games), limit))
	for _, game := range games {
		if len(result) == limit {
			break
		}
		if !genre.IsZero() && !game.HasGenre(genre.Value) {
			continue
		}
		result = append(result, game)
	}
	return result
}

// Requirements returns the PC requirements of a game. Both fields are empty when the game
// has no PC platform entry or the lookup fails.
func (f *GameFinder) Requirements(ctx context.Context, gameID int) models.Requirements {
	platforms, err := f.catalog.GamePlatforms(ctx, gameID)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(metrics.APICatalog).Inc()
		logrus.WithError(err).WithField("gameID", gameID).Warn("Requirements lookup failed")
		return models.Requirements{}
	}
	return pcRequirements(platforms)
}

// pcRequirements extracts requirements of the first PC-like platform entry.
func pcRequirements(platforms []models.PlatformEntry) models.Requirements {
	for _, p := range platforms {
		if !isPCPlatform(p.Name) {
			continue
		}
		return models.Requirements{
			Minimum:     requirementOrSentinel(p.Minimum),
			Recommended: requirementOrSentinel(p.Recommended),
		}
	}
	return models.Requirements{}
}

func isPCPlatform(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, pc := range pcPlatformNames {
		if name == pc {
			return true
		}
	}
	return false
}

func requirementOrSentinel(text *string) string {
	if text == nil || strings.TrimSpace(*text) == "" {
		return models.RequirementsNotAvailable
	}
	return strings.TrimSpace(*text)
}

// Trailer returns the first trailer URL for a game name, or an empty string.
func (f *GameFinder) Trailer(ctx context.Context, gameName string) string {
	url, err := f.videos.FirstVideoURL(ctx, gameName+trailerSuffix)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(metrics.APIVideo).Inc()
		logrus.WithError(err).WithField("game", gameName).Warn("Trailer lookup failed")
		return ""
	}
	return url
}

// Enrich looks up requirements and trailers for games in parallel.
// The returned cards keep the order of games.
func (f *GameFinder) Enrich(ctx context.Context, games []models.GameSummary) []models.GameCard {
	cards := make([]models.GameCard, len(games))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichLimit)

	for i, game := range games {
		cards[i].Game = game
		g.Go(func() error {
			cards[i].Requirements = f.Requirements(ctx, game.ID)
			return nil
		})
		g.Go(func() error {
			cards[i].TrailerURL = f.Trailer(ctx, game.Name)
			return nil
		})
	}
	_ = g.Wait() // lookups degrade to absent values instead of failing
	return cards
}
