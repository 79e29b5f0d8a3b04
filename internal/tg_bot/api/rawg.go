package api

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/DenisKhanov/GameSearchBOT/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Constants for RAWG API paths
const (
	GamesPath      = "/games"
	GameDetailPath = "/games/{id}"
)

// rawgGame is a single item of the RAWG games list.
type rawgGame struct {
	ID              int     `json:"id"`               // Catalog game ID
	Name            string  `json:"name"`             // Display name
	Rating          float64 `json:"rating"`           // Average user rating
	Released        string  `json:"released"`         // Release date, YYYY-MM-DD
	BackgroundImage string  `json:"background_image"` // Cover image URL
	Genres          []struct {
		Name string `json:"name"` // Genre name, e.g. "Adventure"
	} `json:"genres"`
}

// rawgSearchResponse is the body of GET /games.
type rawgSearchResponse struct {
	Count   int        `json:"count"`
	Results []rawgGame `json:"results"`
}

// rawgGameDetail is the part of GET /games/{id} the bot reads.
type rawgGameDetail struct {
	ID        int `json:"id"`
	Platforms []struct {
		Platform struct {
			Name string `json:"name"` // Platform name, e.g. "PC"
		} `json:"platform"`
		Requirements *struct {
			Minimum     *string `json:"minimum"`
			Recommended *string `json:"recommended"`
		} `json:"requirements"`
	} `json:"platforms"`
}

// RawgAPI is a client of the RAWG video game database.
type RawgAPI struct {
	client *resty.Client
}

// NewRawgAPI creates a RAWG client.
// Arguments:
//   - endpoint: base URL of the API, e.g. https://api.rawg.io/api.
//   - apiKey: RAWG API key sent as the key query parameter.
//   - timeout: timeout of a single request.
func NewRawgAPI(endpoint, apiKey string, timeout time.Duration) *RawgAPI {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(timeout).
		SetQueryParam("key", apiKey).
		SetHeader("Accept", "application/json")
	return &RawgAPI{client: client}
}

// Close releases the underlying HTTP resources.
func (r *RawgAPI) Close() error {
	return r.client.Close()
}

// SearchGames runs a free-text search and returns at most pageSize games in catalog order.
func (r *RawgAPI) SearchGames(ctx context.Context, query string, pageSize int) ([]models.GameSummary, error) {
	var body rawgSearchResponse
	res, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search":    query,
			"page_size": strconv.Itoa(pageSize),
		}).
		SetResult(&body).
		Get(GamesPath)
	if err != nil {
		return nil, fmt.Errorf("search games %q: %w", query, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search games %q: unexpected status code: %d", query, res.StatusCode())
	}

	games := make([]models.GameSummary, 0, len(body.Results))
	for _, g := range body.Results {
		genres := make([]string, 0, len(g.Genres))
		for _, genre := range g.Genres {
			genres = append(genres, genre.Name)
		}
		games = append(games, models.GameSummary{
			ID:       g.ID,
			Name:     g.Name,
			Rating:   g.Rating,
			Released: g.Released,
			Image:    g.BackgroundImage,
			Genres:   genres,
		})
	}

	logrus.WithField("query", query).Debugf("RAWG returned %d of %d games", len(games), body.Count)
	return games, nil
}

// GamePlatforms fetches the platform entries of a single game.
func (r *RawgAPI) GamePlatforms(ctx context.Context, gameID int) ([]models.PlatformEntry, error) {
	var body rawgGameDetail
	res, err := r.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(gameID)).
		SetResult(&body).
		Get(GameDetailPath)
	if err != nil {
		return nil, fmt.Errorf("game %d details: %w", gameID, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("game %d details: unexpected status code: %d", gameID, res.StatusCode())
	}

	platforms := make([]models.PlatformEntry, 0, len(body.Platforms))
	for _, p := range body.Platforms {
		entry := models.PlatformEntry{Name: p.Platform.Name}
		if p.Requirements != nil {
			entry.Minimum = p.Requirements.Minimum
			entry.Recommended = p.Requirements.Recommended
		}
		platforms = append(platforms, entry)
	}
	return platforms, nil
}
