package models

import (
	"strings"

	"github.com/orsinium-labs/enum"
)

// RequirementsNotAvailable replaces a missing minimum or recommended text of a PC platform entry.
const RequirementsNotAvailable = "❌ اطلاعات موجود نیست"

// Genre is one of the genres offered to the user.
type Genre enum.Member[string]

var (
	GenreAction     = Genre{"Action"}
	GenreAdventure  = Genre{"Adventure"}
	GenreRPG        = Genre{"RPG"}
	GenreStrategy   = Genre{"Strategy"}
	GenreSimulation = Genre{"Simulation"}
	GenreShooter    = Genre{"Shooter"}
	GenrePuzzle     = Genre{"Puzzle"}
	GenreSports     = Genre{"Sports"}

	Genres = enum.New(
		GenreAction, GenreAdventure, GenreRPG, GenreStrategy,
		GenreSimulation, GenreShooter, GenrePuzzle, GenreSports,
	)
)

// IsZero reports whether no genre was selected.
func (g Genre) IsZero() bool {
	return g.Value == ""
}

// GameSummary is a single catalog search result.
type GameSummary struct {
	ID       int
	Name     string
	Rating   float64
	Released string
	Image    string
	Genres   []string
}

// HasGenre reports whether the game's genre list contains genre exactly.
func (g GameSummary) HasGenre(genre string) bool {
	for _, name := range g.Genres {
		if name == genre {
			return true
		}
	}
	return false
}

// PlatformEntry is one platform of a catalog game detail.
// Minimum and Recommended are nil when the catalog omits them.
type PlatformEntry struct {
	Name        string
	Minimum     *string
	Recommended *string
}

// Requirements holds PC system requirements. Empty fields mean absent.
type Requirements struct {
	Minimum     string
	Recommended string
}

// Available reports whether at least one field carries real requirement text.
func (r Requirements) Available() bool {
	return requirementAvailable(r.Minimum) || requirementAvailable(r.Recommended)
}

func requirementAvailable(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != RequirementsNotAvailable
}

// GameCard is a game summary enriched for rendering.
type GameCard struct {
	Game         GameSummary
	TrailerURL   string
	Requirements Requirements
}
