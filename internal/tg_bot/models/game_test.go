package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementsAvailable(t *testing.T) {
	tests := []struct {
		name string
		req  Requirements
		want bool
	}{
		{"absent", Requirements{}, false},
		{"sentinel only", Requirements{Minimum: RequirementsNotAvailable, Recommended: RequirementsNotAvailable}, false},
		{"blank", Requirements{Minimum: "  "}, false},
		{"minimum", Requirements{Minimum: "4 GB RAM", Recommended: RequirementsNotAvailable}, true},
		{"recommended", Requirements{Recommended: "16 GB RAM"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Available())
		})
	}
}

func TestGameSummaryHasGenre(t *testing.T) {
	g := GameSummary{Genres: []string{"Action", "RPG"}}
	assert.True(t, g.HasGenre("RPG"))
	assert.False(t, g.HasGenre("rpg"))
	assert.False(t, GameSummary{}.HasGenre("Action"))
}

func TestGenres(t *testing.T) {
	assert.Equal(t, 8, Genres.Len())

	g := Genres.Parse("Shooter")
	require.NotNil(t, g)
	assert.Equal(t, GenreShooter, *g)
	assert.Nil(t, Genres.Parse("Horror"))

	assert.True(t, Genre{}.IsZero())
	assert.False(t, GenreSports.IsZero())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "awaiting_continue", PhaseAwaitingContinue.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
