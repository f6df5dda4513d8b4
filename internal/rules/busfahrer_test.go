package rules

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// playerWithUnplayed builds a player holding the given number of unplayed
// cards plus one played card.
func playerWithUnplayed(id string, unplayed int) *models.Player {
	p := &models.Player{ID: id}
	for i := 0; i < unplayed; i++ {
		p.Cards = append(p.Cards, models.HandCard{Card: models.Card{Number: 2, Type: models.SuitHearts}})
	}
	p.Cards = append(p.Cards, models.HandCard{Card: models.Card{Number: 3, Type: models.SuitClubs}, Played: true})
	return p
}

func TestSelectBusfahrerDefault(t *testing.T) {
	players := []*models.Player{
		playerWithUnplayed("p1", 3),
		playerWithUnplayed("p2", 5),
		playerWithUnplayed("p3", 1),
	}

	selected, err := SelectBusfahrer(rand.New(rand.NewSource(1)), models.SelectionDefault, players)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, selected)
}

func TestSelectBusfahrerDefaultTiesSelectAll(t *testing.T) {
	players := []*models.Player{
		playerWithUnplayed("p1", 5),
		playerWithUnplayed("p2", 2),
		playerWithUnplayed("p3", 5),
	}

	selected, err := SelectBusfahrer(rand.New(rand.NewSource(1)), models.SelectionDefault, players)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, selected)
}

func TestSelectBusfahrerReverse(t *testing.T) {
	players := []*models.Player{
		playerWithUnplayed("p1", 3),
		playerWithUnplayed("p2", 5),
		playerWithUnplayed("p3", 1),
	}

	selected, err := SelectBusfahrer(rand.New(rand.NewSource(1)), models.SelectionReverse, players)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, selected)
}

func TestSelectBusfahrerRandomPicksOneSeatedPlayer(t *testing.T) {
	players := []*models.Player{
		playerWithUnplayed("p1", 3),
		playerWithUnplayed("p2", 5),
		playerWithUnplayed("p3", 1),
	}

	random := rand.New(rand.NewSource(7))
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		selected, err := SelectBusfahrer(random, models.SelectionRandom, players)
		require.NoError(t, err)
		require.Len(t, selected, 1)
		seen[selected[0]] = true
	}

	assert.Len(t, seen, 3)
}

func TestSelectBusfahrerRejectsBadInput(t *testing.T) {
	random := rand.New(rand.NewSource(1))

	_, err := SelectBusfahrer(random, models.SelectionDefault, nil)
	assert.Error(t, err)

	_, err = SelectBusfahrer(random, models.SelectionMode("loudest"), []*models.Player{playerWithUnplayed("p1", 1)})
	assert.Error(t, err)
}
