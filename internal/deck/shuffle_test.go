package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

func cardCounts(cards []models.Card) map[models.Card]int {
	counts := make(map[models.Card]int)
	for _, c := range cards {
		counts[c]++
	}
	return counts
}

func TestUniformShufflePermutesDeck(t *testing.T) {
	cards := New()

	shuffled := NewUniform(&Config{Seed: 42}).Shuffle(cards)
	require.Len(t, shuffled, len(cards))
	assert.Equal(t, cardCounts(cards), cardCounts(shuffled))
	assert.NotEqual(t, cards, shuffled)
}

func TestUniformShuffleIsDeterministicPerSeed(t *testing.T) {
	cards := New()

	first := NewUniform(&Config{Seed: 7}).Shuffle(cards)
	second := NewUniform(&Config{Seed: 7}).Shuffle(cards)
	assert.Equal(t, first, second)

	other := NewUniform(&Config{Seed: 8}).Shuffle(cards)
	assert.NotEqual(t, first, other)
}

func TestUniformShuffleDoesNotMutateInput(t *testing.T) {
	cards := New()
	original := make([]models.Card, len(cards))
	copy(original, cards)

	NewUniform(&Config{Seed: 3}).Shuffle(cards)
	assert.Equal(t, original, cards)
}

func TestChaoticShufflePermutesDeck(t *testing.T) {
	cards := New()

	shuffled := NewChaotic(&Config{Seed: 42}).Shuffle(cards)
	require.Len(t, shuffled, len(cards))
	assert.Equal(t, cardCounts(cards), cardCounts(shuffled))
	assert.NotEqual(t, cards, shuffled)
}

// relatedPairs counts adjacent cards sharing rank or suit.
func relatedPairs(cards []models.Card) int {
	count := 0
	for i := 1; i < len(cards); i++ {
		if cards[i].Number == cards[i-1].Number || cards[i].Type == cards[i-1].Type {
			count++
		}
	}
	return count
}

func TestChaoticShuffleFavorsStreaks(t *testing.T) {
	cards := New()

	const runs = 50
	var uniformTotal, chaoticTotal int
	for seed := int64(1); seed <= runs; seed++ {
		uniformTotal += relatedPairs(NewUniform(&Config{Seed: seed}).Shuffle(cards))
		chaoticTotal += relatedPairs(NewChaotic(&Config{Seed: seed}).Shuffle(cards))
	}

	assert.Greater(t, chaoticTotal, uniformTotal)
}

func TestFactorySelectsAlgorithm(t *testing.T) {
	factory := NewFactory(&Config{Seed: 1})

	uniform, err := factory.Shuffler(models.ShuffleFisherYates)
	require.NoError(t, err)
	assert.IsType(t, &UniformShuffler{}, uniform)

	chaotic, err := factory.Shuffler(models.ShuffleChaotic)
	require.NoError(t, err)
	assert.IsType(t, &ChaoticShuffler{}, chaotic)

	_, err = factory.Shuffler(models.ShuffleAlgorithm("riffle"))
	assert.Error(t, err)
}
