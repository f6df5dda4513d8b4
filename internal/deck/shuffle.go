package deck

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// streakBias is the probability the chaotic shuffle continues a streak by
// drawing a card sharing rank or suit with the previous one.
const streakBias = 0.3

// Shuffler produces a shuffled copy of a deck
type Shuffler interface {
	// Shuffle returns a new permutation of the given cards
	Shuffle(cards []models.Card) []models.Card
}

// Config for deck shuffling
type Config struct {
	// Optional seed for testing
	Seed int64
}

func newRand(cfg *Config) *rand.Rand {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}

// UniformShuffler shuffles uniformly with Fisher-Yates
type UniformShuffler struct {
	random *rand.Rand
}

// NewUniform creates a uniform shuffler
func NewUniform(cfg *Config) *UniformShuffler {
	return &UniformShuffler{random: newRand(cfg)}
}

// Shuffle returns a uniformly shuffled copy of the deck.
func (s *UniformShuffler) Shuffle(cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	s.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// ChaoticShuffler shuffles with a streak bias: after each draw it prefers,
// with fixed probability, a remaining card sharing rank or suit with the
// previous draw, producing longer runs than a uniform shuffle.
type ChaoticShuffler struct {
	random *rand.Rand
}

// NewChaotic creates a chaotic shuffler
func NewChaotic(cfg *Config) *ChaoticShuffler {
	return &ChaoticShuffler{random: newRand(cfg)}
}

// Shuffle returns a streak-biased permutation of the deck.
func (s *ChaoticShuffler) Shuffle(cards []models.Card) []models.Card {
	pool := make([]models.Card, len(cards))
	copy(pool, cards)

	out := make([]models.Card, 0, len(cards))
	for len(pool) > 0 {
		idx := s.random.Intn(len(pool))
		if len(out) > 0 && s.random.Float64() < streakBias {
			if related := relatedIndexes(pool, out[len(out)-1]); len(related) > 0 {
				idx = related[s.random.Intn(len(related))]
			}
		}

		out = append(out, pool[idx])
		pool[idx] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out
}

// relatedIndexes lists pool positions sharing rank or suit with prev.
func relatedIndexes(pool []models.Card, prev models.Card) []int {
	var related []int
	for i, c := range pool {
		if c.Number == prev.Number || c.Type == prev.Type {
			related = append(related, i)
		}
	}
	return related
}

// Factory creates shufflers for a game's configured algorithm
type Factory interface {
	// Shuffler returns a shuffler implementing the given algorithm
	Shuffler(algorithm models.ShuffleAlgorithm) (Shuffler, error)
}

// SeededFactory builds shufflers from a shared config
type SeededFactory struct {
	cfg *Config
}

// NewFactory creates a shuffler factory
func NewFactory(cfg *Config) *SeededFactory {
	if cfg == nil {
		cfg = &Config{}
	}
	return &SeededFactory{cfg: cfg}
}

// Shuffler returns a shuffler for the given algorithm.
func (f *SeededFactory) Shuffler(algorithm models.ShuffleAlgorithm) (Shuffler, error) {
	switch algorithm {
	case models.ShuffleFisherYates:
		return NewUniform(f.cfg), nil
	case models.ShuffleChaotic:
		return NewChaotic(f.cfg), nil
	default:
		return nil, fmt.Errorf("unknown shuffle algorithm: %q", algorithm)
	}
}
