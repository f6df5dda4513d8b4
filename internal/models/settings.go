package models

import "fmt"

// ShuffleAlgorithm selects how fresh decks are shuffled
type ShuffleAlgorithm string

const (
	// ShuffleFisherYates is the uniform Fisher-Yates shuffle
	ShuffleFisherYates ShuffleAlgorithm = "Fisher-Yates"

	// ShuffleChaotic is the streak-biased shuffle that favors runs of
	// equal ranks or suits
	ShuffleChaotic ShuffleAlgorithm = "Chaotic"
)

// MatchStyle selects how a held card matches a revealed pyramid card
type MatchStyle string

const (
	// MatchNumber matches on rank only
	MatchNumber MatchStyle = "Number-only"

	// MatchType matches on suit only
	MatchType MatchStyle = "Type-only"

	// MatchExact matches on rank and suit
	MatchExact MatchStyle = "Exact"
)

// TurnMode selects how the active player advances in phase 1
type TurnMode string

const (
	// TurnModeDefault advances through the turn order forward
	TurnModeDefault TurnMode = "Default"

	// TurnModeReverse advances through the turn order backward
	TurnModeReverse TurnMode = "Reverse"

	// TurnModeRandom picks a random player who has not yet had a turn
	TurnModeRandom TurnMode = "Random"
)

// SelectionMode selects how the Busfahrer is chosen at phase 2 entry
type SelectionMode string

const (
	// SelectionDefault picks the player(s) holding the most unplayed cards
	SelectionDefault SelectionMode = "Default"

	// SelectionReverse picks the player(s) holding the fewest unplayed cards
	SelectionReverse SelectionMode = "Reverse"

	// SelectionRandom picks one player uniformly at random
	SelectionRandom SelectionMode = "Random"
)

// GiveMode selects which drink aggregate is authoritative for display
type GiveMode string

const (
	// GiveModeDefault makes the acting player consume the communal pot
	GiveModeDefault GiveMode = "Default"

	// GiveModeAvatar makes each player's individual tally authoritative
	GiveModeAvatar GiveMode = "Avatar"
)

// Player limits. A 104-card deck deals 15 pyramid cards plus 10 per player,
// which caps a table at 8 seats.
const (
	MinPlayers         = 2
	MaxPlayers         = 8
	DefaultPlayerLimit = 8
)

// Settings holds the per-game options fixed at creation
type Settings struct {
	// Shuffling is the deck shuffle algorithm
	Shuffling ShuffleAlgorithm

	// MatchStyle is how held cards match revealed pyramid cards
	MatchStyle MatchStyle

	// TurnMode is how the active player advances in phase 1
	TurnMode TurnMode

	// Selection is how the Busfahrer is chosen
	Selection SelectionMode

	// Giving is which drink aggregate is authoritative for display
	Giving GiveMode

	// ChaosMode multiplies matched-card drink values by the chaos
	// multiplier instead of using the row index
	ChaosMode bool

	// PlayerLimit is the maximum number of seats (2..8)
	PlayerLimit int

	// Everyone allows any seated player, not just a Busfahrer, to claim
	// the phase 3 run
	Everyone bool
}

// ApplyDefaults fills zero-valued settings with their defaults.
func (s *Settings) ApplyDefaults() {
	if s.Shuffling == "" {
		s.Shuffling = ShuffleFisherYates
	}
	if s.MatchStyle == "" {
		s.MatchStyle = MatchNumber
	}
	if s.TurnMode == "" {
		s.TurnMode = TurnModeDefault
	}
	if s.Selection == "" {
		s.Selection = SelectionDefault
	}
	if s.Giving == "" {
		s.Giving = GiveModeDefault
	}
	if s.PlayerLimit == 0 {
		s.PlayerLimit = DefaultPlayerLimit
	}
}

// Validate checks every option against its closed enumeration.
func (s *Settings) Validate() error {
	switch s.Shuffling {
	case ShuffleFisherYates, ShuffleChaotic:
	default:
		return fmt.Errorf("invalid shuffle algorithm: %q", s.Shuffling)
	}

	switch s.MatchStyle {
	case MatchNumber, MatchType, MatchExact:
	default:
		return fmt.Errorf("invalid match style: %q", s.MatchStyle)
	}

	switch s.TurnMode {
	case TurnModeDefault, TurnModeReverse, TurnModeRandom:
	default:
		return fmt.Errorf("invalid turn mode: %q", s.TurnMode)
	}

	switch s.Selection {
	case SelectionDefault, SelectionReverse, SelectionRandom:
	default:
		return fmt.Errorf("invalid selection mode: %q", s.Selection)
	}

	switch s.Giving {
	case GiveModeDefault, GiveModeAvatar:
	default:
		return fmt.Errorf("invalid give mode: %q", s.Giving)
	}

	if s.PlayerLimit < MinPlayers || s.PlayerLimit > MaxPlayers {
		return fmt.Errorf("player limit %d out of range [%d, %d]", s.PlayerLimit, MinPlayers, MaxPlayers)
	}

	return nil
}
