package models

import (
	"time"
)

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	// GameStatusWaiting indicates a game is waiting for players to join
	GameStatusWaiting GameStatus = "waiting"

	// GameStatusActive indicates a game is in progress
	GameStatusActive GameStatus = "active"
)

// GamePhase represents which phase an active game is in
type GamePhase string

const (
	// PhaseOne is the pyramid phase
	PhaseOne GamePhase = "phase1"

	// PhaseTwo is the hand-clearing phase
	PhaseTwo GamePhase = "phase2"

	// PhaseThree is the Busfahrer diamond phase
	PhaseThree GamePhase = "phase3"
)

// Table layout and round bounds per phase.
const (
	// HandSize is the number of cards dealt to each player at phase 1 start
	HandSize = 10

	// PyramidSize is the number of cards dealt to the pyramid
	PyramidSize = 15

	// PyramidRows is the number of pyramid rows
	PyramidRows = 5

	// DiamondSize is the number of cards dealt to the diamond,
	// including the two sentinel cards
	DiamondSize = 27

	// DiamondRows is the number of selectable diamond rows
	DiamondRows = 9

	// DiamondFirstIndex is the pre-flipped card seeding the phase 3 chain
	DiamondFirstIndex = 0

	// DiamondLastIndex is the pre-flipped final card of the phase 3 run
	DiamondLastIndex = 26

	// Phase1MaxRound is the terminal round of phase 1
	Phase1MaxRound = 6

	// Phase2MaxRound is the terminal round of phase 2
	Phase2MaxRound = 3

	// Phase3StartRound is the number of diamond rows to clear
	Phase3StartRound = 9

	// RoundFailed is the sentinel round value after a failed phase 3 guess
	RoundFailed = -1
)

// Game is the persisted document for one game session
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// Status is the lifecycle state of the game
	Status GameStatus

	// Phase is the current phase while the game is active
	Phase GamePhase

	// Players are the seated players in join order; the first is the owner
	Players []*Player

	// Cards are the table cards: the pyramid in phase 1, the diamond in
	// phase 3, empty otherwise
	Cards []TableCard

	// Round is the phase-relative round counter
	Round int

	// LastRound is the last round whose pyramid row was revealed
	LastRound int

	// ActivePlayer is the ID of the player whose turn it is in phase 1
	ActivePlayer string

	// TurnOrder is the permutation of player IDs fixed at phase 1 start
	TurnOrder []string

	// DrinkCount is the communal drink pot for the current turn or round
	DrinkCount int

	// LastCardIndex is the index of the chain head in the phase 3 diamond
	LastCardIndex int

	// Busfahrer are the IDs of the players selected for phase 3
	Busfahrer []string

	// TryOwner is the ID of the player who claimed the current phase 3 run
	TryOwner string

	// EndGame indicates the phase 3 run was completed
	EndGame bool

	// Settings are the options the game was created with
	Settings Settings

	// Statistics is the per-game drink accounting
	Statistics GameStatistics

	// CreatedAt is when the game was created
	CreatedAt time.Time

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time
}

// Player returns the seated player with the given ID, or nil.
func (g *Game) Player(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Owner returns the owning player, or nil for a corrupt roster.
func (g *Game) Owner() *Player {
	for _, p := range g.Players {
		if p.IsOwner() {
			return p
		}
	}
	return nil
}

// IsBusfahrer reports whether the given player was selected for phase 3.
func (g *Game) IsBusfahrer(id string) bool {
	for _, b := range g.Busfahrer {
		if b == id {
			return true
		}
	}
	return false
}

// AllHadTurn reports whether every seated player acted this round.
func (g *Game) AllHadTurn() bool {
	for _, p := range g.Players {
		if !p.HadTurn {
			return false
		}
	}
	return true
}

// ResetTurns clears every player's HadTurn flag.
func (g *Game) ResetTurns() {
	for _, p := range g.Players {
		p.HadTurn = false
	}
}

// PyramidRowBounds returns the half-open index range [start, end) of the
// given pyramid row. Row r (1..5) holds r cards; row 1 is the tip.
func PyramidRowBounds(row int) (int, int) {
	start := row * (row - 1) / 2
	return start, start + row
}

// diamondRowSizes is the card count per diamond row, tip to tip.
var diamondRowSizes = [DiamondRows]int{1, 2, 3, 4, 5, 4, 3, 2, 1}

// DiamondRowBounds returns the half-open index range [start, end) of the
// given diamond row (1..9). The sentinel cards at indexes 0 and 26 belong
// to no row.
func DiamondRowBounds(row int) (int, int) {
	start := 1
	for r := 1; r < row; r++ {
		start += diamondRowSizes[r-1]
	}
	return start, start + diamondRowSizes[row-1]
}
