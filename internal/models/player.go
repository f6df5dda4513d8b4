package models

// Gender represents the gender a player registered with
type Gender string

const (
	// GenderMale marks a player who drinks on jacks
	GenderMale Gender = "Male"

	// GenderFemale marks a player who drinks on queens
	GenderFemale Gender = "Female"

	// GenderDivers marks a player who drinks on every face card
	GenderDivers Gender = "Divers"
)

// PlayerRole represents a player's role within a game
type PlayerRole string

const (
	// PlayerRoleOwner is the player who opened the game and controls its phases
	PlayerRoleOwner PlayerRole = "owner"

	// PlayerRolePlayer is a regular seated player
	PlayerRolePlayer PlayerRole = "player"
)

// Player represents a player seated in a game
type Player struct {
	// ID is the unique identifier of the player (the token principal)
	ID string

	// Name is the display name of the player
	Name string

	// Gender determines which face cards make the player drink
	Gender Gender

	// Role is the player's role in the game
	Role PlayerRole

	// Cards is the player's hand, dealt at phase 1 start
	Cards []HandCard

	// Drinks is the player's pending drink count, reset on each fold
	Drinks int

	// Exen indicates the player must down their drink (ace laid in phase 2)
	Exen bool

	// HadTurn indicates the player has acted in the current round
	HadTurn bool
}

// UnplayedCount returns the number of cards the player still holds unplayed.
func (p *Player) UnplayedCount() int {
	count := 0
	for _, c := range p.Cards {
		if !c.Played {
			count++
		}
	}
	return count
}

// HasUnplayedFaceCards reports whether the player still holds a jack, queen
// or king that has not been laid.
func (p *Player) HasUnplayedFaceCards() bool {
	for _, c := range p.Cards {
		if !c.Played && c.IsFace() {
			return true
		}
	}
	return false
}

// IsOwner reports whether the player owns the game.
func (p *Player) IsOwner() bool {
	return p.Role == PlayerRoleOwner
}
