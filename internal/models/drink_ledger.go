package models

import (
	"time"
)

// DrinkReason represents why drinks were assigned
type DrinkReason string

const (
	// DrinkReasonRowMatch indicates drinks added to the pot by matching a
	// revealed pyramid card
	DrinkReasonRowMatch DrinkReason = "row_match"

	// DrinkReasonTurnPot indicates the communal pot folded to the acting
	// player at turn end
	DrinkReasonTurnPot DrinkReason = "turn_pot"

	// DrinkReasonPotContribution indicates a numeric card laid into the
	// phase 2 pot
	DrinkReasonPotContribution DrinkReason = "pot_contribution"

	// DrinkReasonFaceCard indicates a drink assigned by a laid face card
	DrinkReasonFaceCard DrinkReason = "face_card"
)

// DrinkRecord records one drink assignment within a game
type DrinkRecord struct {
	// ID is the unique identifier for the drink record
	ID string

	// GameID is the ID of the game where the drinks were assigned
	GameID string

	// FromPlayerID is the ID of the player assigning the drinks,
	// empty when they come out of the communal pot
	FromPlayerID string

	// ToPlayerID is the ID of the player receiving the drinks,
	// empty when they go into the communal pot
	ToPlayerID string

	// Count is the number of drinks assigned
	Count int

	// Reason is why the drinks were assigned
	Reason DrinkReason

	// Timestamp is when the drinks were assigned
	Timestamp time.Time
}
