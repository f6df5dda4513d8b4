package realtime

import "github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"

// EventType classifies an outbound real-time event
type EventType string

const (
	// EventGameUpdate carries roster, phase, round and run ownership changes
	EventGameUpdate EventType = "gameUpdate"

	// EventPlayersUpdate carries per-player pending drink and exen changes
	EventPlayersUpdate EventType = "playersUpdate"

	// EventDrinkUpdate carries the communal drink pot
	EventDrinkUpdate EventType = "drinkUpdate"

	// EventCardsUpdate carries the table card projection
	EventCardsUpdate EventType = "cardsUpdate"

	// EventGameChat signals new chat activity; content is fetched separately
	EventGameChat EventType = "gameChat"
)

// Event is one typed message pushed to a game's subscribers
type Event struct {
	// Type classifies the payload
	Type EventType `json:"type"`

	// GameID is the game the event belongs to
	GameID string `json:"gameId"`

	// Payload is the facet projection; nil for presence-only events
	Payload any `json:"payload,omitempty"`
}

// SeatView is one roster entry in a game update
type SeatView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Gender string `json:"gender"`
}

// GameUpdatePayload is the roster/phase/round facet of a game
type GameUpdatePayload struct {
	Status       string     `json:"status"`
	Phase        string     `json:"phase,omitempty"`
	Round        int        `json:"round"`
	LastRound    int        `json:"lastRound"`
	ActivePlayer string     `json:"activePlayer,omitempty"`
	Players      []SeatView `json:"players"`
	Busfahrer    []string   `json:"busfahrer,omitempty"`
	TryOwner     string     `json:"tryOwner,omitempty"`
	EndGame      bool       `json:"endGame"`

	// Deleted marks the final event for a destroyed game
	Deleted bool `json:"deleted,omitempty"`

	// SuccessorID points subscribers at the replacement game, when one exists
	SuccessorID string `json:"successorId,omitempty"`
}

// PlayerStateView is one player's transient drink state
type PlayerStateView struct {
	ID        string `json:"id"`
	Drinks    int    `json:"drinks"`
	Exen      bool   `json:"exen"`
	CardsLeft int    `json:"cardsLeft"`
}

// PlayersUpdatePayload is the per-player drink facet of a game
type PlayersUpdatePayload struct {
	Players []PlayerStateView `json:"players"`
}

// DrinkUpdatePayload is the communal pot facet of a game
type DrinkUpdatePayload struct {
	DrinkCount int `json:"drinkCount"`
}

// CardView is one table card as subscribers may see it. Face-down cards
// expose no rank or suit.
type CardView struct {
	Flipped bool   `json:"flipped"`
	Number  int    `json:"number,omitempty"`
	Type    string `json:"type,omitempty"`
}

// CardsUpdatePayload is the table card facet of a game
type CardsUpdatePayload struct {
	Cards []CardView `json:"cards"`
}

// ProjectGame builds the roster/phase/round facet from a game document.
func ProjectGame(game *models.Game) *GameUpdatePayload {
	players := make([]SeatView, 0, len(game.Players))
	for _, p := range game.Players {
		players = append(players, SeatView{
			ID:     p.ID,
			Name:   p.Name,
			Role:   string(p.Role),
			Gender: string(p.Gender),
		})
	}

	payload := &GameUpdatePayload{
		Status:       string(game.Status),
		Round:        game.Round,
		LastRound:    game.LastRound,
		ActivePlayer: game.ActivePlayer,
		Players:      players,
		TryOwner:     game.TryOwner,
		EndGame:      game.EndGame,
	}
	if game.Status == models.GameStatusActive {
		payload.Phase = string(game.Phase)
	}
	if len(game.Busfahrer) > 0 {
		payload.Busfahrer = append([]string(nil), game.Busfahrer...)
	}
	return payload
}

// ProjectPlayers builds the per-player drink facet from a game document.
func ProjectPlayers(game *models.Game) *PlayersUpdatePayload {
	players := make([]PlayerStateView, 0, len(game.Players))
	for _, p := range game.Players {
		players = append(players, PlayerStateView{
			ID:        p.ID,
			Drinks:    p.Drinks,
			Exen:      p.Exen,
			CardsLeft: p.UnplayedCount(),
		})
	}
	return &PlayersUpdatePayload{Players: players}
}

// ProjectCards builds the table card facet from a game document.
func ProjectCards(game *models.Game) *CardsUpdatePayload {
	cards := make([]CardView, 0, len(game.Cards))
	for _, c := range game.Cards {
		view := CardView{Flipped: c.Flipped}
		if c.Flipped {
			view.Number = c.Number
			view.Type = string(c.Type)
		}
		cards = append(cards, view)
	}
	return &CardsUpdatePayload{Cards: cards}
}
