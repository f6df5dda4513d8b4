package web

import (
	"time"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/realtime"
	statsRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/statistics"
)

// createGameRequest is the body for POST /api/games
type createGameRequest struct {
	Settings *settingsPayload `json:"settings,omitempty"`
}

// settingsPayload mirrors models.Settings on the wire
type settingsPayload struct {
	Shuffling   string `json:"shuffling,omitempty"`
	MatchStyle  string `json:"matchStyle,omitempty"`
	TurnMode    string `json:"turnMode,omitempty"`
	Selection   string `json:"selection,omitempty"`
	Giving      string `json:"giving,omitempty"`
	ChaosMode   bool   `json:"chaosMode,omitempty"`
	PlayerLimit int    `json:"playerLimit,omitempty"`
	Everyone    bool   `json:"everyone,omitempty"`
}

func (p *settingsPayload) toModel() *models.Settings {
	if p == nil {
		return nil
	}
	return &models.Settings{
		Shuffling:   models.ShuffleAlgorithm(p.Shuffling),
		MatchStyle:  models.MatchStyle(p.MatchStyle),
		TurnMode:    models.TurnMode(p.TurnMode),
		Selection:   models.SelectionMode(p.Selection),
		Giving:      models.GiveMode(p.Giving),
		ChaosMode:   p.ChaosMode,
		PlayerLimit: p.PlayerLimit,
		Everyone:    p.Everyone,
	}
}

func settingsView(s models.Settings) *settingsPayload {
	return &settingsPayload{
		Shuffling:   string(s.Shuffling),
		MatchStyle:  string(s.MatchStyle),
		TurnMode:    string(s.TurnMode),
		Selection:   string(s.Selection),
		Giving:      string(s.Giving),
		ChaosMode:   s.ChaosMode,
		PlayerLimit: s.PlayerLimit,
		Everyone:    s.Everyone,
	}
}

// kickRequest is the body for POST /api/games/{id}/kick
type kickRequest struct {
	TargetID string `json:"targetId"`
}

// checkCardRequest is the body for POST /api/games/{id}/check
type checkCardRequest struct {
	CardIndex int    `json:"cardIndex"`
	Relation  string `json:"relation"`
}

// checkLastCardRequest is the body for POST /api/games/{id}/check-last
type checkLastCardRequest struct {
	CardIndex    int    `json:"cardIndex"`
	Relation     string `json:"relation"`
	LastRelation string `json:"lastRelation"`
}

// handCardView is one card of the caller's own hand
type handCardView struct {
	Number int    `json:"number"`
	Type   string `json:"type"`
	Played bool   `json:"played"`
}

// playerStatsView is one player's per-game totals
type playerStatsView struct {
	PlayerID    string `json:"playerId"`
	DrinksGiven int    `json:"drinksGiven"`
	DrinksSelf  int    `json:"drinksSelf"`
	Retries     int    `json:"retries"`
}

// gameStatsView is the per-game drink accounting
type gameStatsView struct {
	TopDrinkerID     string            `json:"topDrinkerId,omitempty"`
	TopDrinkerDrinks int               `json:"topDrinkerDrinks"`
	Players          []playerStatsView `json:"players"`
}

// gameResponse is the full game view returned by session actions. Table
// cards come through the same projection as real-time events, so face-down
// cards stay hidden; only the caller's own hand is included.
type gameResponse struct {
	ID           string                     `json:"id"`
	Status       string                     `json:"status"`
	Phase        string                     `json:"phase,omitempty"`
	Round        int                        `json:"round"`
	LastRound    int                        `json:"lastRound"`
	ActivePlayer string                     `json:"activePlayer,omitempty"`
	TurnOrder    []string                   `json:"turnOrder,omitempty"`
	DrinkCount   int                        `json:"drinkCount"`
	Busfahrer    []string                   `json:"busfahrer,omitempty"`
	TryOwner     string                     `json:"tryOwner,omitempty"`
	EndGame      bool                       `json:"endGame"`
	Players      []realtime.SeatView        `json:"players"`
	States       []realtime.PlayerStateView `json:"states"`
	Cards        []realtime.CardView        `json:"cards"`
	Settings     *settingsPayload           `json:"settings"`
	Statistics   *gameStatsView             `json:"statistics"`
	Hand         []handCardView             `json:"hand,omitempty"`
}

// newGameResponse projects a game document for the given caller.
func newGameResponse(game *models.Game, callerID string) *gameResponse {
	stats := &gameStatsView{
		TopDrinkerID:     game.Statistics.TopDrinker.PlayerID,
		TopDrinkerDrinks: game.Statistics.TopDrinker.Drinks,
		Players:          make([]playerStatsView, 0, len(game.Statistics.Players)),
	}
	for _, p := range game.Players {
		if ps, ok := game.Statistics.Players[p.ID]; ok {
			stats.Players = append(stats.Players, playerStatsView{
				PlayerID:    ps.PlayerID,
				DrinksGiven: ps.DrinksGiven,
				DrinksSelf:  ps.DrinksSelf,
				Retries:     ps.Retries,
			})
		}
	}

	res := &gameResponse{
		ID:           game.ID,
		Status:       string(game.Status),
		Round:        game.Round,
		LastRound:    game.LastRound,
		ActivePlayer: game.ActivePlayer,
		TurnOrder:    game.TurnOrder,
		DrinkCount:   game.DrinkCount,
		Busfahrer:    game.Busfahrer,
		TryOwner:     game.TryOwner,
		EndGame:      game.EndGame,
		Players:      realtime.ProjectGame(game).Players,
		States:       realtime.ProjectPlayers(game).Players,
		Cards:        realtime.ProjectCards(game).Cards,
		Settings:     settingsView(game.Settings),
		Statistics:   stats,
	}
	if game.Status == models.GameStatusActive {
		res.Phase = string(game.Phase)
	}

	if caller := game.Player(callerID); caller != nil {
		res.Hand = make([]handCardView, 0, len(caller.Cards))
		for _, c := range caller.Cards {
			res.Hand = append(res.Hand, handCardView{
				Number: c.Number,
				Type:   string(c.Type),
				Played: c.Played,
			})
		}
	}

	return res
}

// gameListResponse is the body for GET /api/games
type gameListResponse struct {
	Games []*gameResponse `json:"games"`
}

// leaveResponse is the body for POST /api/games/{id}/leave
type leaveResponse struct {
	Destroyed bool          `json:"destroyed"`
	Game      *gameResponse `json:"game,omitempty"`
}

// layCardResponse is the body for POST /api/games/{id}/cards/{index}/lay
type layCardResponse struct {
	Game   *gameResponse `json:"game"`
	Drinks int           `json:"drinks"`
}

// checkResponse is the body for the phase 3 guess endpoints
type checkResponse struct {
	Game    *gameResponse `json:"game"`
	Success bool          `json:"success"`
}

// drinkRecordView is one ledger entry
type drinkRecordView struct {
	ID           string    `json:"id"`
	FromPlayerID string    `json:"fromPlayerId,omitempty"`
	ToPlayerID   string    `json:"toPlayerId,omitempty"`
	Count        int       `json:"count"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
}

// ledgerResponse is the body for GET /api/games/{id}/ledger
type ledgerResponse struct {
	Records []drinkRecordView `json:"records"`
}

// statsResponse is the body for GET /api/stats/me
type statsResponse struct {
	PlayerID    string `json:"playerId"`
	DrinksGiven int    `json:"drinksGiven"`
	DrinksSelf  int    `json:"drinksSelf"`
	Retries     int    `json:"retries"`
	GamesPlayed int    `json:"gamesPlayed"`
	GamesWon    int    `json:"gamesWon"`
}

func newStatsResponse(stats *statsRepo.Statistics) *statsResponse {
	return &statsResponse{
		PlayerID:    stats.PlayerID,
		DrinksGiven: stats.DrinksGiven,
		DrinksSelf:  stats.DrinksSelf,
		Retries:     stats.Retries,
		GamesPlayed: stats.GamesPlayed,
		GamesWon:    stats.GamesWon,
	}
}

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Error string `json:"error"`
}
