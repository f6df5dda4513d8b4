package models

// TopDrinker identifies the player with the highest drink total in a game
type TopDrinker struct {
	// PlayerID is the ID of the leading player, empty while nobody drank
	PlayerID string

	// Drinks is the leading player's combined drink total
	Drinks int
}

// PlayerStatistics accumulates one player's totals within a single game
type PlayerStatistics struct {
	// PlayerID is the ID of the player the totals belong to
	PlayerID string

	// DrinksGiven is the total the player distributed from turn pots and lays
	DrinksGiven int

	// DrinksSelf is the total the player accumulated against themselves
	DrinksSelf int

	// Retries is how many phase 3 runs the player started and failed
	Retries int
}

// Total returns the player's combined drink count.
func (p *PlayerStatistics) Total() int {
	return p.DrinksGiven + p.DrinksSelf
}

// GameStatistics holds the per-game drink accounting
type GameStatistics struct {
	// TopDrinker is the current leader by combined drink total
	TopDrinker TopDrinker

	// Players maps player IDs to their per-game totals
	Players map[string]*PlayerStatistics
}

// NewGameStatistics builds an empty statistics block for the given players.
func NewGameStatistics(players []*Player) GameStatistics {
	stats := GameStatistics{
		Players: make(map[string]*PlayerStatistics, len(players)),
	}
	for _, p := range players {
		stats.Players[p.ID] = &PlayerStatistics{PlayerID: p.ID}
	}
	return stats
}

// For returns the per-game totals for a player, creating them when absent.
func (g *GameStatistics) For(playerID string) *PlayerStatistics {
	if g.Players == nil {
		g.Players = make(map[string]*PlayerStatistics)
	}
	ps, ok := g.Players[playerID]
	if !ok {
		ps = &PlayerStatistics{PlayerID: playerID}
		g.Players[playerID] = ps
	}
	return ps
}

// RecomputeTopDrinker rescans the per-player totals for the new leader.
func (g *GameStatistics) RecomputeTopDrinker() {
	top := TopDrinker{}
	for _, ps := range g.Players {
		if ps.Total() > top.Drinks {
			top = TopDrinker{PlayerID: ps.PlayerID, Drinks: ps.Total()}
		}
	}
	g.TopDrinker = top
}
