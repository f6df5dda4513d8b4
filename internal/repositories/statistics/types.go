package statistics

// Statistics holds a player's lifetime counters across games
type Statistics struct {
	// PlayerID is the player these counters belong to
	PlayerID string

	// DrinksGiven counts drinks handed out to other players
	DrinksGiven int

	// DrinksSelf counts drinks the player had to take themselves
	DrinksSelf int

	// Retries counts failed final phase runs
	Retries int

	// GamesPlayed counts games the player was part of when they started
	GamesPlayed int

	// GamesWon counts final phase runs completed as driver
	GamesWon int
}

// AddDrinksInput is the input for AddDrinks
type AddDrinksInput struct {
	// PlayerID is the player to credit
	PlayerID string

	// Given is the number of drinks handed out
	Given int

	// Self is the number of drinks taken personally
	Self int
}

// AddRetryInput is the input for AddRetry
type AddRetryInput struct {
	// PlayerID is the player to credit
	PlayerID string
}

// AddGamePlayedInput is the input for AddGamePlayed
type AddGamePlayedInput struct {
	// PlayerID is the player to credit
	PlayerID string
}

// AddGameWonInput is the input for AddGameWon
type AddGameWonInput struct {
	// PlayerID is the player to credit
	PlayerID string
}

// GetPlayerStatisticsInput is the input for GetPlayerStatistics
type GetPlayerStatisticsInput struct {
	// PlayerID is the player to look up
	PlayerID string
}

// GetPlayerStatisticsOutput is the output for GetPlayerStatistics
type GetPlayerStatisticsOutput struct {
	// Statistics holds the player's lifetime counters
	Statistics *Statistics
}
