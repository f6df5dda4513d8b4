package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Not-found errors
const (
	ErrGameNotFound   GameError = "game not found"
	ErrPlayerNotFound GameError = "player not found"
)

// Authorization errors
const (
	ErrPlayerNotInGame GameError = "player not in game"
	ErrNotGameOwner    GameError = "only the game owner may do this"
	ErrNotActivePlayer GameError = "not your turn"
	ErrNotBusfahrer    GameError = "only a busfahrer may start a run"
	ErrNotTryOwner     GameError = "another player owns the current run"
)

// State conflicts
const (
	ErrGameAlreadyStarted  GameError = "game already started"
	ErrGameNotStarted      GameError = "game not started"
	ErrGameFinished        GameError = "game already finished"
	ErrGameFull            GameError = "game is at maximum capacity"
	ErrPlayerAlreadyInGame GameError = "player already in game"
	ErrNotEnoughPlayers    GameError = "not enough players to start"
	ErrWrongPhase          GameError = "action not allowed in this phase"
	ErrWrongRound          GameError = "action not allowed in this round"
	ErrRowAlreadyFlipped   GameError = "row already flipped this round"
	ErrRowNotFlipped       GameError = "current row not flipped yet"
	ErrCardAlreadyPlayed   GameError = "card already played"
	ErrCardAlreadyFlipped  GameError = "card already flipped"
	ErrFaceCardsPending    GameError = "face cards still unplayed"
	ErrRunNotFailed        GameError = "no failed run to retry"
	ErrRunNotFinished      GameError = "run has not reached the last card"
	ErrRunFailed           GameError = "run failed, retry first"
)

// Validation errors
const (
	ErrCardMismatch     GameError = "card does not match the revealed row"
	ErrCardNotAllowed   GameError = "card not allowed in this round"
	ErrInvalidRow       GameError = "invalid row"
	ErrInvalidCardIndex GameError = "invalid card index"
	ErrInvalidRelation  GameError = "invalid relation"
	ErrInvalidGender    GameError = "invalid gender"
	ErrInvalidName      GameError = "invalid player name"
	ErrInvalidSettings  GameError = "invalid settings"
)

// Construction errors
const (
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilGameRepo        GameError = "game repository cannot be nil"
	ErrNilDrinkLedgerRepo GameError = "drink ledger repository cannot be nil"
	ErrNilStatisticsRepo  GameError = "statistics repository cannot be nil"
	ErrNilShufflerFactory GameError = "shuffler factory cannot be nil"
	ErrNilRandom          GameError = "random source cannot be nil"
	ErrNilClock           GameError = "clock cannot be nil"
	ErrNilUUIDGenerator   GameError = "UUID generator cannot be nil"
)
