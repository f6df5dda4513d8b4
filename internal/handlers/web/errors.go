package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/auth"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/services/game"
)

// statusFor maps a service error onto an HTTP status code.
func statusFor(err error) int {
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) {
		return http.StatusUnauthorized
	}

	var gameErr game.GameError
	if !errors.As(err, &gameErr) {
		return http.StatusInternalServerError
	}

	switch gameErr {
	case game.ErrGameNotFound, game.ErrPlayerNotFound:
		return http.StatusNotFound

	case game.ErrPlayerNotInGame, game.ErrNotGameOwner, game.ErrNotActivePlayer,
		game.ErrNotBusfahrer, game.ErrNotTryOwner:
		return http.StatusForbidden

	case game.ErrGameAlreadyStarted, game.ErrGameNotStarted, game.ErrGameFinished,
		game.ErrGameFull, game.ErrPlayerAlreadyInGame, game.ErrNotEnoughPlayers,
		game.ErrWrongPhase, game.ErrWrongRound, game.ErrRowAlreadyFlipped,
		game.ErrRowNotFlipped, game.ErrCardAlreadyPlayed, game.ErrCardAlreadyFlipped,
		game.ErrFaceCardsPending, game.ErrRunNotFailed, game.ErrRunNotFinished,
		game.ErrRunFailed:
		return http.StatusConflict

	default:
		// Remaining GameErrors are request validation failures
		return http.StatusBadRequest
	}
}

// writeError sends a structured error response. Internal faults are logged
// and hidden behind a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		message = "internal error"
	}

	writeJSON(w, status, &errorResponse{Error: message})
}

// writeJSON sends a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// readJSON decodes a request body, tolerating an empty body for endpoints
// whose parameters are all optional.
func readJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
