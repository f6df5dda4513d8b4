package web

import (
	"fmt"
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/auth"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/rules"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/services/game"
)

// qrSize is the pixel width of generated join QR codes
const qrSize = 256

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	var req createGameRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "malformed request body"})
		return
	}

	output, err := s.cfg.GameService.CreateGame(r.Context(), &game.CreateGameInput{
		PlayerID:   principal.ID,
		PlayerName: principal.Name,
		Gender:     principal.Gender,
		Settings:   req.Settings.toModel(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.ListOpenGames(r.Context(), &game.ListOpenGamesInput{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res := &gameListResponse{Games: make([]*gameResponse, 0, len(output.Games))}
	for _, g := range output.Games {
		res.Games = append(res.Games, newGameResponse(g, principal.ID))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.GetGame(r.Context(), &game.GetGameInput{
		GameID: r.PathValue("id"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.JoinGame(r.Context(), &game.JoinGameInput{
		GameID:     r.PathValue("id"),
		PlayerID:   principal.ID,
		PlayerName: principal.Name,
		Gender:     principal.Gender,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleLeaveGame(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.LeaveGame(r.Context(), &game.LeaveGameInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res := &leaveResponse{Destroyed: output.Destroyed}
	if output.Game != nil {
		res.Game = newGameResponse(output.Game, principal.ID)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleKickPlayer(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	var req kickRequest
	if err := readJSON(r, &req); err != nil || req.TargetID == "" {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "target player is required"})
		return
	}

	output, err := s.cfg.GameService.KickPlayer(r.Context(), &game.KickPlayerInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
		TargetID: req.TargetID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.StartGame(r.Context(), &game.StartGameInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleStartPhase2(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.StartPhase2(r.Context(), &game.StartPhase2Input{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleStartPhase3(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.StartPhase3(r.Context(), &game.StartPhase3Input{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleFlipRow(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	row, err := strconv.Atoi(r.PathValue("row"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "row must be a number"})
		return
	}

	output, err := s.cfg.GameService.FlipRow(r.Context(), &game.FlipRowInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
		Row:      row,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleLayCard(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "card index must be a number"})
		return
	}

	output, err := s.cfg.GameService.LayCard(r.Context(), &game.LayCardInput{
		GameID:    r.PathValue("id"),
		PlayerID:  principal.ID,
		CardIndex: index,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &layCardResponse{
		Game:   newGameResponse(output.Game, principal.ID),
		Drinks: output.Drinks,
	})
}

func (s *Server) handleNextPlayer(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.NextPlayer(r.Context(), &game.NextPlayerInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleRetryPhase(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.RetryPhase(r.Context(), &game.RetryPhaseInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleOpenNewGame(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.OpenNewGame(r.Context(), &game.OpenNewGameInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newGameResponse(output.Game, principal.ID))
}

func (s *Server) handleCheckCard(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	var req checkCardRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "malformed request body"})
		return
	}

	output, err := s.cfg.GameService.CheckCard(r.Context(), &game.CheckCardInput{
		GameID:    r.PathValue("id"),
		PlayerID:  principal.ID,
		CardIndex: req.CardIndex,
		Relation:  rules.Relation(req.Relation),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &checkResponse{
		Game:    newGameResponse(output.Game, principal.ID),
		Success: output.Success,
	})
}

func (s *Server) handleCheckLastCard(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	var req checkLastCardRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "malformed request body"})
		return
	}

	output, err := s.cfg.GameService.CheckLastCard(r.Context(), &game.CheckLastCardInput{
		GameID:       r.PathValue("id"),
		PlayerID:     principal.ID,
		CardIndex:    req.CardIndex,
		Relation:     rules.Relation(req.Relation),
		LastRelation: rules.Relation(req.LastRelation),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &checkResponse{
		Game:    newGameResponse(output.Game, principal.ID),
		Success: output.Success,
	})
}

func (s *Server) handlePingChat(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	_, err := s.cfg.GameService.PingChat(r.Context(), &game.PingChatInput{
		GameID:   r.PathValue("id"),
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.GetDrinkLedger(r.Context(), &game.GetDrinkLedgerInput{
		GameID: r.PathValue("id"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res := &ledgerResponse{Records: make([]drinkRecordView, 0, len(output.Records))}
	for _, record := range output.Records {
		res.Records = append(res.Records, drinkRecordView{
			ID:           record.ID,
			FromPlayerID: record.FromPlayerID,
			ToPlayerID:   record.ToPlayerID,
			Count:        record.Count,
			Reason:       string(record.Reason),
			Timestamp:    record.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGameQR renders a QR code for the game's join link. The code carries
// no secrets, so lobby screens may fetch it without a token.
func (s *Server) handleGameQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	_, err := s.cfg.GameService.GetGame(r.Context(), &game.GetGameInput{GameID: gameID})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	joinURL := fmt.Sprintf("%s/join/%s", s.cfg.PublicBaseURL, gameID)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to encode QR code: %w", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) handleMyStatistics(w http.ResponseWriter, r *http.Request, principal *auth.Principal) {
	output, err := s.cfg.GameService.GetPlayerStatistics(r.Context(), &game.GetPlayerStatisticsInput{
		PlayerID: principal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newStatsResponse(output.Statistics))
}
