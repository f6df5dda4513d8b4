package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/auth"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/realtime"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/services/game"
)

// Config holds the configuration for the web gateway
type Config struct {
	// Addr is the listen address
	Addr string

	// PublicBaseURL is the externally reachable base URL for join links
	PublicBaseURL string

	// AllowedOrigins are the CORS origins; empty allows any
	AllowedOrigins []string

	// GameService executes session actions
	GameService game.Service

	// Registry holds the live real-time subscribers
	Registry *realtime.Registry

	// Verifier resolves bearer tokens to principals
	Verifier auth.Verifier

	// Logger receives gateway logs; defaults to a no-op logger
	Logger *zap.Logger
}

// Server is the HTTP and WebSocket gateway
type Server struct {
	cfg        *Config
	logger     *zap.Logger
	httpServer *http.Server
}

// New creates a new web gateway
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Addr == "" {
		return nil, errors.New("listen address cannot be empty")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	if cfg.Verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{logger: logger}))(cors(s.routes())),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Start begins serving in the background
func (s *Server) Start() error {
	go func() {
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("web gateway listening", zap.String("addr", s.cfg.Addr))
	return nil
}

// Stop drains in-flight requests and shuts the listener down
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// routes wires every endpoint of both interface families
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Session actions
	mux.HandleFunc("POST /api/games", s.withAuth(s.handleCreateGame))
	mux.HandleFunc("GET /api/games", s.withAuth(s.handleListGames))
	mux.HandleFunc("GET /api/games/{id}", s.withAuth(s.handleGetGame))
	mux.HandleFunc("POST /api/games/{id}/join", s.withAuth(s.handleJoinGame))
	mux.HandleFunc("POST /api/games/{id}/leave", s.withAuth(s.handleLeaveGame))
	mux.HandleFunc("POST /api/games/{id}/kick", s.withAuth(s.handleKickPlayer))
	mux.HandleFunc("POST /api/games/{id}/start", s.withAuth(s.handleStartGame))
	mux.HandleFunc("POST /api/games/{id}/phase2", s.withAuth(s.handleStartPhase2))
	mux.HandleFunc("POST /api/games/{id}/phase3", s.withAuth(s.handleStartPhase3))
	mux.HandleFunc("POST /api/games/{id}/rows/{row}/flip", s.withAuth(s.handleFlipRow))
	mux.HandleFunc("POST /api/games/{id}/cards/{index}/lay", s.withAuth(s.handleLayCard))
	mux.HandleFunc("POST /api/games/{id}/next", s.withAuth(s.handleNextPlayer))
	mux.HandleFunc("POST /api/games/{id}/retry", s.withAuth(s.handleRetryPhase))
	mux.HandleFunc("POST /api/games/{id}/new-game", s.withAuth(s.handleOpenNewGame))
	mux.HandleFunc("POST /api/games/{id}/check", s.withAuth(s.handleCheckCard))
	mux.HandleFunc("POST /api/games/{id}/check-last", s.withAuth(s.handleCheckLastCard))
	mux.HandleFunc("POST /api/games/{id}/chat", s.withAuth(s.handlePingChat))

	// Reporting
	mux.HandleFunc("GET /api/games/{id}/ledger", s.withAuth(s.handleGetLedger))
	mux.HandleFunc("GET /api/games/{id}/qr", s.handleGameQR)
	mux.HandleFunc("GET /api/stats/me", s.withAuth(s.handleMyStatistics))

	// Real-time
	mux.HandleFunc("GET /ws", s.handleWS)

	return mux
}

// authedHandler is an endpoint that requires a verified principal
type authedHandler func(w http.ResponseWriter, r *http.Request, principal *auth.Principal)

// withAuth resolves the bearer token before invoking the endpoint
func (s *Server) withAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, &errorResponse{Error: "missing bearer token"})
			return
		}

		principal, err := s.cfg.Verifier.Verify(token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		next(w, r, principal)
	}
}

// recoveryLogger adapts zap to gorilla's panic recovery middleware
type recoveryLogger struct {
	logger *zap.Logger
}

func (l *recoveryLogger) Println(args ...interface{}) {
	l.logger.Sugar().Error(args...)
}
