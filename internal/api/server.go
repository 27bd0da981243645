// Package api serves game sessions over HTTP. Sessions are held in
// memory and addressed by UUID; finished games are archived to the
// results store. GET endpoints are read-only views, POST endpoints
// drive a session forward.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/talgya/prosperville/internal/catalog"
	"github.com/talgya/prosperville/internal/game"
	"github.com/talgya/prosperville/internal/player"
	"github.com/talgya/prosperville/internal/results"
)

const maxPlayersPerGame = 6

// Server hosts game sessions over HTTP.
type Server struct {
	Catalog *catalog.Catalog
	DB      *results.DB // optional; nil disables archival
	Port    int
	Logger  *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
}

// sessionEntry serializes access to one session. The engine is not
// concurrency-safe, so every request against a session takes its lock.
type sessionEntry struct {
	mu       sync.Mutex
	sess     *game.Session
	archived bool
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	if s.sessions == nil {
		s.sessions = make(map[uuid.UUID]*sessionEntry)
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	// Session creation spins up a whole simulation; keep it bounded.
	createLimiter := NewRateLimiter(30, time.Hour)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.With(Limit(createLimiter)).Post("/games", s.handleCreateGame)

		r.Route("/games/{id}", func(r chi.Router) {
			r.Use(s.sessionCtx)
			r.Get("/", s.handleGameState)
			r.Post("/choice", s.handleChoice)
			r.Post("/next", s.handleNext)
			r.Post("/back", s.handleBack)
			r.Get("/players", s.handlePlayers)
			r.Get("/players/{seat}/choices", s.handlePlayerChoices)
			r.Get("/players/{seat}/scores", s.handlePlayerScores)
		})
	})

	return r
}

// Start serves the API, blocking until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.Port)
	s.Logger.Info("api listening", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

type ctxKey int

const sessionKey ctxKey = 0

func withSession(ctx context.Context, entry *sessionEntry) context.Context {
	return context.WithValue(ctx, sessionKey, entry)
}

func sessionFrom(r *http.Request) *sessionEntry {
	return r.Context().Value(sessionKey).(*sessionEntry)
}

// sessionCtx resolves the {id} path parameter to a live session and
// holds its lock for the duration of the request.
func (s *Server) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, http.StatusBadRequest, "malformed game id")
			return
		}
		s.mu.Lock()
		entry, ok := s.sessions[id]
		s.mu.Unlock()
		if !ok {
			httpError(w, http.StatusNotFound, "no such game")
			return
		}
		entry.mu.Lock()
		defer entry.mu.Unlock()
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), entry)))
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := len(s.sessions)
	s.mu.Unlock()

	archived := 0
	if s.DB != nil {
		if n, err := s.DB.GameCount(); err == nil {
			archived = n
		}
	}
	writeJSON(w, map[string]any{
		"active_games":   active,
		"archived_games": archived,
		"stages":         len(s.Catalog.Stages),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		httpError(w, http.StatusNotFound, "no results store configured")
		return
	}
	limit := 10
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 100 {
			httpError(w, http.StatusBadRequest, "limit must be 1-100")
			return
		}
		limit = n
	}
	rows, err := s.DB.Leaderboard(limit)
	if err != nil {
		s.Logger.Error("leaderboard query failed", "err", err)
		httpError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	writeJSON(w, rows)
}

type createGameRequest struct {
	Players  []string `json:"players"`
	InitCash float64  `json:"init_cash"`
	Seed     int64    `json:"seed"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if len(req.Players) == 0 || len(req.Players) > maxPlayersPerGame {
		httpError(w, http.StatusBadRequest,
			fmt.Sprintf("players must be 1-%d names", maxPlayersPerGame))
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess, err := game.New(s.Catalog, game.Config{
		PlayerNames: req.Players,
		InitCash:    req.InitCash,
		Seed:        seed,
		Logger:      s.Logger,
	})
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{sess: sess}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(gameState(sess))
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, gameState(sessionFrom(r).sess))
}

type choiceRequest struct {
	Option int `json:"option"`
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r)
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := entry.sess.SetChoice(req.Option); err != nil {
		httpError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, gameState(entry.sess))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r)
	entry.sess.Next()
	if entry.sess.End && !entry.archived && s.DB != nil {
		if err := s.DB.SaveGame(entry.sess); err != nil {
			s.Logger.Error("archive failed", "game", entry.sess.ID, "err", err)
		} else {
			entry.archived = true
		}
	}
	writeJSON(w, gameState(entry.sess))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r)
	if !entry.sess.CanStepBack() {
		httpError(w, http.StatusConflict, "cannot step back from here")
		return
	}
	entry.sess.Back()
	writeJSON(w, gameState(entry.sess))
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, sessionFrom(r).sess.Summaries())
}

func (s *Server) handlePlayerChoices(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r)
	p, err := seatParam(r, entry)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, entry.sess.ChoiceTable(p))
}

func (s *Server) handlePlayerScores(w http.ResponseWriter, r *http.Request) {
	entry := sessionFrom(r)
	p, err := seatParam(r, entry)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	initAge := entry.sess.Catalog().Stages[0].InitAge
	writeJSON(w, p.ScoreRows(initAge, p.SimulatedPeriods()))
}

// stateResponse is the view of a session returned by every mutating
// endpoint: where the game stands and what the current player faces.
type stateResponse struct {
	ID            string   `json:"id"`
	Step          int      `json:"step"`
	Turn          int      `json:"turn"`
	Stage         int      `json:"stage"`
	StageTitle    string   `json:"stage_title"`
	CurrentPlayer string   `json:"current_player"`
	Event         *string  `json:"event,omitempty"`
	EventTitle    string   `json:"event_title,omitempty"`
	Options       []string `json:"options,omitempty"`
	Available     []bool   `json:"available,omitempty"`
	CanStepBack   bool     `json:"can_step_back"`
	Survivors     int      `json:"survivors"`
	Ranked        []int    `json:"ranked"`
	End           bool     `json:"end"`
}

func gameState(sess *game.Session) stateResponse {
	st := stateResponse{
		ID:            sess.ID.String(),
		Step:          sess.Step(),
		Turn:          sess.Turn(),
		Stage:         sess.Stage(),
		CurrentPlayer: sess.CurrentPlayer().Name,
		CanStepBack:   sess.CanStepBack(),
		Survivors:     sess.SurvivorCount(),
		Ranked:        sess.Ranked,
		End:           sess.End,
	}
	st.StageTitle = sess.Catalog().Stages[sess.Stage()].Title
	if evt := sess.CurrentEvent(); evt != nil {
		st.Event = &evt.Name
		st.EventTitle = evt.Title
		for _, opt := range evt.Options {
			st.Options = append(st.Options, opt.Title)
		}
		st.Available = sess.OptionAvailability()
	}
	return st
}

func seatParam(r *http.Request, entry *sessionEntry) (*player.Player, error) {
	seat, err := strconv.Atoi(chi.URLParam(r, "seat"))
	if err != nil {
		return nil, errors.New("malformed seat number")
	}
	players := entry.sess.Players()
	if seat < 0 || seat >= len(players) {
		return nil, fmt.Errorf("seat must be 0-%d", len(players)-1)
	}
	return players[seat], nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encoding failed", "err", err)
	}
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
