// Package api serves the snake leaderboard over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// DefaultLimit is the leaderboard size when no limit is requested.
const DefaultLimit = 10

// MaxLimit caps the limit query parameter.
const MaxLimit = 100

// ScoreReader is the part of the score store the API reads from.
type ScoreReader interface {
	TopScores(variant string, limit int) ([]storage.ScoreEntry, error)
	HighScore(variant string) (int, error)
	GetGameStats(variant string) (*storage.GameStats, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
	ScoreByRun(runID string) (*storage.ScoreEntry, error)
	Rank(variant string, score int) (int, error)
}

// Server handles leaderboard HTTP requests.
type Server struct {
	scores ScoreReader
	logger *log.Logger
	now    func() time.Time
}

// NewServer creates a new API server.
func NewServer(scores ScoreReader, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		scores: scores,
		logger: logger.WithPrefix("api"),
		now:    time.Now,
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/variants", s.handleVariants)
		r.Get("/scores/{variant}", s.handleScores)
		r.Get("/stats", s.handleAllStats)
		r.Get("/stats/{variant}", s.handleStats)
		r.Get("/runs/{runID}", s.handleRun)
	})

	return r
}

// logRequests logs each request through the charm logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// VariantResponse describes one playable variant.
type VariantResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	HighScore   int    `json:"high_score"`
}

// ScoreResponse is one leaderboard row.
type ScoreResponse struct {
	Rank      int       `json:"rank"`
	RunID     string    `json:"run_id"`
	Variant   string    `json:"variant"`
	Player    string    `json:"player,omitempty"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	Ticks     uint64    `json:"ticks"`
	Outcome   string    `json:"outcome"`
	Cause     string    `json:"cause,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	PlayedAgo string    `json:"played_ago"`
}

// StatsResponse aggregates one variant's runs.
type StatsResponse struct {
	Variant    string    `json:"variant"`
	Games      int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalScore int64     `json:"total_score"`
	BestLength int       `json:"best_length"`
	LastPlayed time.Time `json:"last_played,omitzero"`
	PlayedAgo  string    `json:"played_ago,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	infos := registry.List()
	resp := make([]VariantResponse, 0, len(infos))
	for _, info := range infos {
		high, err := s.scores.HighScore(info.ID)
		if err != nil {
			s.internalError(w, err)
			return
		}
		resp = append(resp, VariantResponse{
			ID:          info.ID,
			Title:       info.Title,
			Description: info.Description,
			HighScore:   high,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	if !registry.Exists(variant) {
		s.writeError(w, http.StatusNotFound, "unknown variant "+strconv.Quote(variant))
		return
	}

	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxLimit)
	}

	entries, err := s.scores.TopScores(variant, limit)
	if err != nil {
		s.internalError(w, err)
		return
	}

	resp := make([]ScoreResponse, 0, len(entries))
	for i, e := range entries {
		resp = append(resp, s.scoreResponse(e, i+1))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleRun looks up one saved run. Its rank counts strictly better scores,
// so runs tied on score share a rank.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if _, err := uuid.Parse(runID); err != nil {
		s.writeError(w, http.StatusBadRequest, "run id must be a UUID")
		return
	}

	entry, err := s.scores.ScoreByRun(runID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if entry == nil {
		s.writeError(w, http.StatusNotFound, "unknown run "+strconv.Quote(runID))
		return
	}

	rank, err := s.scores.Rank(entry.Variant, entry.Score)
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.scoreResponse(*entry, rank))
}

func (s *Server) scoreResponse(e storage.ScoreEntry, rank int) ScoreResponse {
	return ScoreResponse{
		Rank:      rank,
		RunID:     e.RunID,
		Variant:   e.Variant,
		Player:    e.Player,
		Score:     e.Score,
		Length:    e.Length,
		Ticks:     e.Ticks,
		Outcome:   e.Outcome,
		Cause:     e.Cause,
		CreatedAt: e.CreatedAt,
		PlayedAgo: s.ago(e.CreatedAt),
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	if !registry.Exists(variant) {
		s.writeError(w, http.StatusNotFound, "unknown variant "+strconv.Quote(variant))
		return
	}
	stats, err := s.scores.GetGameStats(variant)
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.statsResponse(stats))
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.scores.GetAllGamesStats()
	if err != nil {
		s.internalError(w, err)
		return
	}

	// Registration order, then anything stored for variants no longer registered.
	resp := make([]StatsResponse, 0, len(all))
	seen := make(map[string]bool, len(all))
	for _, info := range registry.List() {
		if st, ok := all[info.ID]; ok {
			resp = append(resp, s.statsResponse(st))
			seen[info.ID] = true
		}
	}
	for id, st := range all {
		if !seen[id] {
			resp = append(resp, s.statsResponse(st))
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) statsResponse(st *storage.GameStats) StatsResponse {
	return StatsResponse{
		Variant:    st.Variant,
		Games:      st.GamesCount,
		HighScore:  st.HighScore,
		AvgScore:   st.AvgScore,
		TotalScore: st.TotalScore,
		BestLength: st.BestLength,
		LastPlayed: st.LastPlayed,
		PlayedAgo:  s.ago(st.LastPlayed),
	}
}

func (s *Server) ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, s.now(), "ago", "from now")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal server error")
}
