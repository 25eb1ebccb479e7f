// HTTP server wiring for the read-only game API.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs, metrics).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Read endpoints: leaderboard, single user profile, recent challenges.
//
// Notes:
//   - Nothing here mutates the store; games are only played through the CLI.
//   - /challenges needs a queryable challenge history, which only the sqlite
//     driver provides; with the JSON driver it answers 501.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/robalobadob/guessgame/internal/challenge"
	"github.com/robalobadob/guessgame/internal/metrics"
	"github.com/robalobadob/guessgame/internal/player"
	"github.com/robalobadob/guessgame/internal/store"
)

const maxLimit = 100

// ChallengeHistory is the read side of a challenge log.
type ChallengeHistory interface {
	Recent(ctx context.Context, limit int) ([]challenge.Result, error)
}

// Server bundles router, user store and optional challenge history.
type Server struct {
	r       *chi.Mux
	store   store.Store
	history ChallengeHistory
	log     zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
// history may be nil.
func New(st store.Store, history ChallengeHistory, log zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), store: st, history: history, log: log}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(instrument)
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"guessgame","endpoints":["/health","/leaderboard","/users/{name}","/challenges","/metrics"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.r.Get("/leaderboard", s.handleLeaderboard)
	s.r.Get("/users/{name}", s.handleUser)
	s.r.Get("/challenges", s.handleChallenges)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("http server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// instrument records request count and latency per route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ------------------------------ handlers -----------------------------------

type userRes struct {
	Username       string   `json:"username"`
	Wins           int      `json:"wins"`
	Losses         int      `json:"losses"`
	Games          int      `json:"games"`
	WinRate        float64  `json:"winRate"`
	ChallengesWon  int      `json:"challengesWon"`
	ChallengesLost int      `json:"challengesLost"`
	Streak         int      `json:"streak"`
	Badges         []string `json:"badges"`
	Friends        []string `json:"friends"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 10)
	if !ok {
		return
	}
	all, err := s.store.All(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("load users")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": player.Rank(all, limit)})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	name, err := player.Canonical(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_username")
		return
	}
	rec, err := s.store.Get(r.Context(), name)
	if errors.Is(err, store.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("user", name).Msg("load user")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, userRes{
		Username:       name,
		Wins:           rec.Wins,
		Losses:         rec.Losses,
		Games:          rec.Games,
		WinRate:        rec.WinRate(),
		ChallengesWon:  rec.ChallengesWon,
		ChallengesLost: rec.ChallengesLost,
		Streak:         rec.Streak,
		Badges:         rec.Badges,
		Friends:        rec.Friends,
	})
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "history_unavailable")
		return
	}
	limit, ok := parseLimit(w, r, 20)
	if !ok {
		return
	}
	results, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("load challenges")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	if results == nil {
		results = []challenge.Result{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"challenges": results})
}

// ------------------------------ helpers ------------------------------------

// parseLimit reads ?limit=, defaulting to def and capping at maxLimit.
// It writes a 400 and returns false on a malformed value.
func parseLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_limit")
		return 0, false
	}
	return min(n, maxLimit), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
