package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Apply CORS middleware
	r.Use(s.corsMiddleware)

	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/game-status", s.GameStatusHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", s.LeaderboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/start-game", s.StartGameHandler).Methods(http.MethodPost)

	r.HandleFunc("/ws", s.session.HandleWebSocket)

	return r
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")

		// If it's a websocket upgrade, skip further CORS checks
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	info := s.session.Info()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"gameStatus":    info.Status,
		"players":       info.PlayerCount,
		"timeRemaining": info.TimeRemaining,
		"uptimeSeconds": int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) GameStatusHandler(w http.ResponseWriter, r *http.Request) {
	info := s.session.Info()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        info.Status,
		"timeRemaining": info.TimeRemaining,
		"players":       info.PlayerCount,
		"nextGameIn":    info.NextGameIn,
	})
}

func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Leaderboard.Entries())
}

// StartGameHandler always rejects: session scheduling belongs to the
// automatic Waiting → Running → Finished cycle, not to clients.
func (s *Server) StartGameHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusConflict, map[string]any{
		"error": "game sessions start automatically; manual start is not allowed",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[writeJSON] error encoding response: %v", err)
	}
}
