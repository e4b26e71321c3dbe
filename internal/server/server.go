package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Enescyc/survival-game-online/internal/game"
)

type Server struct {
	session   *game.Session
	startedAt time.Time
}

func NewServer(port string, session *game.Session) *http.Server {
	s := &Server{
		session:   session,
		startedAt: time.Now(),
	}
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      s.RegisterRoutes(),
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
		WriteTimeout: 30 * time.Second,
	}
}
