package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Enescyc/survival-game-online/internal/config"
	"github.com/Enescyc/survival-game-online/internal/game"
	"github.com/Enescyc/survival-game-online/internal/server"
	"github.com/Enescyc/survival-game-online/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[main] no .env file found, using environment as-is")
	}
	env := config.LoadEnv()

	tuning, err := config.Load(env.TuningPath)
	if err != nil {
		log.Fatalf("[main] loading tuning: %v", err)
	}

	var lbStore game.LeaderboardStore
	if env.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := store.NewPostgresLeaderboard(ctx, env.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatalf("[main] connecting leaderboard store: %v", err)
		}
		defer pg.Close()
		lbStore = pg
		log.Println("[main] leaderboard persistence enabled")
	}

	leaderboard := game.NewLeaderboard(tuning.LeaderboardSize, lbStore)
	session := game.NewSession(tuning, leaderboard)
	session.Start()
	defer session.Stop()

	srv := server.NewServer(env.Port, session)

	go func() {
		log.Printf("[main] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[main] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
	log.Println("[main] goodbye")
}
