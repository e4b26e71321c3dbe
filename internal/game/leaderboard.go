package game

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/Enescyc/survival-game-online/internal"
)

// LeaderboardStore is the optional durable mirror of the leaderboard. The
// in-memory copy stays authoritative; store failures are logged, never fatal.
type LeaderboardStore interface {
	Load(ctx context.Context, limit int) ([]internal.LeaderboardEntry, error)
	Upsert(ctx context.Context, name string, score int) error
}

// Leaderboard is the process-wide, name-keyed, top-N best-score record. It
// survives session transitions and is never reset by them.
type Leaderboard struct {
	mu      sync.Mutex
	entries []internal.LeaderboardEntry
	size    int
	store   LeaderboardStore
}

// NewLeaderboard creates a leaderboard bounded to size entries. With a
// non-nil store the persisted entries seed the in-memory copy.
func NewLeaderboard(size int, store LeaderboardStore) *Leaderboard {
	lb := &Leaderboard{size: size, store: store}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := store.Load(ctx, size)
		if err != nil {
			log.Printf("[NewLeaderboard] loading persisted entries failed: %v", err)
		} else {
			lb.entries = entries
			log.Printf("[NewLeaderboard] loaded %d persisted entries", len(entries))
		}
	}
	return lb
}

// Submit records a score for a name, keeping only that name's best. Returns
// true when the board changed.
func (lb *Leaderboard) Submit(name string, score int) bool {
	if name == "" || score < 0 {
		return false
	}

	lb.mu.Lock()
	changed := false
	idx := slices.IndexFunc(lb.entries, func(e internal.LeaderboardEntry) bool {
		return e.PlayerName == name
	})
	switch {
	case idx < 0:
		lb.entries = append(lb.entries, internal.LeaderboardEntry{PlayerName: name, Score: score})
		changed = true
	case score > lb.entries[idx].Score:
		lb.entries[idx].Score = score
		changed = true
	}
	if changed {
		slices.SortStableFunc(lb.entries, func(a, b internal.LeaderboardEntry) int {
			return b.Score - a.Score
		})
		if len(lb.entries) > lb.size {
			lb.entries = lb.entries[:lb.size]
		}
	}
	store := lb.store
	lb.mu.Unlock()

	if changed && store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Upsert(ctx, name, score); err != nil {
			log.Printf("[Leaderboard.Submit] persisting %s=%d failed: %v", name, score, err)
		}
	}
	return changed
}

// Entries returns an ordered snapshot of the board.
func (lb *Leaderboard) Entries() []internal.LeaderboardEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return slices.Clone(lb.entries)
}
