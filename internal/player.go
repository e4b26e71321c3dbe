package internal

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Player struct {
	Id       string          `json:"id"`
	Conn     *websocket.Conn `json:"-"`
	Username string          `json:"username"`

	Position Position `json:"position"`
	Vitals   Vitals   `json:"resources"`
	Score    int      `json:"score"`

	IsInSafeZone bool `json:"isInSafeZone"`
	IsSpectator  bool `json:"isSpectator"`

	// JoinedSeq is the registration order, used as the deterministic
	// tie-break for winner selection.
	JoinedSeq int64     `json:"-"`
	JoinedAt  time.Time `json:"joined_at"`

	Mu sync.Mutex `json:"-"`
}

// ToPublicPlayer strips the connection so the player is safe to broadcast.
func (p *Player) ToPublicPlayer() *Player {
	return &Player{
		Id:           p.Id,
		Username:     p.Username,
		Position:     p.Position,
		Vitals:       p.Vitals,
		Score:        p.Score,
		IsInSafeZone: p.IsInSafeZone,
		IsSpectator:  p.IsSpectator,
		JoinedAt:     p.JoinedAt,
	}
}

// SafeWriteJSON serializes writes to the player's connection. Players created
// in tests have no connection; writes to them are a no-op.
func (p *Player) SafeWriteJSON(v any) error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(v)
}
