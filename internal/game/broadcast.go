package game

import (
	"log"

	"github.com/Enescyc/survival-game-online/internal"
)

// SafeBroadcast writes msg to every connected player. The player set is
// snapshotted under a read lock; the writes happen outside it, serialized per
// connection by Player.SafeWriteJSON. Write failures are logged only — the
// reader loop owns disconnect cleanup.
func (s *Session) SafeBroadcast(msg any) {
	s.SafeBroadcastExcept(msg, nil)
}

// SafeBroadcastExcept is SafeBroadcast minus one recipient.
func (s *Session) SafeBroadcastExcept(msg any, except *internal.Player) {
	s.Mu.RLock()
	players := make([]*internal.Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p != except {
			players = append(players, p)
		}
	}
	s.Mu.RUnlock()

	for _, p := range players {
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[SafeBroadcast] failed to send to player %s (%s): %v", p.Id, p.Username, err)
		}
	}
}
