package game

import (
	"github.com/Enescyc/survival-game-online/internal"
)

// =============================================================================
// MOVEMENT INTEGRATOR
// =============================================================================

// MovementTick advances every player with an active intent one step toward
// its target, then runs collection, safe-zone and death checks. Runs at the
// configured high-frequency rate; only players that moved this tick are
// broadcast.
func (s *Session) MovementTick() {
	s.Mu.Lock()
	var events []outbound
	var movers []*internal.Player

	for id, intent := range s.Intents {
		player, ok := s.Players[id]
		if !ok {
			delete(s.Intents, id)
			continue
		}
		if !intent.IsMoving || player.IsSpectator {
			continue
		}

		dist := player.Position.DistanceTo(intent.Target)
		if dist <= s.cfg.SnapThreshold {
			player.Position = intent.Target
			intent.IsMoving = false
		} else {
			// Fatigue: any vital at zero halves the speed. Movement still
			// happens; only a full wipeout stops a player.
			step := s.cfg.BaseSpeed / float64(s.cfg.MovementTickHz)
			if player.Vitals.AnyZero() {
				step /= 2
			}
			if step > dist {
				step = dist
			}
			player.Position.X += (intent.Target.X - player.Position.X) / dist * step
			player.Position.Y += (intent.Target.Y - player.Position.Y) / dist * step
		}

		if s.Status == internal.StatusRunning {
			if ev, collected := s.collectAtLocked(player); collected {
				events = append(events, ev)
			}
		}

		player.IsInSafeZone = s.inAnySafeZoneLocked(player.Position)

		if player.Vitals.AllZero() {
			events = append(events, s.killPlayerLocked(player)...)
			continue
		}
		movers = append(movers, player.ToPublicPlayer())
	}

	if len(movers) > 0 {
		events = append(events, broadcastMsg("playersUpdate", movers))
	}
	s.Mu.Unlock()
	s.flush(events)
}
