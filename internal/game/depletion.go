package game

import (
	"log"

	"github.com/Enescyc/survival-game-online/internal"
)

// =============================================================================
// ENVIRONMENT CLOCK & DEPLETION
// =============================================================================

// applyDepletionLocked drains every non-spectator's vitals once per macro
// tick. Daytime always depletes at the base rate; at night a safe zone
// suppresses depletion entirely, everywhere else the penalty rate applies.
func (s *Session) applyDepletionLocked() []outbound {
	var events []outbound
	for _, player := range s.Players {
		if player.IsSpectator {
			continue
		}

		rate := s.cfg.DepletionRate
		if !s.IsDayTime {
			if player.IsInSafeZone {
				rate = 0
			} else {
				rate = s.cfg.NightPenaltyRate
			}
		}
		if rate > 0 {
			player.Vitals.Deplete(rate)
		}

		if player.Vitals.AllZero() {
			events = append(events, s.killPlayerLocked(player)...)
		}
	}
	return events
}

// killPlayerLocked performs the death → spectator transition. It fires at
// most once per player per session: the sticky IsSpectator flag is the guard.
func (s *Session) killPlayerLocked(player *internal.Player) []outbound {
	if player.IsSpectator {
		return nil
	}
	player.IsSpectator = true
	player.Vitals = internal.Vitals{}
	delete(s.Intents, player.Id)

	log.Printf("[killPlayer] player %s (%s) ran out of resources, now spectating", player.Id, player.Username)

	return []outbound{
		targetMsg(player, "playerDied", internal.ErrorData{
			Message: "You ran out of resources and died. You are now spectating.",
		}),
		broadcastMsg("playerBecameSpectator", internal.SpectatorData{
			PlayerId:   player.Id,
			PlayerName: player.Username,
		}),
	}
}
