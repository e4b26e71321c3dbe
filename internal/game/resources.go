package game

import (
	"log"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/Enescyc/survival-game-online/internal"
)

// =============================================================================
// RESOURCE ECONOMY
// =============================================================================

// SpawnTick applies the spawn policy once. It only acts while the session is
// Running: never above the hard maximum, topped up to the minimum in one
// shot, otherwise a single coin-flip spawn.
func (s *Session) SpawnTick() {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Status != internal.StatusRunning {
		return
	}

	count := len(s.Resources)
	switch {
	case count >= s.cfg.ResourceMax:
		return
	case count < s.cfg.ResourceMin:
		s.seedResourcesLocked(s.cfg.ResourceMin - count)
	case s.rng.Float64() < s.cfg.SpawnChance:
		s.Resources = append(s.Resources, s.spawnResourceLocked())
	}
}

func (s *Session) seedResourcesLocked(n int) {
	for i := 0; i < n; i++ {
		s.Resources = append(s.Resources, s.spawnResourceLocked())
	}
}

func (s *Session) spawnResourceLocked() *internal.Resource {
	zone := s.zones[s.rng.Intn(len(s.zones))]
	return &internal.Resource{
		Id:       uuid.NewString(),
		Type:     internal.ResourceTypes[s.rng.Intn(len(internal.ResourceTypes))],
		Position: s.randomPointInZone(zone),
		Amount:   1 + s.rng.Intn(internal.MaxFill),
	}
}

// randomPointInZone samples an angle uniformly and the radius linearly. The
// linear radius biases density toward the zone center; that distribution is
// part of the game's behavior, not an accident.
func (s *Session) randomPointInZone(zone internal.SpawnZone) internal.Position {
	angle := s.rng.Float64() * 2 * math.Pi
	r := s.rng.Float64() * zone.Radius
	return internal.Position{
		X: clamp(zone.Position.X+r*math.Cos(angle), 0, s.cfg.ArenaWidth),
		Y: clamp(zone.Position.Y+r*math.Sin(angle), 0, s.cfg.ArenaHeight),
	}
}

// collectAtLocked removes the first resource within collection radius of the
// player and credits it. Removal under the session lock is what makes
// collection atomic: the second collector in a tick simply finds nothing.
func (s *Session) collectAtLocked(player *internal.Player) (outbound, bool) {
	for i, res := range s.Resources {
		if player.Position.DistanceTo(res.Position) > s.cfg.CollectRadius {
			continue
		}

		s.Resources = slices.Delete(s.Resources, i, i+1)
		newLevel := player.Vitals.Gain(res.Type, res.Amount)
		player.Score += res.Amount

		log.Printf("[collectAt] player %s (%s) collected %s %s (amount=%d, level=%d, score=%d)",
			player.Id, player.Username, res.Type, res.Id, res.Amount, newLevel, player.Score)

		return broadcastMsg("resourceCollected", internal.ResourceCollectedData{
			ResourceId:       res.Id,
			PlayerId:         player.Id,
			ResourceType:     res.Type,
			NewResourceValue: newLevel,
			PlayerScore:      player.Score,
		}), true
	}
	return outbound{}, false
}
