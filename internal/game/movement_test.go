package game

import (
	"math"
	"testing"

	"github.com/Enescyc/survival-game-online/internal"
)

func addRunner(t *testing.T, s *Session, name string, at internal.Position) *internal.Player {
	t.Helper()
	p := s.RegisterPlayer(nil, name)
	p.Position = at
	return p
}

func TestMovementStepTowardTarget(t *testing.T) {
	s := newTestSession()
	s.cfg.BaseSpeed = 60
	s.cfg.MovementTickHz = 60 // step = 1 unit per tick
	p := addRunner(t, s, "runner", internal.Position{X: 0, Y: 0})
	s.HandleMovePlayer(p.Id, 10, 0)

	s.MovementTick()
	if math.Abs(p.Position.X-1) > 1e-9 || p.Position.Y != 0 {
		t.Fatalf("position = %+v, want (1,0)", p.Position)
	}
	if !s.Intents[p.Id].IsMoving {
		t.Error("intent should stay active until the target is reached")
	}
}

func TestFatigueHalvesSpeed(t *testing.T) {
	s := newTestSession()
	s.cfg.BaseSpeed = 60
	s.cfg.MovementTickHz = 60

	fit := addRunner(t, s, "fit", internal.Position{X: 0, Y: 100})
	tired := addRunner(t, s, "tired", internal.Position{X: 0, Y: 200})
	tired.Vitals.Water = 0

	s.HandleMovePlayer(fit.Id, 50, 100)
	s.HandleMovePlayer(tired.Id, 50, 200)
	s.MovementTick()

	if math.Abs(fit.Position.X-1) > 1e-9 {
		t.Errorf("fit player moved %v, want 1", fit.Position.X)
	}
	if math.Abs(tired.Position.X-0.5) > 1e-9 {
		t.Errorf("player with a zero vital moved %v, want exactly half the base step", tired.Position.X)
	}
}

func TestSnapToTargetClearsIntent(t *testing.T) {
	s := newTestSession()
	p := addRunner(t, s, "snapper", internal.Position{X: 7, Y: 0})
	s.HandleMovePlayer(p.Id, 10, 0) // distance 3, below the snap threshold of 5

	s.MovementTick()
	if p.Position.X != 10 || p.Position.Y != 0 {
		t.Fatalf("position = %+v, want snapped to (10,0)", p.Position)
	}
	if s.Intents[p.Id].IsMoving {
		t.Error("isMoving should clear after snapping")
	}
}

func TestCollectionCapsVitalAtHundred(t *testing.T) {
	s := newTestSession()
	s.Status = internal.StatusRunning
	p := addRunner(t, s, "gatherer", internal.Position{X: 100, Y: 100})
	p.Vitals.Food = 95
	s.Resources = []*internal.Resource{{
		Id:       "r1",
		Type:     internal.ResourceFood,
		Position: internal.Position{X: 105, Y: 100},
		Amount:   7,
	}}

	s.HandleCollectResource(p.Id)
	if p.Vitals.Food != 100 {
		t.Fatalf("food = %d, want capped at 100", p.Vitals.Food)
	}
	if len(s.Resources) != 0 {
		t.Error("collected resource should be removed")
	}
	if p.Score != 7 {
		t.Errorf("score = %d, want 7", p.Score)
	}
}

func TestConcurrentCollectorsWinAtMostOnce(t *testing.T) {
	s := newTestSession()
	s.Status = internal.StatusRunning
	a := addRunner(t, s, "a", internal.Position{X: 100, Y: 100})
	b := addRunner(t, s, "b", internal.Position{X: 102, Y: 100})
	s.Resources = []*internal.Resource{{
		Id:       "contested",
		Type:     internal.ResourceWater,
		Position: internal.Position{X: 101, Y: 100},
		Amount:   5,
	}}
	s.HandleMovePlayer(a.Id, 100, 101)
	s.HandleMovePlayer(b.Id, 102, 101)

	s.MovementTick()
	if len(s.Resources) != 0 {
		t.Fatalf("resource should be collected exactly once, %d left", len(s.Resources))
	}
	if a.Score+b.Score != 5 {
		t.Errorf("combined score = %d, want 5 (one winner)", a.Score+b.Score)
	}
	if a.Score != 0 && b.Score != 0 {
		t.Error("both players collected the same resource")
	}
}

func TestSpectatorsSkipMovementAndCollection(t *testing.T) {
	s := newTestSession()
	s.Status = internal.StatusRunning
	p := addRunner(t, s, "ghost", internal.Position{X: 100, Y: 100})
	s.HandleMovePlayer(p.Id, 200, 100)
	p.IsSpectator = true
	s.Resources = []*internal.Resource{{
		Id:       "r1",
		Type:     internal.ResourceFood,
		Position: internal.Position{X: 100, Y: 100},
		Amount:   3,
	}}

	s.MovementTick()
	if p.Position.X != 100 {
		t.Error("spectators must not move")
	}
	s.HandleCollectResource(p.Id)
	if len(s.Resources) != 1 || p.Score != 0 {
		t.Error("spectators must not collect resources")
	}
}

func TestMovePlayerIgnoredForSpectator(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "ghost")
	p.IsSpectator = true

	s.HandleMovePlayer(p.Id, 10, 10)
	if _, ok := s.Intents[p.Id]; ok {
		t.Error("spectators must not receive movement intents")
	}
}

func TestSafeZoneMembershipRecomputedOnMove(t *testing.T) {
	s := newTestSession()
	s.SafeZones = []internal.SafeZone{{
		Id:       "z1",
		Position: internal.Position{X: 100, Y: 100},
		Radius:   50,
	}}
	p := addRunner(t, s, "walker", internal.Position{X: 98, Y: 100})
	s.HandleMovePlayer(p.Id, 100, 100)

	s.MovementTick()
	if !p.IsInSafeZone {
		t.Error("player inside zone radius should be marked in safe zone")
	}

	p.Position = internal.Position{X: 500, Y: 500}
	s.HandleMovePlayer(p.Id, 502, 500)
	s.MovementTick()
	if p.IsInSafeZone {
		t.Error("player far from every zone should not be marked in safe zone")
	}
}
