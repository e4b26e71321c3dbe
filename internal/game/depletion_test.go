package game

import (
	"testing"

	"github.com/Enescyc/survival-game-online/internal"
)

// macroTickNoToggle advances one macro tick from a timeRemaining that does
// not land on a day/night cycle boundary.
func macroTickNoToggle(s *Session) {
	s.TimeRemaining = 25
	s.MacroTick()
}

func TestDaytimeDepletesAtBaseRate(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "alice")
	s.Status = internal.StatusRunning
	s.IsDayTime = true

	macroTickNoToggle(s)
	want := internal.Vitals{Food: 99, Water: 99, Oxygen: 99}
	if p.Vitals != want {
		t.Fatalf("vitals = %+v, want %+v", p.Vitals, want)
	}
}

func TestNightInSafeZoneDoesNotDeplete(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "sheltered")
	s.Status = internal.StatusRunning
	s.IsDayTime = false
	p.IsInSafeZone = true

	macroTickNoToggle(s)
	if p.Vitals != internal.FullVitals() {
		t.Fatalf("vitals = %+v, want untouched at night inside a safe zone", p.Vitals)
	}
}

func TestNightOutsideDepletesAtPenaltyRate(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "exposed")
	s.Status = internal.StatusRunning
	s.IsDayTime = false
	p.IsInSafeZone = false

	macroTickNoToggle(s)
	want := 100 - s.cfg.NightPenaltyRate
	if p.Vitals.Food != want || p.Vitals.Water != want || p.Vitals.Oxygen != want {
		t.Fatalf("vitals = %+v, want all at %d", p.Vitals, want)
	}
}

func TestDepletionIsPerMacroTickNotPerMovementTick(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "walker")
	s.Status = internal.StatusRunning
	s.IsDayTime = false
	s.HandleMovePlayer(p.Id, p.Position.X+100, p.Position.Y)

	for i := 0; i < 10; i++ {
		s.MovementTick()
	}
	if p.Vitals != internal.FullVitals() {
		t.Fatal("movement ticks must not deplete vitals")
	}

	macroTickNoToggle(s)
	want := 100 - s.cfg.NightPenaltyRate
	if p.Vitals.Food != want {
		t.Fatalf("food = %d, want %d after exactly one macro tick", p.Vitals.Food, want)
	}
}

func TestVitalsFloorAtZero(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "fading")
	p.Vitals = internal.Vitals{Food: 1, Water: 2, Oxygen: 1}
	s.Status = internal.StatusRunning
	s.IsDayTime = false
	p.IsInSafeZone = false // penalty rate 3 would underflow without the floor

	macroTickNoToggle(s)
	if p.Vitals.Food < 0 || p.Vitals.Water < 0 || p.Vitals.Oxygen < 0 {
		t.Fatalf("vitals went negative: %+v", p.Vitals)
	}
}

func TestAllZeroVitalsTriggersSpectatorImmediately(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "doomed")
	p.Vitals = internal.Vitals{Food: 1, Water: 1, Oxygen: 1}
	s.Status = internal.StatusRunning
	s.IsDayTime = true

	macroTickNoToggle(s)
	if !p.IsSpectator {
		t.Fatal("player with all vitals at zero must become a spectator in the same tick")
	}
	if p.Vitals != (internal.Vitals{}) {
		t.Errorf("vitals = %+v, want zeroed on death", p.Vitals)
	}
}

func TestOneZeroVitalIsNotDeath(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "thirsty")
	p.Vitals = internal.Vitals{Food: 50, Water: 1, Oxygen: 50}
	s.Status = internal.StatusRunning
	s.IsDayTime = true

	macroTickNoToggle(s)
	if p.IsSpectator {
		t.Fatal("death requires all three vitals at zero, not just one")
	}
	if p.Vitals.Water != 0 {
		t.Errorf("water = %d, want 0", p.Vitals.Water)
	}
}

func TestDeathTransitionFiresAtMostOnce(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "doomed")
	p.Vitals = internal.Vitals{}

	s.Mu.Lock()
	first := s.killPlayerLocked(p)
	second := s.killPlayerLocked(p)
	s.Mu.Unlock()

	if len(first) == 0 {
		t.Fatal("first death should emit notifications")
	}
	if len(second) != 0 {
		t.Fatal("second death must be a no-op")
	}
}

func TestSpectatorsAreNotDepleted(t *testing.T) {
	s := newTestSession()
	p := s.RegisterPlayer(nil, "ghost")
	p.IsSpectator = true
	p.Vitals = internal.Vitals{Food: 10, Water: 10, Oxygen: 10}
	s.Status = internal.StatusRunning

	macroTickNoToggle(s)
	if p.Vitals != (internal.Vitals{Food: 10, Water: 10, Oxygen: 10}) {
		t.Fatalf("spectator vitals = %+v, want untouched", p.Vitals)
	}
}
