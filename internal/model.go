package internal

import (
	"math"
)

const (
	// MaxVital is the ceiling for each of a player's food/water/oxygen levels.
	MaxVital = 100
	// MaxFill is the largest amount a single spawned resource can carry.
	MaxFill = 10
)

type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusRunning  GameStatus = "running"
	StatusFinished GameStatus = "finished"
)

type ResourceType string

const (
	ResourceFood   ResourceType = "food"
	ResourceWater  ResourceType = "water"
	ResourceOxygen ResourceType = "oxygen"
)

// ResourceTypes lists every spawnable type, in a fixed order for uniform picks.
var ResourceTypes = []ResourceType{ResourceFood, ResourceWater, ResourceOxygen}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Vitals is the depleting resource-level triple, each clamped to [0,MaxVital].
type Vitals struct {
	Food   int `json:"food"`
	Water  int `json:"water"`
	Oxygen int `json:"oxygen"`
}

func FullVitals() Vitals {
	return Vitals{Food: MaxVital, Water: MaxVital, Oxygen: MaxVital}
}

// Deplete subtracts rate from all three levels independently, flooring at zero.
func (v *Vitals) Deplete(rate int) {
	v.Food = max(v.Food-rate, 0)
	v.Water = max(v.Water-rate, 0)
	v.Oxygen = max(v.Oxygen-rate, 0)
}

// Gain adds amount to the level matching t, capped at MaxVital, and returns
// the new level.
func (v *Vitals) Gain(t ResourceType, amount int) int {
	switch t {
	case ResourceFood:
		v.Food = min(v.Food+amount, MaxVital)
		return v.Food
	case ResourceWater:
		v.Water = min(v.Water+amount, MaxVital)
		return v.Water
	case ResourceOxygen:
		v.Oxygen = min(v.Oxygen+amount, MaxVital)
		return v.Oxygen
	}
	return 0
}

func (v Vitals) AllZero() bool {
	return v.Food == 0 && v.Water == 0 && v.Oxygen == 0
}

func (v Vitals) AnyZero() bool {
	return v.Food == 0 || v.Water == 0 || v.Oxygen == 0
}

// MovementIntent is the ephemeral seek target for one player. It is owned by
// the movement integrator: overwritten on every move command, cleared once the
// player snaps to the target.
type MovementIntent struct {
	Target   Position `json:"target"`
	IsMoving bool     `json:"is_moving"`
}

type Resource struct {
	Id       string       `json:"id"`
	Type     ResourceType `json:"type"`
	Position Position     `json:"position"`
	Amount   int          `json:"amount"`
}

// SafeZone suppresses nighttime depletion for players inside its radius.
// Immutable for the lifetime of a session.
type SafeZone struct {
	Id       string   `json:"id"`
	Position Position `json:"position"`
	Radius   float64  `json:"radius"`
}

func (z SafeZone) Contains(p Position) bool {
	return z.Position.DistanceTo(p) <= z.Radius
}

// SpawnZone is a named circular region resources spawn inside.
type SpawnZone struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Radius   float64  `json:"radius"`
}

type LeaderboardEntry struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
}
