package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Enescyc/survival-game-online/internal"
)

// Tuning holds every gameplay number. All fields have compiled defaults so a
// missing or partial tuning.yaml is fine; zero-valued fields are backfilled.
type Tuning struct {
	PreparationSeconds   int `yaml:"preparation_seconds"`
	GameDurationSeconds  int `yaml:"game_duration_seconds"`
	DayNightCycleSeconds int `yaml:"day_night_cycle_seconds"`
	RestartDelaySeconds  int `yaml:"restart_delay_seconds"`

	MovementTickHz int `yaml:"movement_tick_hz"`

	BaseSpeed     float64 `yaml:"base_speed"`
	SnapThreshold float64 `yaml:"snap_threshold"`
	CollectRadius float64 `yaml:"collect_radius"`

	ArenaWidth  float64 `yaml:"arena_width"`
	ArenaHeight float64 `yaml:"arena_height"`

	SpawnIntervalSeconds int     `yaml:"spawn_interval_seconds"`
	SpawnChance          float64 `yaml:"spawn_chance"`
	ResourceMin          int     `yaml:"resource_min"`
	ResourceMax          int     `yaml:"resource_max"`

	DepletionRate    int `yaml:"depletion_rate"`
	NightPenaltyRate int `yaml:"night_penalty_rate"`

	SafeZoneRadius  float64 `yaml:"safe_zone_radius"`
	LeaderboardSize int     `yaml:"leaderboard_size"`

	SpawnZones []SpawnZoneConfig `yaml:"spawn_zones"`
}

type SpawnZoneConfig struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

func Default() Tuning {
	t := Tuning{
		PreparationSeconds:   30,
		GameDurationSeconds:  300,
		DayNightCycleSeconds: 30,
		RestartDelaySeconds:  10,
		MovementTickHz:       60,
		BaseSpeed:            200,
		SnapThreshold:        5,
		CollectRadius:        30,
		ArenaWidth:           1600,
		ArenaHeight:          1200,
		SpawnIntervalSeconds: 5,
		SpawnChance:          0.5,
		ResourceMin:          10,
		ResourceMax:          30,
		DepletionRate:        1,
		NightPenaltyRate:     3,
		SafeZoneRadius:       150,
		LeaderboardSize:      10,
	}
	t.SpawnZones = defaultSpawnZones(t.ArenaWidth, t.ArenaHeight)
	return t
}

func defaultSpawnZones(w, h float64) []SpawnZoneConfig {
	r := min(w, h) / 5
	return []SpawnZoneConfig{
		{Name: "north", X: w / 2, Y: h / 4, Radius: r},
		{Name: "south", X: w / 2, Y: 3 * h / 4, Radius: r},
		{Name: "west", X: w / 4, Y: h / 2, Radius: r},
		{Name: "east", X: 3 * w / 4, Y: h / 2, Radius: r},
		{Name: "center", X: w / 2, Y: h / 2, Radius: r},
	}
}

// Load reads a tuning file and backfills unset fields from Default. An empty
// path returns the defaults unchanged.
func Load(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.backfill()
	if err := t.validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t *Tuning) backfill() {
	d := Default()
	if t.PreparationSeconds <= 0 {
		t.PreparationSeconds = d.PreparationSeconds
	}
	if t.GameDurationSeconds <= 0 {
		t.GameDurationSeconds = d.GameDurationSeconds
	}
	if t.DayNightCycleSeconds <= 0 {
		t.DayNightCycleSeconds = d.DayNightCycleSeconds
	}
	if t.RestartDelaySeconds <= 0 {
		t.RestartDelaySeconds = d.RestartDelaySeconds
	}
	if t.MovementTickHz <= 0 {
		t.MovementTickHz = d.MovementTickHz
	}
	if t.BaseSpeed <= 0 {
		t.BaseSpeed = d.BaseSpeed
	}
	if t.SnapThreshold <= 0 {
		t.SnapThreshold = d.SnapThreshold
	}
	if t.CollectRadius <= 0 {
		t.CollectRadius = d.CollectRadius
	}
	if t.ArenaWidth <= 0 {
		t.ArenaWidth = d.ArenaWidth
	}
	if t.ArenaHeight <= 0 {
		t.ArenaHeight = d.ArenaHeight
	}
	if t.SpawnIntervalSeconds <= 0 {
		t.SpawnIntervalSeconds = d.SpawnIntervalSeconds
	}
	if t.SpawnChance <= 0 {
		t.SpawnChance = d.SpawnChance
	}
	if t.ResourceMin <= 0 {
		t.ResourceMin = d.ResourceMin
	}
	if t.ResourceMax <= 0 {
		t.ResourceMax = d.ResourceMax
	}
	if t.DepletionRate <= 0 {
		t.DepletionRate = d.DepletionRate
	}
	if t.NightPenaltyRate <= 0 {
		t.NightPenaltyRate = d.NightPenaltyRate
	}
	if t.SafeZoneRadius <= 0 {
		t.SafeZoneRadius = d.SafeZoneRadius
	}
	if t.LeaderboardSize <= 0 {
		t.LeaderboardSize = d.LeaderboardSize
	}
	if len(t.SpawnZones) == 0 {
		t.SpawnZones = defaultSpawnZones(t.ArenaWidth, t.ArenaHeight)
	}
}

func (t Tuning) validate() error {
	if t.ResourceMin > t.ResourceMax {
		return fmt.Errorf("resource_min %d exceeds resource_max %d", t.ResourceMin, t.ResourceMax)
	}
	if t.SpawnChance > 1 {
		return fmt.Errorf("spawn_chance %v must be in (0,1]", t.SpawnChance)
	}
	if t.DayNightCycleSeconds >= t.GameDurationSeconds {
		return fmt.Errorf("day_night_cycle_seconds %d must be shorter than game_duration_seconds %d",
			t.DayNightCycleSeconds, t.GameDurationSeconds)
	}
	return nil
}

// Zones converts the configured spawn zones into model values.
func (t Tuning) Zones() []internal.SpawnZone {
	zones := make([]internal.SpawnZone, 0, len(t.SpawnZones))
	for _, z := range t.SpawnZones {
		zones = append(zones, internal.SpawnZone{
			Name:     z.Name,
			Position: internal.Position{X: z.X, Y: z.Y},
			Radius:   z.Radius,
		})
	}
	return zones
}

// Env is the process-level configuration read from the environment.
type Env struct {
	Port        string
	TuningPath  string
	DatabaseURL string
}

func LoadEnv() Env {
	e := Env{
		Port:        os.Getenv("PORT"),
		TuningPath:  os.Getenv("TUNING_PATH"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if e.Port == "" {
		e.Port = "8080"
	}
	return e
}
