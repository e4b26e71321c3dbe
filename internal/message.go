package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound payloads.

type RegisterData struct {
	Name string `json:"name"`
}

type MoveData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type GameOverData struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
}

// Outbound payloads.

type GameStateData struct {
	Status        GameStatus         `json:"status"`
	TimeRemaining int                `json:"timeRemaining"`
	IsDayTime     bool               `json:"isDayTime"`
	Players       []*Player          `json:"players"`
	Resources     []*Resource        `json:"resources"`
	SafeZones     []SafeZone         `json:"safeZones"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard,omitempty"`
}

type PlayerJoinedData struct {
	Player      *Player `json:"player"`
	PlayerCount int     `json:"player_count"`
}

type PreparationData struct {
	Message       string `json:"message"`
	TimeRemaining int    `json:"timeRemaining"`
}

type ResourceCollectedData struct {
	ResourceId       string       `json:"resourceId"`
	PlayerId         string       `json:"playerId"`
	ResourceType     ResourceType `json:"resourceType"`
	NewResourceValue int          `json:"newResourceValue"`
	PlayerScore      int          `json:"playerScore"`
}

type GameFinishedData struct {
	Winner      *Player            `json:"winner"`
	FinalScores []LeaderboardEntry `json:"finalScores"`
}

type SpectatorData struct {
	PlayerId   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type ErrorData struct {
	Message string `json:"message"`
}
