package game

import (
	"context"
	"log"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Enescyc/survival-game-online/internal"
	"github.com/Enescyc/survival-game-online/internal/config"
)

// =============================================================================
// SESSION ORCHESTRATOR
// =============================================================================

// Session owns the canonical game state: player map, resource list, safe
// zones, status and timers. Every mutation happens under Mu; the movement,
// macro and spawn loops are the periodic writers, websocket commands are the
// asynchronous ones. Messages are always snapshotted under the lock and
// written to connections after release.
type Session struct {
	Mu sync.RWMutex

	Status        internal.GameStatus
	TimeRemaining int
	IsDayTime     bool

	// RestartIn counts down the Finished phase before the next Waiting.
	RestartIn int

	Players   map[string]*internal.Player
	Intents   map[string]*internal.MovementIntent
	Resources []*internal.Resource
	SafeZones []internal.SafeZone

	Leaderboard *Leaderboard

	cfg     config.Tuning
	zones   []internal.SpawnZone
	rng     *rand.Rand
	joinSeq int64

	ctx    context.Context
	cancel context.CancelFunc
}

func NewSession(cfg config.Tuning, lb *Leaderboard) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		Status:        internal.StatusWaiting,
		TimeRemaining: cfg.PreparationSeconds,
		IsDayTime:     true,
		Players:       make(map[string]*internal.Player),
		Intents:       make(map[string]*internal.MovementIntent),
		Resources:     make([]*internal.Resource, 0),
		SafeZones:     make([]internal.SafeZone, 0),
		Leaderboard:   lb,
		cfg:           cfg,
		zones:         cfg.Zones(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start launches the three periodic loops. The session begins in Waiting.
func (s *Session) Start() {
	log.Printf("[Session.Start] entering preparation phase (%ds), movement=%dHz spawn=%ds",
		s.cfg.PreparationSeconds, s.cfg.MovementTickHz, s.cfg.SpawnIntervalSeconds)

	s.Mu.Lock()
	events := s.enterWaitingLocked("Waiting for players...")
	s.Mu.Unlock()
	s.flush(events)

	go s.runLoop(time.Second, s.MacroTick)
	go s.runLoop(time.Second/time.Duration(s.cfg.MovementTickHz), s.MovementTick)
	go s.runLoop(time.Duration(s.cfg.SpawnIntervalSeconds)*time.Second, s.SpawnTick)
}

// Stop cancels the periodic loops. In-flight ticks run to completion.
func (s *Session) Stop() {
	s.cancel()
}

func (s *Session) runLoop(interval time.Duration, tick func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			tick()
		case <-s.ctx.Done():
			return
		}
	}
}

// outbound is a message snapshotted under the session lock, delivered after
// release. A nil target means broadcast; except suppresses one recipient.
type outbound struct {
	target *internal.Player
	except *internal.Player
	msg    any
}

func broadcastMsg(msgType string, data any) outbound {
	return outbound{msg: internal.Message[any]{Type: msgType, Data: data}}
}

func targetMsg(p *internal.Player, msgType string, data any) outbound {
	return outbound{target: p, msg: internal.Message[any]{Type: msgType, Data: data}}
}

func (s *Session) flush(events []outbound) {
	for _, ev := range events {
		switch {
		case ev.target != nil:
			if err := ev.target.SafeWriteJSON(ev.msg); err != nil {
				log.Printf("[Session.flush] write to player %s failed: %v", ev.target.Id, err)
			}
		case ev.except != nil:
			s.SafeBroadcastExcept(ev.msg, ev.except)
		default:
			s.SafeBroadcast(ev.msg)
		}
	}
}

// =============================================================================
// MACRO TICK (1 Hz)
// =============================================================================

// MacroTick advances the session state machine by one second: preparation
// countdown in Waiting, game countdown + day/night + depletion in Running,
// restart delay in Finished.
func (s *Session) MacroTick() {
	s.Mu.Lock()
	var events []outbound
	var finalScores []internal.LeaderboardEntry
	finished := false

	switch s.Status {
	case internal.StatusWaiting:
		s.TimeRemaining--
		if s.TimeRemaining > 0 {
			events = append(events, broadcastMsg("preparationUpdate", s.TimeRemaining))
			break
		}
		s.TimeRemaining = 0
		if s.eligiblePlayersLocked() == 0 {
			// Nobody to play: loop the preparation phase instead of
			// starting an empty arena.
			log.Printf("[MacroTick] no eligible players, restarting preparation phase")
			events = append(events, s.enterWaitingLocked("Waiting for players...")...)
			break
		}
		events = append(events, s.startRunningLocked()...)

	case internal.StatusRunning:
		s.TimeRemaining--
		if s.TimeRemaining <= 0 {
			s.TimeRemaining = 0
			var evs []outbound
			evs, finalScores = s.finishGameLocked()
			events = append(events, evs...)
			finished = true
			break
		}
		if s.TimeRemaining%s.cfg.DayNightCycleSeconds == 0 {
			s.IsDayTime = !s.IsDayTime
			log.Printf("[MacroTick] day/night toggled, isDayTime=%v timeRemaining=%d", s.IsDayTime, s.TimeRemaining)
			events = append(events, broadcastMsg("dayNightChange", s.IsDayTime))
		}
		events = append(events, s.applyDepletionLocked()...)
		events = append(events, broadcastMsg("gameStateUpdate", s.snapshotLocked(false)))

	case internal.StatusFinished:
		s.RestartIn--
		if s.RestartIn <= 0 {
			events = append(events, s.enterWaitingLocked("Next game starting soon...")...)
		}
	}

	s.Mu.Unlock()
	s.flush(events)

	// Leaderboard submission may mirror to a store, so it runs outside the
	// session lock.
	if finished {
		for _, e := range finalScores {
			s.Leaderboard.Submit(e.PlayerName, e.Score)
		}
		s.SafeBroadcast(internal.Message[any]{Type: "leaderboardUpdate", Data: s.Leaderboard.Entries()})
	}
}

func (s *Session) enterWaitingLocked(message string) []outbound {
	s.Status = internal.StatusWaiting
	s.TimeRemaining = s.cfg.PreparationSeconds

	// Spectator status is per-session: everyone comes back for the next one.
	for _, p := range s.Players {
		p.IsSpectator = false
		p.Vitals = internal.FullVitals()
	}

	return []outbound{broadcastMsg("preparationPhase", internal.PreparationData{
		Message:       message,
		TimeRemaining: s.TimeRemaining,
	})}
}

func (s *Session) startRunningLocked() []outbound {
	s.Status = internal.StatusRunning
	s.TimeRemaining = s.cfg.GameDurationSeconds
	s.IsDayTime = true

	s.Resources = make([]*internal.Resource, 0, s.cfg.ResourceMax)
	s.seedResourcesLocked(s.cfg.ResourceMin)

	s.SafeZones = []internal.SafeZone{{
		Id:       uuid.NewString(),
		Position: internal.Position{X: s.cfg.ArenaWidth / 2, Y: s.cfg.ArenaHeight / 2},
		Radius:   s.cfg.SafeZoneRadius,
	}}

	for _, p := range s.Players {
		p.IsInSafeZone = s.inAnySafeZoneLocked(p.Position)
	}

	log.Printf("[MacroTick] game started: players=%d resources=%d duration=%ds",
		len(s.Players), len(s.Resources), s.TimeRemaining)

	return []outbound{
		broadcastMsg("gameStarted", s.TimeRemaining),
		broadcastMsg("gameStateUpdate", s.snapshotLocked(false)),
	}
}

// finishGameLocked closes out the session and returns the final scores for
// the caller to submit to the leaderboard once the lock is released.
func (s *Session) finishGameLocked() ([]outbound, []internal.LeaderboardEntry) {
	s.Status = internal.StatusFinished
	s.RestartIn = s.cfg.RestartDelaySeconds

	winner := s.winnerLocked()

	finalScores := make([]internal.LeaderboardEntry, 0, len(s.Players))
	for _, p := range s.Players {
		finalScores = append(finalScores, internal.LeaderboardEntry{PlayerName: p.Username, Score: p.Score})
	}
	slices.SortFunc(finalScores, func(a, b internal.LeaderboardEntry) int {
		return b.Score - a.Score
	})

	var winnerPublic *internal.Player
	winnerName := "nobody"
	if winner != nil {
		winnerPublic = winner.ToPublicPlayer()
		winnerName = winner.Username
	}
	log.Printf("[MacroTick] game finished: winner=%s players=%d", winnerName, len(s.Players))

	events := []outbound{
		broadcastMsg("gameFinished", internal.GameFinishedData{
			Winner:      winnerPublic,
			FinalScores: finalScores,
		}),
	}

	// Reset for the next session; spectator flags clear on the next Waiting.
	for _, p := range s.Players {
		p.Score = 0
		p.Vitals = internal.FullVitals()
	}
	s.Intents = make(map[string]*internal.MovementIntent)

	return events, finalScores
}

// winnerLocked picks the highest score; equal scores go to the player who
// registered first, so the result does not depend on map iteration order.
func (s *Session) winnerLocked() *internal.Player {
	var winner *internal.Player
	for _, p := range s.Players {
		if winner == nil ||
			p.Score > winner.Score ||
			(p.Score == winner.Score && p.JoinedSeq < winner.JoinedSeq) {
			winner = p
		}
	}
	return winner
}

func (s *Session) eligiblePlayersLocked() int {
	n := 0
	for _, p := range s.Players {
		if !p.IsSpectator {
			n++
		}
	}
	return n
}

func (s *Session) inAnySafeZoneLocked(pos internal.Position) bool {
	for _, z := range s.SafeZones {
		if z.Contains(pos) {
			return true
		}
	}
	return false
}

func (s *Session) snapshotLocked(withLeaderboard bool) internal.GameStateData {
	players := make([]*internal.Player, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p.ToPublicPlayer())
	}
	resources := make([]*internal.Resource, len(s.Resources))
	copy(resources, s.Resources)
	safeZones := make([]internal.SafeZone, len(s.SafeZones))
	copy(safeZones, s.SafeZones)

	data := internal.GameStateData{
		Status:        s.Status,
		TimeRemaining: s.TimeRemaining,
		IsDayTime:     s.IsDayTime,
		Players:       players,
		Resources:     resources,
		SafeZones:     safeZones,
	}
	if withLeaderboard {
		data.Leaderboard = s.Leaderboard.Entries()
	}
	return data
}

// =============================================================================
// PLAYER COMMANDS
// =============================================================================

// RegisterPlayer creates a player at a random position with full vitals,
// announces the join and sends the full state to the newcomer. A missing name
// is not an error; defaults apply.
func (s *Session) RegisterPlayer(conn *websocket.Conn, name string) *internal.Player {
	if name == "" {
		name = "Anonymous"
	}

	s.Mu.Lock()
	s.joinSeq++
	player := &internal.Player{
		Id:       uuid.NewString(),
		Conn:     conn,
		Username: name,
		Position: internal.Position{
			X: s.rng.Float64() * s.cfg.ArenaWidth,
			Y: s.rng.Float64() * s.cfg.ArenaHeight,
		},
		Vitals:    internal.FullVitals(),
		JoinedSeq: s.joinSeq,
		JoinedAt:  time.Now(),
	}
	player.IsInSafeZone = s.inAnySafeZoneLocked(player.Position)
	s.Players[player.Id] = player

	events := []outbound{
		{
			except: player,
			msg: internal.Message[any]{Type: "playerJoined", Data: internal.PlayerJoinedData{
				Player:      player.ToPublicPlayer(),
				PlayerCount: len(s.Players),
			}},
		},
		targetMsg(player, "gameState", s.snapshotLocked(true)),
	}
	total := len(s.Players)
	s.Mu.Unlock()

	log.Printf("[RegisterPlayer] player %s (%s) joined, total=%d", player.Id, name, total)
	s.flush(events)
	return player
}

// RemovePlayer drops a disconnected player. Unknown ids are a no-op.
func (s *Session) RemovePlayer(id string) {
	s.Mu.Lock()
	player, ok := s.Players[id]
	if !ok {
		s.Mu.Unlock()
		return
	}
	delete(s.Players, id)
	delete(s.Intents, id)
	remaining := len(s.Players)
	s.Mu.Unlock()

	log.Printf("[RemovePlayer] player %s (%s) disconnected, remaining=%d", id, player.Username, remaining)
	s.SafeBroadcast(internal.Message[any]{Type: "playerDisconnected", Data: id})
}

// HandleMovePlayer records a new movement intent. The target is clamped to
// the arena bounds here, at input time, so the integrator never has to.
func (s *Session) HandleMovePlayer(id string, x, y float64) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	player, ok := s.Players[id]
	if !ok || player.IsSpectator {
		return
	}
	s.Intents[id] = &internal.MovementIntent{
		Target: internal.Position{
			X: clamp(x, 0, s.cfg.ArenaWidth),
			Y: clamp(y, 0, s.cfg.ArenaHeight),
		},
		IsMoving: true,
	}
}

// HandleCollectResource is the explicit collect command: it runs the same
// atomic collection path as the movement integrator, at the player's current
// position.
func (s *Session) HandleCollectResource(id string) {
	s.Mu.Lock()
	var events []outbound
	if player, ok := s.Players[id]; ok && !player.IsSpectator && s.Status == internal.StatusRunning {
		if ev, collected := s.collectAtLocked(player); collected {
			events = append(events, ev)
		}
	}
	s.Mu.Unlock()
	s.flush(events)
}

// HandleGameOver seeds the leaderboard from a client-reported final score.
func (s *Session) HandleGameOver(name string, score int) {
	if name == "" || score < 0 {
		return
	}
	if s.Leaderboard.Submit(name, score) {
		s.SafeBroadcast(internal.Message[any]{Type: "leaderboardUpdate", Data: s.Leaderboard.Entries()})
	}
}

// Info is the read side for the HTTP surface.
type Info struct {
	Status        internal.GameStatus
	TimeRemaining int
	PlayerCount   int
	NextGameIn    int
}

func (s *Session) Info() Info {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	nextGameIn := 0
	switch s.Status {
	case internal.StatusWaiting:
		nextGameIn = s.TimeRemaining
	case internal.StatusRunning:
		nextGameIn = s.TimeRemaining + s.cfg.RestartDelaySeconds + s.cfg.PreparationSeconds
	case internal.StatusFinished:
		nextGameIn = s.RestartIn + s.cfg.PreparationSeconds
	}
	return Info{
		Status:        s.Status,
		TimeRemaining: s.TimeRemaining,
		PlayerCount:   len(s.Players),
		NextGameIn:    nextGameIn,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
