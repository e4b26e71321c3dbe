package game

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Enescyc/survival-game-online/internal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

// HandleWebSocket upgrades the connection and runs its read loop. A player
// only exists after the client sends a register event; commands arriving
// before that are ignored.
func (s *Session) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[HandleWebSocket] upgrade failed:", err)
		return
	}
	go s.handleMessages(conn)
}

func (s *Session) handleMessages(conn *websocket.Conn) {
	var player *internal.Player
	defer func() {
		conn.Close()
		if player != nil {
			s.RemovePlayer(player.Id)
		}
	}()

	for {
		_, rawMessage, err := conn.ReadMessage()
		if err != nil {
			if player != nil {
				log.Printf("[handleMessages] read error for player %s (%s): %v", player.Id, player.Username, err)
			}
			return
		}

		var baseMsg internal.Message[json.RawMessage]
		if err := json.Unmarshal(rawMessage, &baseMsg); err != nil {
			log.Printf("[handleMessages] failed to parse message: %v", err)
			continue
		}

		player = s.dispatch(conn, player, baseMsg)
	}
}

// dispatch routes one client event. A panic inside a handler is converted
// into a generic error event to this client; the process keeps serving.
func (s *Session) dispatch(conn *websocket.Conn, player *internal.Player, msg internal.Message[json.RawMessage]) *internal.Player {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[dispatch] recovered from handler fault on %q: %v", msg.Type, r)
			_ = conn.WriteJSON(internal.Message[any]{
				Type: "error",
				Data: internal.ErrorData{Message: "internal server error"},
			})
		}
	}()

	switch msg.Type {
	case "register":
		if player != nil {
			return player
		}
		var data internal.RegisterData
		// Malformed registration payloads are not fatal; defaults apply.
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Printf("[dispatch] bad register payload, using defaults: %v", err)
		}
		return s.RegisterPlayer(conn, data.Name)

	case "movePlayer":
		if player == nil {
			return nil
		}
		var data internal.MoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Printf("[dispatch] bad movePlayer payload from %s: %v", player.Id, err)
			return player
		}
		s.HandleMovePlayer(player.Id, data.X, data.Y)

	case "collectResource":
		if player == nil {
			return nil
		}
		s.HandleCollectResource(player.Id)

	case "gameOver":
		var data internal.GameOverData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			log.Printf("[dispatch] bad gameOver payload: %v", err)
			return player
		}
		s.HandleGameOver(data.PlayerName, data.Score)

	default:
		log.Printf("[dispatch] unknown message type: %s", msg.Type)
	}
	return player
}
