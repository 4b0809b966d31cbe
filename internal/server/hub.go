package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// WSMessage is the envelope for everything crossing the socket, in
// both directions.
type WSMessage struct {
	Type     string          `json:"type"`
	GameID   string          `json:"gameId,omitempty"`
	PlayerID string          `json:"playerId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type createGamePayload struct {
	PlayerNames []string `json:"playerNames"`
	Seed        int64    `json:"seed"`
}

type statePayload struct {
	State  *game.GameState `json:"state"`
	Events []rules.Event   `json:"events,omitempty"`
}

// GameSaver persists a game after it changes. The hub treats save
// failures as non-fatal.
type GameSaver interface {
	Save(ctx context.Context, st *game.GameState) error
}

type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	gameID   string
}

// Hub fans messages between clients and the engine. One goroutine owns
// the client set; game state lives in the engine.
type Hub struct {
	engine     *game.Engine
	saver      GameSaver
	log        *zap.Logger
	maxPlayers int

	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(engine *game.Engine, saver GameSaver, maxPlayers int, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		engine:     engine,
		saver:      saver,
		log:        log,
		maxPlayers: maxPlayers,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes client registrations until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debug("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.Debug("client unregistered", zap.String("player", client.playerID))

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and closes every client send channel.
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) handleMessage(client *Client, msg WSMessage) {
	h.log.Debug("message received",
		zap.String("type", msg.Type),
		zap.String("game", msg.GameID),
		zap.String("player", msg.PlayerID))

	switch msg.Type {
	case "CREATE_GAME":
		var p createGamePayload
		if msg.Payload != nil {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				h.sendError(client, msg.Type, err.Error())
				return
			}
		}
		if h.maxPlayers > 0 && len(p.PlayerNames) > h.maxPlayers {
			h.sendError(client, msg.Type, fmt.Sprintf("at most %d players per game", h.maxPlayers))
			return
		}
		if p.Seed == 0 {
			p.Seed = time.Now().UnixNano()
		}
		st, err := h.engine.CreateGame(p.PlayerNames, p.Seed)
		if err != nil {
			h.sendError(client, msg.Type, err.Error())
			return
		}
		client.gameID = st.ID
		if len(st.TurnOrder) > 0 {
			client.playerID = st.TurnOrder[0]
		}
		h.persist(st)
		h.sendState(client, st, nil)

	case "JOIN_GAME":
		st, err := h.engine.State(msg.GameID)
		if err != nil {
			h.sendError(client, msg.Type, err.Error())
			return
		}
		client.gameID = msg.GameID
		client.playerID = msg.PlayerID
		h.sendState(client, st, nil)

	case "GET_STATE":
		st, err := h.engine.State(client.gameID)
		if err != nil {
			h.sendError(client, msg.Type, err.Error())
			return
		}
		h.sendState(client, st, nil)

	case "UNDO":
		st, events, err := h.engine.Undo(client.gameID, client.playerID)
		if err != nil {
			h.sendError(client, msg.Type, err.Error())
			return
		}
		h.persist(st)
		h.broadcastState(client.gameID, st, events)

	default:
		cmd, err := decodeCommand(msg.Type, client.playerID, msg.Payload)
		if err != nil {
			h.sendError(client, msg.Type, err.Error())
			return
		}
		st, events, err := h.engine.Process(client.gameID, cmd)
		if err != nil {
			h.sendError(client, msg.Type, err.Error())
			return
		}
		h.persist(st)
		h.broadcastState(client.gameID, st, events)
	}
}

func (h *Hub) persist(st *game.GameState) {
	if h.saver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.saver.Save(ctx, st); err != nil {
		h.log.Warn("persisting game failed", zap.String("game", st.ID), zap.Error(err))
	}
}

func (h *Hub) sendState(client *Client, st *game.GameState, events []rules.Event) {
	data, err := json.Marshal(statePayload{State: st, Events: events})
	if err != nil {
		h.log.Error("marshaling state", zap.Error(err))
		return
	}
	out, _ := json.Marshal(WSMessage{Type: "GAME_STATE", GameID: st.ID, Payload: data})
	select {
	case client.send <- out:
	default:
	}
}

func (h *Hub) sendError(client *Client, msgType, detail string) {
	out, _ := json.Marshal(WSMessage{Type: "ERROR", Payload: mustJSON(msgType), Error: detail})
	select {
	case client.send <- out:
	default:
	}
}

func mustJSON(s string) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}

// broadcastState pushes the new state to every client in the game.
func (h *Hub) broadcastState(gameID string, st *game.GameState, events []rules.Event) {
	data, err := json.Marshal(statePayload{State: st, Events: events})
	if err != nil {
		h.log.Error("marshaling state", zap.Error(err))
		return
	}
	out, _ := json.Marshal(WSMessage{Type: "GAME_STATE", GameID: gameID, Payload: data})

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.gameID != gameID {
			continue
		}
		select {
		case client.send <- out:
		default:
		}
	}
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			hub.log.Warn("bad message", zap.Error(err))
			continue
		}
		hub.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
