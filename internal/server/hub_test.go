package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game"
)

type recordingSaver struct {
	saved []string
}

func (r *recordingSaver) Save(_ context.Context, st *game.GameState) error {
	r.saved = append(r.saved, st.ID)
	return nil
}

func newTestHub(t *testing.T, saver GameSaver) (*Hub, *Client) {
	t.Helper()
	hub := NewHub(game.NewEngine(nil), saver, 4, nil)
	client := &Client{send: make(chan []byte, 16)}
	hub.clients[client] = true
	return hub, client
}

func recv(t *testing.T, client *Client) WSMessage {
	t.Helper()
	select {
	case data := <-client.send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	default:
		t.Fatal("no message queued for client")
		return WSMessage{}
	}
}

func TestHubCreateGame(t *testing.T) {
	saver := &recordingSaver{}
	hub, client := newTestHub(t, saver)

	hub.handleMessage(client, WSMessage{
		Type:    "CREATE_GAME",
		Payload: json.RawMessage(`{"playerNames":["Arythea","Tovak"],"seed":42}`),
	})

	msg := recv(t, client)
	require.Equal(t, "GAME_STATE", msg.Type)
	require.NotEmpty(t, msg.GameID)
	assert.Equal(t, msg.GameID, client.gameID)
	assert.NotEmpty(t, client.playerID)
	assert.Equal(t, []string{msg.GameID}, saver.saved)

	var p statePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &p))
	require.NotNil(t, p.State)
	assert.Len(t, p.State.TurnOrder, 2)
}

func TestHubCreateGameTooManyPlayers(t *testing.T) {
	hub, client := newTestHub(t, nil)
	hub.maxPlayers = 2

	hub.handleMessage(client, WSMessage{
		Type:    "CREATE_GAME",
		Payload: json.RawMessage(`{"playerNames":["A","B","C"],"seed":1}`),
	})

	msg := recv(t, client)
	assert.Equal(t, "ERROR", msg.Type)
	assert.Contains(t, msg.Error, "players")
}

func TestHubCommandDispatchBroadcasts(t *testing.T) {
	hub, client := newTestHub(t, nil)

	hub.handleMessage(client, WSMessage{
		Type:    "CREATE_GAME",
		Payload: json.RawMessage(`{"playerNames":["Arythea","Tovak"],"seed":7}`),
	})
	recv(t, client)

	other := &Client{send: make(chan []byte, 16), gameID: client.gameID, playerID: "player-2"}
	hub.clients[other] = true

	hub.handleMessage(client, WSMessage{Type: "END_TURN"})

	msg := recv(t, client)
	require.Equal(t, "GAME_STATE", msg.Type)

	// Every client in the game sees the new state.
	otherMsg := recv(t, other)
	assert.Equal(t, "GAME_STATE", otherMsg.Type)

	var p statePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &p))
	require.NotNil(t, p.State)
	assert.NotEqual(t, client.playerID, p.State.TurnOrder[p.State.ActiveIdx])
}

func TestHubUnknownCommandType(t *testing.T) {
	hub, client := newTestHub(t, nil)

	hub.handleMessage(client, WSMessage{
		Type:    "CREATE_GAME",
		Payload: json.RawMessage(`{"playerNames":["Arythea"],"seed":3}`),
	})
	recv(t, client)

	hub.handleMessage(client, WSMessage{Type: "SUMMON_DRAGON"})

	msg := recv(t, client)
	assert.Equal(t, "ERROR", msg.Type)
}

func TestHubJoinUnknownGame(t *testing.T) {
	hub, client := newTestHub(t, nil)

	hub.handleMessage(client, WSMessage{Type: "JOIN_GAME", GameID: "missing", PlayerID: "player-1"})

	msg := recv(t, client)
	assert.Equal(t, "ERROR", msg.Type)
}
