package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game"
)

func TestDecodeCommandPlayCard(t *testing.T) {
	cmd, err := decodeCommand("PLAY_CARD", "player-1", json.RawMessage(`{"cardId":"march","strong":true}`))
	require.NoError(t, err)

	play, ok := cmd.(game.PlayCardCommand)
	require.True(t, ok)
	assert.Equal(t, "player-1", play.PlayerID)
	assert.Equal(t, "march", play.CardID)
	assert.True(t, play.Strong)
}

func TestDecodeCommandEnvelopePlayerWins(t *testing.T) {
	// A payload claiming another player id must not be trusted.
	cmd, err := decodeCommand("END_TURN", "player-2", json.RawMessage(`{"playerId":"player-1"}`))
	require.NoError(t, err)

	end, ok := cmd.(game.EndTurnCommand)
	require.True(t, ok)
	assert.Equal(t, "player-2", end.PlayerID)
}

func TestDecodeCommandNilPayload(t *testing.T) {
	cmd, err := decodeCommand("DECLARE_BLOCK", "player-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "DECLARE_BLOCK", cmd.Name())
}

func TestDecodeCommandCombatSpends(t *testing.T) {
	payload := json.RawMessage(`{"enemyIds":["enemy-1"],"spend":[{"type":"ATTACK","element":"FIRE","amount":5}]}`)
	cmd, err := decodeCommand("DECLARE_ATTACK", "player-1", payload)
	require.NoError(t, err)

	atk, ok := cmd.(game.DeclareAttackCommand)
	require.True(t, ok)
	require.Len(t, atk.Spend, 1)
	assert.Equal(t, 5, atk.Spend[0].Amount)
	assert.Equal(t, []string{"enemy-1"}, atk.EnemyIDs)
}

func TestDecodeCommandUnknownType(t *testing.T) {
	_, err := decodeCommand("CAST_FIREBALL", "player-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAST_FIREBALL")
}

func TestDecodeCommandBadPayload(t *testing.T) {
	_, err := decodeCommand("MOVE", "player-1", json.RawMessage(`{"to":"not-a-coord"`))
	require.Error(t, err)
}
