package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func TestCreateGameDeterministic(t *testing.T) {
	a, err := NewEngine(nil).CreateGame([]string{"Arythea", "Tovak"}, 42)
	require.NoError(t, err)
	b, err := NewEngine(nil).CreateGame([]string{"Arythea", "Tovak"}, 42)
	require.NoError(t, err)

	assert.Equal(t, a.TurnOrder, b.TurnOrder)
	for _, id := range a.TurnOrder {
		assert.Equal(t, a.Players[id].Hand, b.Players[id].Hand)
		assert.Equal(t, a.Players[id].Deck, b.Players[id].Deck)
	}
	assert.Equal(t, a.Source.Dice, b.Source.Dice)
	assert.Len(t, a.Source.Dice, 4, "two players roll four dice")
	for _, id := range a.TurnOrder {
		assert.Len(t, a.Players[id].Hand, HandLimit)
	}
}

func TestProcessUnknownGame(t *testing.T) {
	e := NewEngine(zaptest.NewLogger(t))
	_, _, err := e.Process("nope", EndTurnCommand{PlayerID: "p1"})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestProcessRejectionLeavesStateAlone(t *testing.T) {
	e := NewEngine(nil)
	st := testState()
	e.RestoreGame(st)

	got, events, err := e.Process("g1", PlayCardCommand{PlayerID: "p1", CardID: "march"})
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, rules.EventInvalidAction, events[0].Type)

	// The stored state is untouched by the rejection.
	assert.Empty(t, got.Player("p1").Discard)
}

func TestUndoRestoresPreviousState(t *testing.T) {
	e := NewEngine(nil)
	st := testState()
	st.Players["p1"].Hand = []string{"march"}
	e.RestoreGame(st)

	_, _, err := e.Process("g1", PlayCardCommand{PlayerID: "p1", CardID: "march"})
	require.NoError(t, err)

	got, events, err := e.Undo("g1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"march"}, got.Player("p1").Hand)
	assert.Equal(t, rules.EventCommandUndone, events[0].Type)
}

func TestUndoStopsAtIrreversibleBoundary(t *testing.T) {
	e := NewEngine(nil)
	st := testState()
	st.Players["p1"].Hand = []string{"march", "promise"}
	e.RestoreGame(st)

	_, _, err := e.Process("g1", PlayCardCommand{PlayerID: "p1", CardID: "march"})
	require.NoError(t, err)
	_, _, err = e.Process("g1", UseSkillCommand{PlayerID: "p1", SkillID: "nope"})
	require.NoError(t, err) // rejected, but not an error

	// The rejection did not touch the history; undo still works.
	_, _, err = e.Undo("g1", "p1")
	require.NoError(t, err)

	// An irreversible command wipes the history behind it.
	_, _, err = e.Process("g1", EndTurnCommand{PlayerID: "p1"})
	require.NoError(t, err)
	_, _, err = e.Undo("g1", "p2")
	assert.ErrorIs(t, err, ErrNotUndoable)
}

func TestUndoOnlyByActivePlayer(t *testing.T) {
	e := NewEngine(nil)
	st := testState()
	st.Players["p1"].Hand = []string{"march"}
	e.RestoreGame(st)

	_, _, err := e.Process("g1", PlayCardCommand{PlayerID: "p1", CardID: "march"})
	require.NoError(t, err)

	got, events, err := e.Undo("g1", "p2")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, rules.EventInvalidAction, events[0].Type)
	assert.Equal(t, rules.ReasonNotYourTurn, events[0].Reason)
}

func TestEngineHandsOutCopies(t *testing.T) {
	e := NewEngine(nil)
	e.RestoreGame(testState())

	got, err := e.State("g1")
	require.NoError(t, err)
	got.Players["p1"].Acc.Move = 99

	again, err := e.State("g1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Player("p1").Acc.Move)
}
