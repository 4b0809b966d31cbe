package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func TestSnapshotRoundTrip(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"rage", "pathfinding"}
	st.Players["p1"].Units = []UnitInstance{{ID: "u1", DefID: "peasants", Spent: true}}
	addTurnModifier(t, st, "p1")
	st = inCombat(t, st, true, "swamp_things")
	st = advanceTo(t, st, PhaseBlock)
	st.Players["p1"].Acc.Block = map[rules.Element]int{rules.ElementPhysical: 4}
	st, _ = mustExec(t, st, AssignBlockCommand{
		PlayerID: "p1", EnemyID: "enemy-1", AttackIndex: 0,
		Element: rules.ElementPhysical, Amount: 3,
	})
	st, _ = mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "rage"})
	require.NotNil(t, st.Pending)

	data, err := Snapshot(st)
	require.NoError(t, err)

	got, err := RestoreSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, st.ID, got.ID)
	assert.Equal(t, st.Modifiers.NextID, got.Modifiers.NextID)
	require.Len(t, got.Modifiers.Modifiers, len(st.Modifiers.Modifiers))
	assert.Equal(t, st.Modifiers.Modifiers[0].ID, got.Modifiers.Modifiers[0].ID)

	require.NotNil(t, got.Combat)
	assert.Equal(t, st.Combat.Phase, got.Combat.Phase)
	assert.Equal(t, st.Combat.Enemies[0].AttacksBlocked, got.Combat.Enemies[0].AttacksBlocked)
	assert.Equal(t, st.Combat.PendingSwiftBlock, got.Combat.PendingSwiftBlock)
	assert.Equal(t, st.Combat.DeclaredBlockTarget, got.Combat.DeclaredBlockTarget)

	require.NotNil(t, got.Pending)
	assert.Equal(t, len(st.Pending.Options), len(got.Pending.Options))
	assert.Equal(t, st.RandSeed, got.RandSeed)
	assert.Equal(t, st.Source.Dice, got.Source.Dice)
	assert.True(t, got.Player("p1").Units[0].Spent)

	// The restored state keeps working.
	next, _ := mustExec(t, got, SelectChoiceCommand{PlayerID: "p1", Index: 1})
	assert.Equal(t, 3, next.Player("p1").Acc.AvailableBlock(rules.ElementPhysical))
}

func TestRestoreSnapshotRejectsBadInput(t *testing.T) {
	_, err := RestoreSnapshot([]byte("not json"))
	assert.Error(t, err)

	_, err = RestoreSnapshot([]byte(`{"version":99,"state":{"id":"x"}}`))
	assert.Error(t, err)

	_, err = RestoreSnapshot([]byte(`{"version":1}`))
	assert.Error(t, err)

	// A modifier id at or past the counter would collide on the next add.
	_, err = RestoreSnapshot([]byte(`{"version":1,"state":{
		"id":"g","turnOrder":["p1"],"players":{"p1":{"id":"p1","pool":{}}},
		"modifiers":{"modifiers":[{"id":5,"source":{},"scope":{"kind":"SELF"},"duration":"TURN","effect":{"kind":"SOURCE_DICE"}}],"nextId":3}
	}}`))
	assert.Error(t, err)
}
