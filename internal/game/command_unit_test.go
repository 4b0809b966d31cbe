package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func TestRecruitUnit(t *testing.T) {
	st := testState()
	st.Players["p1"].Acc.Influence = 5

	next, events := mustExec(t, st, RecruitUnitCommand{PlayerID: "p1", UnitDefID: "peasants"})

	require.Len(t, next.Player("p1").Units, 1)
	assert.Equal(t, "unit-1", next.Player("p1").Units[0].ID)
	assert.Equal(t, "peasants", next.Player("p1").Units[0].DefID)
	assert.Equal(t, 1, next.Player("p1").Acc.AvailableInfluence())
	assert.Equal(t, rules.EventUnitRecruited, events[0].Type)
}

func TestRecruitUnitInsufficientInfluence(t *testing.T) {
	st := testState()
	st.Players["p1"].Acc.Influence = 3

	mustReject(t, st, RecruitUnitCommand{PlayerID: "p1", UnitDefID: "peasants"},
		rules.ReasonInsufficientInfluence)
}

func TestActivateUnitSpendsIt(t *testing.T) {
	st := testState()
	st.Players["p1"].Units = []UnitInstance{{ID: "u1", DefID: "peasants"}}

	// Outside combat only the move and influence options of the peasants'
	// choice are live, so the activation pauses on two options.
	next, _ := mustExec(t, st, ActivateUnitCommand{PlayerID: "p1", UnitID: "u1", AbilityIndex: 0})
	require.NotNil(t, next.Pending)
	require.Len(t, next.Pending.Options, 2)
	assert.True(t, next.Player("p1").Unit("u1").Spent)

	next, _ = mustExec(t, next, SelectChoiceCommand{PlayerID: "p1", Index: 0})
	assert.Equal(t, 2, next.Player("p1").Acc.AvailableMove())

	mustReject(t, next, ActivateUnitCommand{PlayerID: "p1", UnitID: "u1", AbilityIndex: 0},
		rules.ReasonTargetAlreadyResolved)
}

func TestActivateWoundedUnit(t *testing.T) {
	st := testState()
	st.Players["p1"].Units = []UnitInstance{{ID: "u1", DefID: "peasants", Wounded: true}}

	mustReject(t, st, ActivateUnitCommand{PlayerID: "p1", UnitID: "u1", AbilityIndex: 0},
		rules.ReasonTargetIneligible)
}

func TestPayUpkeep(t *testing.T) {
	st := testState()
	st.Players["p1"].Units = []UnitInstance{{ID: "u1", DefID: "fire_mages"}}
	st.Players["p1"].Acc.Influence = 3
	st = inCombat(t, st, false, "gunners")

	next, events := mustExec(t, st, PayUpkeepCommand{PlayerID: "p1", UnitID: "u1"})

	assert.True(t, next.Player("p1").Unit("u1").UpkeepPaid)
	assert.Equal(t, 1, next.Player("p1").Acc.AvailableInfluence())
	assert.Equal(t, rules.EventUpkeepPaid, events[0].Type)

	mustReject(t, next, PayUpkeepCommand{PlayerID: "p1", UnitID: "u1"},
		rules.ReasonTargetAlreadyResolved)
}

func TestPayUpkeepOutsideCombat(t *testing.T) {
	st := testState()
	st.Players["p1"].Units = []UnitInstance{{ID: "u1", DefID: "fire_mages"}}
	st.Players["p1"].Acc.Influence = 3

	mustReject(t, st, PayUpkeepCommand{PlayerID: "p1", UnitID: "u1"},
		rules.ReasonNotInCombat)
}

func TestPayUpkeepNoUpkeepUnit(t *testing.T) {
	st := testState()
	st.Players["p1"].Units = []UnitInstance{{ID: "u1", DefID: "peasants"}}
	st.Players["p1"].Acc.Influence = 3
	st = inCombat(t, st, false, "prowlers")

	mustReject(t, st, PayUpkeepCommand{PlayerID: "p1", UnitID: "u1"},
		rules.ReasonTargetIneligible)
}
