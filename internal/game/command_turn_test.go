package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func addTurnModifier(t *testing.T, st *GameState, owner string) {
	t.Helper()
	var err error
	st.Modifiers, _, err = st.Modifiers.Add(modifier.ActiveModifier{
		Source:            modifier.Source{Kind: modifier.SourceCard, Name: "March", OwnerPlayerID: owner},
		Scope:             modifier.Scope{Kind: modifier.ScopeSelf},
		Duration:          modifier.DurationTurn,
		Effect:            modifier.Payload{Kind: modifier.KindSidewaysValueSet, Value: 2},
		CreatedByPlayerID: owner,
	})
	require.NoError(t, err)
}

func TestEndTurnSweepsTurnState(t *testing.T) {
	st := testState()
	p := st.Players["p1"]
	p.Acc.Move = 3
	p.Pool = p.Pool.AddToken(mana.Red)
	p.Deck = []string{"march", "rage", "promise"}
	p.SkillUse["motivation"] = SkillState{UsedThisTurn: true, UsedThisRound: true}
	p.Units = []UnitInstance{{ID: "u1", DefID: "peasants", Spent: true}}
	addTurnModifier(t, st, "p1")

	next, events := mustExec(t, st, EndTurnCommand{PlayerID: "p1"})

	np := next.Player("p1")
	assert.Equal(t, 0, np.Acc.AvailableMove())
	assert.Equal(t, 0, np.Pool.Tokens[mana.Red], "tokens evaporate")
	assert.Empty(t, next.Modifiers.Modifiers, "turn modifiers expire")
	assert.Len(t, np.Hand, 3, "hand refills from the deck")
	assert.False(t, np.SkillUse["motivation"].UsedThisTurn)
	assert.True(t, np.SkillUse["motivation"].UsedThisRound, "round cooldown survives the turn")
	assert.False(t, np.Units[0].Spent)

	assert.Equal(t, "p2", next.ActivePlayerID())
	assert.Equal(t, rules.EventTurnEnded, events[0].Type)
	assert.Equal(t, rules.EventTurnStarted, events[len(events)-1].Type)
	assert.False(t, EndTurnCommand{}.Reversible())
}

func TestEndTurnLeavesOtherPlayersModifiers(t *testing.T) {
	st := testState()
	addTurnModifier(t, st, "p1")
	addTurnModifier(t, st, "p2")

	next, _ := mustExec(t, st, EndTurnCommand{PlayerID: "p1"})

	require.Len(t, next.Modifiers.Modifiers, 1)
	assert.Equal(t, "p2", next.Modifiers.Modifiers[0].Source.OwnerPlayerID)
}

func TestEndTurnReturnsTakenDice(t *testing.T) {
	st := testState()
	st.Source = fixedSource(mana.Red, mana.Blue)
	st, _ = mustExec(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 0})

	next, _ := mustExec(t, st, EndTurnCommand{PlayerID: "p1"})

	assert.Equal(t, 0, next.Source.UsedThisTurn)
	for _, d := range next.Source.Dice {
		assert.False(t, d.Taken)
	}
}

func TestRoundRollsOverAfterLastPlayer(t *testing.T) {
	st := testState()
	st.ActiveIdx = 1 // p2, last in order
	st.Players["p2"].SkillUse["motivation"] = SkillState{UsedThisRound: true}

	var err error
	st.Modifiers, _, err = st.Modifiers.Add(modifier.ActiveModifier{
		Source:            modifier.Source{Kind: modifier.SourceSite, Name: "Mana Rift", OwnerPlayerID: "p1"},
		Scope:             modifier.Scope{Kind: modifier.ScopeAllPlayers},
		Duration:          modifier.DurationRound,
		Effect:            modifier.Payload{Kind: modifier.KindSourceDice, Delta: 1},
		CreatedByPlayerID: "p1",
	})
	require.NoError(t, err)

	next, events := mustExec(t, st, EndTurnCommand{PlayerID: "p2"})

	assert.Equal(t, 2, next.Round)
	assert.Equal(t, rules.Night, next.TimeOfDay)
	assert.Empty(t, next.Modifiers.Modifiers, "round modifiers expire")
	assert.False(t, next.Player("p2").SkillUse["motivation"].UsedThisRound)
	assert.Equal(t, "p1", next.ActivePlayerID())

	var sawRoundEnd bool
	for _, ev := range events {
		if ev.Type == rules.EventRoundEnded {
			sawRoundEnd = true
		}
	}
	assert.True(t, sawRoundEnd)
}

func TestEndTurnBlockedByOpenCombat(t *testing.T) {
	st := testState()
	st = inCombat(t, st, false, "prowlers")

	mustReject(t, st, EndTurnCommand{PlayerID: "p1"}, rules.ReasonWrongPhase)
}

func TestEndTurnClearsFinishedCombat(t *testing.T) {
	st := testState()
	st.Players["p1"].Acc.Attack = AttackPool{}.Add(rules.AttackSiege, rules.ElementPhysical, 3)
	st = inCombat(t, st, false, "prowlers")
	st, _ = mustExec(t, st, RangedSiegeAttackCommand{
		PlayerID: "p1",
		EnemyIDs: []string{"enemy-1"},
		Spend:    []AttackSpend{{Type: rules.AttackSiege, Element: rules.ElementPhysical, Amount: 3}},
	})
	st, _ = mustExec(t, st, AdvancePhaseCommand{PlayerID: "p1"})
	require.Equal(t, PhaseEnded, st.Combat.Phase)

	next, _ := mustExec(t, st, EndTurnCommand{PlayerID: "p1"})
	assert.Nil(t, next.Combat)
}

func TestAnnounceEndOfRound(t *testing.T) {
	st := testState()

	next, events := mustExec(t, st, AnnounceEndOfRoundCommand{PlayerID: "p1"})

	assert.True(t, next.Player("p1").AnnouncedEndOfRound)
	require.Len(t, events, 1)
	assert.Equal(t, rules.EventEndOfRoundAnnounced, events[0].Type)

	// Announcing twice changes nothing.
	again, events, err := (AnnounceEndOfRoundCommand{PlayerID: "p1"}).Execute(next)
	require.NoError(t, err)
	assert.Nil(t, again)
	require.Len(t, events, 1)
	assert.Equal(t, rules.EventNoOp, events[0].Type)
}

func TestRoundEndsEarlyWhenAllAnnounced(t *testing.T) {
	st := testState()
	st.Players["p1"].AnnouncedEndOfRound = true
	st.Players["p2"].AnnouncedEndOfRound = true

	next, events := mustExec(t, st, EndTurnCommand{PlayerID: "p1"})

	assert.Equal(t, 2, next.Round, "round ends without waiting for the table to wrap")
	assert.Equal(t, "p2", next.ActivePlayerID())
	assert.False(t, next.Player("p1").AnnouncedEndOfRound)
	assert.False(t, next.Player("p2").AnnouncedEndOfRound)

	var sawRoundEnd bool
	for _, ev := range events {
		if ev.Type == rules.EventRoundEnded {
			sawRoundEnd = true
		}
	}
	assert.True(t, sawRoundEnd)
}
