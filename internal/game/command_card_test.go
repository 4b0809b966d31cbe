package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func TestPlayCardBasic(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march"}

	next, events := mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "march"})

	assert.Equal(t, 2, next.Player("p1").Acc.AvailableMove())
	assert.Empty(t, next.Player("p1").Hand)
	assert.Equal(t, []string{"march"}, next.Player("p1").Discard)
	assert.Equal(t, rules.EventCardPlayed, events[0].Type)

	// The input state did not move.
	assert.Equal(t, 0, st.Player("p1").Acc.AvailableMove())
	assert.Equal(t, []string{"march"}, st.Player("p1").Hand)
}

func TestPlayCardStrongPaysMana(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march"}
	st.Players["p1"].Pool = st.Players["p1"].Pool.AddToken(mana.Green)

	next, _ := mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "march", Strong: true})

	assert.Equal(t, 4, next.Player("p1").Acc.AvailableMove())
	assert.Equal(t, 0, next.Player("p1").Pool.Tokens[mana.Green])
}

func TestPlayCardStrongWithoutMana(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march"}

	mustReject(t, st, PlayCardCommand{PlayerID: "p1", CardID: "march", Strong: true},
		rules.ReasonInsufficientMana)
}

func TestPlayCardStrongGoldWildByDayOnly(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march", "march"}
	st.Players["p1"].Pool = st.Players["p1"].Pool.AddToken(mana.Gold)

	next, _ := mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "march", Strong: true})
	assert.Equal(t, 4, next.Player("p1").Acc.AvailableMove())

	st.TimeOfDay = rules.Night
	mustReject(t, st, PlayCardCommand{PlayerID: "p1", CardID: "march", Strong: true},
		rules.ReasonInsufficientMana)
}

func TestPlayCardNotInHand(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march"}

	mustReject(t, st, PlayCardCommand{PlayerID: "p1", CardID: "rage"},
		rules.ReasonCardNotInHand)
}

func TestPlayWoundRejected(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{content.WoundCardID}

	mustReject(t, st, PlayCardCommand{PlayerID: "p1", CardID: content.WoundCardID},
		rules.ReasonTargetIneligible)
	mustReject(t, st, PlaySidewaysCommand{PlayerID: "p1", CardID: content.WoundCardID, As: SidewaysMove},
		rules.ReasonTargetIneligible)
}

func TestPlayCardOutOfTurn(t *testing.T) {
	st := testState()
	st.Players["p2"].Hand = []string{"march"}

	mustReject(t, st, PlayCardCommand{PlayerID: "p2", CardID: "march"},
		rules.ReasonNotYourTurn)
}

func TestChoiceSkippedWhenNothingResolvable(t *testing.T) {
	// Rage's basic effect is attack or block; outside combat neither does
	// anything, so the choice skips without pausing.
	st := testState()
	st.Players["p1"].Hand = []string{"rage"}

	next, events := mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "rage"})

	assert.Nil(t, next.Pending)
	assert.Equal(t, []string{"rage"}, next.Player("p1").Discard)
	var sawNoOp bool
	for _, ev := range events {
		if ev.Type == rules.EventNoOp {
			sawNoOp = true
		}
	}
	assert.True(t, sawNoOp)
}

func TestChoicePausesWithMultipleOptions(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"rage"}
	st = inCombat(t, st, false, "prowlers")

	next, _ := mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "rage"})

	require.NotNil(t, next.Pending)
	assert.Equal(t, "p1", next.Pending.PlayerID)
	assert.Len(t, next.Pending.Options, 2)

	// Everything else is locked until the choice resolves.
	mustReject(t, next, EndTurnCommand{PlayerID: "p1"}, rules.ReasonChoicePending)

	resolved, _ := mustExec(t, next, SelectChoiceCommand{PlayerID: "p1", Index: 0})
	assert.Nil(t, resolved.Pending)
	assert.Equal(t, 2, resolved.Player("p1").Acc.AvailableAttack(rules.AttackNormal, rules.ElementPhysical))
}

func TestChoiceAutoPicksSingleOption(t *testing.T) {
	// Tranquility offers heal or draw; without wounds only the draw is
	// resolvable, so it happens without a pause.
	st := testState()
	st.Players["p1"].Hand = []string{"tranquility"}
	st.Players["p1"].Deck = []string{"march", "rage"}

	next, _ := mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "tranquility"})

	assert.Nil(t, next.Pending)
	assert.Equal(t, []string{"march"}, next.Player("p1").Hand)
	assert.Equal(t, []string{"rage"}, next.Player("p1").Deck)
}

func TestSelectChoiceWithoutPending(t *testing.T) {
	st := testState()
	mustReject(t, st, SelectChoiceCommand{PlayerID: "p1", Index: 0},
		rules.ReasonNoChoicePending)
}

func TestPlaySidewaysBaseValue(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march"}

	next, events := mustExec(t, st, PlaySidewaysCommand{PlayerID: "p1", CardID: "march", As: SidewaysInfluence})

	assert.Equal(t, 1, next.Player("p1").Acc.AvailableInfluence())
	assert.Equal(t, rules.EventSidewaysPlayed, events[0].Type)
	assert.Equal(t, 1, events[0].Amount)
}

func TestPlaySidewaysWithValueOverride(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march"}
	var err error
	st.Modifiers, _, err = st.Modifiers.Add(modifier.ActiveModifier{
		Source:            modifier.Source{Kind: modifier.SourceSkill, Name: "I Don't Give a Damn!", OwnerPlayerID: "p1"},
		Scope:             modifier.Scope{Kind: modifier.ScopeSelf},
		Duration:          modifier.DurationTurn,
		Effect:            modifier.Payload{Kind: modifier.KindSidewaysValueSet, Value: 2},
		CreatedByPlayerID: "p1",
	})
	require.NoError(t, err)

	next, _ := mustExec(t, st, PlaySidewaysCommand{PlayerID: "p1", CardID: "march", As: SidewaysMove})
	assert.Equal(t, 2, next.Player("p1").Acc.AvailableMove())
}

func TestPlaySidewaysBlockNeedsCombat(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"march"}

	mustReject(t, st, PlaySidewaysCommand{PlayerID: "p1", CardID: "march", As: SidewaysBlock},
		rules.ReasonNotInCombat)
}
