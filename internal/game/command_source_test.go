package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func fixedSource(colors ...mana.Color) mana.Source {
	dice := make([]mana.Die, len(colors))
	for i, c := range colors {
		dice[i] = mana.Die{Color: c}
	}
	return mana.Source{Dice: dice}
}

func TestTakeSourceDie(t *testing.T) {
	st := testState()
	st.Source = fixedSource(mana.Red, mana.Blue)

	next, events := mustExec(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 0})

	assert.Equal(t, 1, next.Player("p1").Pool.Tokens[mana.Red])
	assert.True(t, next.Source.Dice[0].Taken)
	assert.Equal(t, 1, next.Source.UsedThisTurn)
	assert.Equal(t, rules.EventSourceDieTaken, events[0].Type)
}

func TestTakeSourceDieAllowance(t *testing.T) {
	st := testState()
	st.Source = fixedSource(mana.Red, mana.Blue, mana.Green)

	st, _ = mustExec(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 0})
	mustReject(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 1},
		rules.ReasonSourceExhausted)

	// A source-dice modifier raises the allowance to two.
	var err error
	st.Modifiers, _, err = st.Modifiers.Add(modifier.ActiveModifier{
		Source:            modifier.Source{Kind: modifier.SourceCard, Name: "Mana Draw", OwnerPlayerID: "p1"},
		Scope:             modifier.Scope{Kind: modifier.ScopeSelf},
		Duration:          modifier.DurationTurn,
		Effect:            modifier.Payload{Kind: modifier.KindSourceDice, Delta: 1},
		CreatedByPlayerID: "p1",
	})
	require.NoError(t, err)

	next, _ := mustExec(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 1})
	assert.Equal(t, 2, next.Source.UsedThisTurn)
	mustReject(t, next, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 2},
		rules.ReasonSourceExhausted)
}

func TestTakeBlackDieByDay(t *testing.T) {
	st := testState()
	st.Source = fixedSource(mana.Black)

	mustReject(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 0},
		rules.ReasonManaColorUnusable)

	st.TimeOfDay = rules.Night
	next, _ := mustExec(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 0})
	assert.Equal(t, 1, next.Player("p1").Pool.Tokens[mana.Black])
}

func TestTakeGoldDieAtNight(t *testing.T) {
	st := testState()
	st.TimeOfDay = rules.Night
	st.Source = fixedSource(mana.Gold)

	mustReject(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 0},
		rules.ReasonManaColorUnusable)
}

func TestRerollSourceDieDeterministic(t *testing.T) {
	st := testState()
	st.Source = fixedSource(mana.Red, mana.Blue)

	a, _ := mustExec(t, st, RerollSourceDieCommand{PlayerID: "p1", DieIndex: 0})
	b, _ := mustExec(t, st, RerollSourceDieCommand{PlayerID: "p1", DieIndex: 0})

	// Same seed in, same die out, and the seed advances.
	assert.Equal(t, a.Source.Dice[0].Color, b.Source.Dice[0].Color)
	assert.NotEqual(t, st.RandSeed, a.RandSeed)
	assert.False(t, RerollSourceDieCommand{}.Reversible())
}

func TestRerollTakenDieRejected(t *testing.T) {
	st := testState()
	st.Source = fixedSource(mana.Red)
	st, _ = mustExec(t, st, TakeSourceDieCommand{PlayerID: "p1", DieIndex: 0})

	mustReject(t, st, RerollSourceDieCommand{PlayerID: "p1", DieIndex: 0},
		rules.ReasonTargetAlreadyResolved)
}
