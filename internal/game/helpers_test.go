package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func testState() *GameState {
	st := &GameState{
		ID:        "g1",
		Round:     1,
		TimeOfDay: rules.Day,
		TurnOrder: []string{"p1", "p2"},
		Players: map[string]*Player{
			"p1": {ID: "p1", Name: "Arythea", Armor: HeroArmor, Pool: mana.NewPool(), SkillUse: map[string]SkillState{}},
			"p2": {ID: "p2", Name: "Tovak", Armor: HeroArmor, Pool: mana.NewPool(), SkillUse: map[string]SkillState{}},
		},
		Modifiers:   modifier.NewStore(),
		RandSeed:    99,
		NextEnemyID: 1,
		NextUnitID:  1,
	}
	st.Source, _ = mana.Roll(4, 7)
	return st
}

// mustExec runs a command expecting success and returns the next state.
func mustExec(t *testing.T, st *GameState, cmd Command) (*GameState, []rules.Event) {
	t.Helper()
	next, events, err := cmd.Execute(st)
	require.NoError(t, err)
	require.NotNil(t, next, "command %s was rejected: %v", cmd.Name(), events)
	return next, events
}

// mustReject runs a command expecting a rule violation with the given
// reason and asserts the state is left untouched.
func mustReject(t *testing.T, st *GameState, cmd Command, reason rules.Reason) []rules.Event {
	t.Helper()
	next, events, err := cmd.Execute(st)
	require.NoError(t, err)
	require.Nil(t, next, "command %s unexpectedly succeeded", cmd.Name())
	require.NotEmpty(t, events)
	for _, ev := range events {
		if ev.Type == rules.EventInvalidAction {
			require.Equal(t, reason, ev.Reason)
			return events
		}
	}
	t.Fatalf("no INVALID_ACTION event among %v", events)
	return nil
}

// inCombat puts the state into a fresh combat against the given enemies.
func inCombat(t *testing.T, st *GameState, fortifiedSite bool, defIDs ...string) *GameState {
	t.Helper()
	specs := make([]CombatEnemySpec, len(defIDs))
	for i, id := range defIDs {
		specs[i] = CombatEnemySpec{DefID: id}
	}
	next, _ := mustExec(t, st, StartCombatCommand{
		PlayerID:        "p1",
		Enemies:         specs,
		AtFortifiedSite: fortifiedSite,
	})
	return next
}

// advanceTo steps the combat forward until it reaches the wanted phase.
func advanceTo(t *testing.T, st *GameState, phase CombatPhase) *GameState {
	t.Helper()
	for st.Combat != nil && st.Combat.Phase != phase {
		st, _ = mustExec(t, st, AdvancePhaseCommand{PlayerID: "p1"})
	}
	require.NotNil(t, st.Combat)
	require.Equal(t, phase, st.Combat.Phase)
	return st
}
