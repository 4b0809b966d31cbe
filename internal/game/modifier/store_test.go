package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terrainMod(player string, delta, min int) ActiveModifier {
	return ActiveModifier{
		Source:            Source{Kind: SourceCard, Name: "Pathfinding", OwnerPlayerID: player},
		Scope:             Scope{Kind: ScopeSelf},
		Duration:          DurationTurn,
		Effect:            Payload{Kind: KindTerrainCost, Delta: delta, Min: min},
		CreatedByPlayerID: player,
	}
}

func TestStoreAddAssignsFreshIDs(t *testing.T) {
	s := NewStore()

	s, m1, err := s.Add(terrainMod("p1", -1, 2))
	require.NoError(t, err)
	s, m2, err := s.Add(terrainMod("p1", -1, 2))
	require.NoError(t, err)

	assert.Equal(t, int64(1), m1.ID)
	assert.Equal(t, int64(2), m2.ID)
	assert.Len(t, s.Modifiers, 2)
	assert.Equal(t, int64(3), s.NextID)
}

func TestStoreAddRejectsScopeMismatch(t *testing.T) {
	s := NewStore()

	// Enemy payload with a player scope must be rejected.
	_, _, err := s.Add(ActiveModifier{
		Scope:             Scope{Kind: ScopeSelf},
		Duration:          DurationCombat,
		Effect:            Payload{Kind: KindEnemyArmor, Delta: -1, Min: 1},
		CreatedByPlayerID: "p1",
	})
	assert.Error(t, err)

	// One-enemy scope without an enemy id is equally broken.
	_, _, err = s.Add(ActiveModifier{
		Scope:             Scope{Kind: ScopeOneEnemy},
		Duration:          DurationCombat,
		Effect:            Payload{Kind: KindEnemyAttack, Delta: -2},
		CreatedByPlayerID: "p1",
	})
	assert.Error(t, err)
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	s := NewStore()
	s, m, err := s.Add(terrainMod("p1", -1, 2))
	require.NoError(t, err)

	s = s.Remove(m.ID)
	assert.Empty(t, s.Modifiers)

	// Second removal of the same id changes nothing.
	s = s.Remove(m.ID)
	assert.Empty(t, s.Modifiers)
	assert.Equal(t, int64(2), s.NextID)
}

func TestStoreValueSemantics(t *testing.T) {
	s := NewStore()
	s1, _, err := s.Add(terrainMod("p1", -1, 2))
	require.NoError(t, err)
	s2, _, err := s1.Add(terrainMod("p2", -2, 0))
	require.NoError(t, err)

	// Earlier states remain valid reads after later operations.
	assert.Empty(t, s.Modifiers)
	assert.Len(t, s1.Modifiers, 1)
	assert.Len(t, s2.Modifiers, 2)

	s3 := s2.Remove(1)
	assert.Len(t, s2.Modifiers, 2)
	assert.Len(t, s3.Modifiers, 1)
}

func TestExpirationIsolation(t *testing.T) {
	s := NewStore()

	s, turnMod, err := s.Add(terrainMod("playerA", -1, 2))
	require.NoError(t, err)

	combatMod := terrainMod("playerA", -1, 0)
	combatMod.Duration = DurationCombat
	s, cm, err := s.Add(combatMod)
	require.NoError(t, err)

	// Another player's turn ending touches nothing.
	s, removed := s.Expire(TurnEnd("playerB"))
	assert.Empty(t, removed)
	assert.Len(t, s.Modifiers, 2)

	// The owner's turn ending removes exactly the turn-duration modifier.
	s, removed = s.Expire(TurnEnd("playerA"))
	require.Len(t, removed, 1)
	assert.Equal(t, turnMod.ID, removed[0].ID)

	// The combat modifier survives turn end but not combat end.
	s, removed = s.Expire(CombatEnd())
	require.Len(t, removed, 1)
	assert.Equal(t, cm.ID, removed[0].ID)
	assert.Empty(t, s.Modifiers)
}

func TestExpirationUntilNextTurn(t *testing.T) {
	s := NewStore()

	m := terrainMod("playerA", 1, 0)
	m.Duration = DurationUntilNextTurn
	s, _, err := s.Add(m)
	require.NoError(t, err)

	s, removed := s.Expire(TurnStart("playerB"))
	assert.Empty(t, removed)

	s, removed = s.Expire(TurnStart("playerA"))
	assert.Len(t, removed, 1)
	assert.Empty(t, s.Modifiers)
}

func TestExpirationRoundEnd(t *testing.T) {
	s := NewStore()

	m := terrainMod("playerA", 1, 0)
	m.Duration = DurationRound
	s, _, err := s.Add(m)
	require.NoError(t, err)

	s, removed := s.Expire(TurnEnd("playerA"))
	assert.Empty(t, removed)

	s, removed = s.Expire(RoundEnd())
	assert.Len(t, removed, 1)
	assert.Empty(t, s.Modifiers)
}

func TestScopeResolution(t *testing.T) {
	s := NewStore()

	self := terrainMod("p1", -1, 0)
	s, _, err := s.Add(self)
	require.NoError(t, err)

	all := terrainMod("p1", -1, 0)
	all.Scope = Scope{Kind: ScopeAllPlayers}
	s, _, err = s.Add(all)
	require.NoError(t, err)

	others := terrainMod("p1", 1, 0)
	others.Scope = Scope{Kind: ScopeOtherPlayers}
	s, _, err = s.Add(others)
	require.NoError(t, err)

	assert.Len(t, s.ForPlayer("p1"), 2) // self + all
	assert.Len(t, s.ForPlayer("p2"), 2) // all + others

	oneEnemy := ActiveModifier{
		Scope:             Scope{Kind: ScopeOneEnemy, EnemyID: "e1"},
		Duration:          DurationCombat,
		Effect:            Payload{Kind: KindEnemyAttack, Delta: -2},
		CreatedByPlayerID: "p1",
	}
	s, _, err = s.Add(oneEnemy)
	require.NoError(t, err)

	allEnemies := ActiveModifier{
		Scope:             Scope{Kind: ScopeAllEnemies},
		Duration:          DurationCombat,
		Effect:            Payload{Kind: KindEnemyArmor, Delta: -1, Min: 1},
		CreatedByPlayerID: "p1",
	}
	s, _, err = s.Add(allEnemies)
	require.NoError(t, err)

	assert.Len(t, s.ForEnemy("e1"), 2)
	assert.Len(t, s.ForEnemy("e2"), 1)
}
