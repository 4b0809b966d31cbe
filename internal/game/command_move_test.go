package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func TestMoveSpendsTerrainCost(t *testing.T) {
	st := testState()
	st.Players["p1"].Acc.Move = 5

	next, _ := mustExec(t, st, MoveCommand{
		PlayerID: "p1",
		To:       rules.Coord{Q: 1, R: 0},
		Terrain:  rules.TerrainForest,
	})

	assert.Equal(t, 2, next.Player("p1").Acc.AvailableMove())
	assert.Equal(t, rules.Coord{Q: 1, R: 0}, next.Player("p1").Position)
}

func TestMoveImpassableTerrain(t *testing.T) {
	st := testState()
	st.Players["p1"].Acc.Move = 10

	mustReject(t, st, MoveCommand{
		PlayerID: "p1",
		To:       rules.Coord{Q: 1, R: 0},
		Terrain:  rules.TerrainLake,
	}, rules.ReasonTerrainImpassable)
}

func TestMoveInsufficientPoints(t *testing.T) {
	st := testState()
	st.Players["p1"].Acc.Move = 2

	mustReject(t, st, MoveCommand{
		PlayerID: "p1",
		To:       rules.Coord{Q: 1, R: 0},
		Terrain:  rules.TerrainForest,
	}, rules.ReasonInsufficientMove)
}

func TestMoveBlockedDuringCombat(t *testing.T) {
	st := testState()
	st.Players["p1"].Acc.Move = 5
	st = inCombat(t, st, false, "prowlers")

	mustReject(t, st, MoveCommand{
		PlayerID: "p1",
		To:       rules.Coord{Q: 1, R: 0},
		Terrain:  rules.TerrainPlains,
	}, rules.ReasonWrongPhase)
}

// Pathfinding grants movement plus a hex cost reduction that only lands
// once the player names the hex; the created modifier must then apply to a
// later move onto that hex and nowhere else.
func TestPathfindingHexSelectionRoundTrip(t *testing.T) {
	st := testState()
	st.Players["p1"].Hand = []string{"pathfinding"}

	next, _ := mustExec(t, st, PlayCardCommand{PlayerID: "p1", CardID: "pathfinding"})
	assert.Equal(t, 2, next.Player("p1").Acc.AvailableMove())
	require.NotNil(t, next.PendingHex)
	assert.Equal(t, -1, next.PendingHex.Delta)
	assert.Equal(t, 2, next.PendingHex.Min)

	// The pending selection blocks other commands.
	mustReject(t, next, EndTurnCommand{PlayerID: "p1"}, rules.ReasonChoicePending)

	target := rules.Coord{Q: 2, R: -1}
	next, _ = mustExec(t, next, SelectHexCommand{PlayerID: "p1", Coord: target})
	assert.Nil(t, next.PendingHex)
	require.Len(t, next.Modifiers.Modifiers, 1)

	// Forest costs 3 by day; the reduction brings the named hex to 2.
	next, _ = mustExec(t, next, MoveCommand{PlayerID: "p1", To: target, Terrain: rules.TerrainForest})
	assert.Equal(t, 0, next.Player("p1").Acc.AvailableMove())

	// A different hex still costs full price.
	st2 := testState()
	st2.Players["p1"].Acc.Move = 2
	st2.Modifiers = next.Modifiers
	mustReject(t, st2, MoveCommand{
		PlayerID: "p1",
		To:       rules.Coord{Q: 5, R: 5},
		Terrain:  rules.TerrainForest,
	}, rules.ReasonInsufficientMove)
}

func TestSelectHexWithoutPending(t *testing.T) {
	st := testState()
	mustReject(t, st, SelectHexCommand{PlayerID: "p1", Coord: rules.Coord{Q: 1, R: 1}},
		rules.ReasonNoChoicePending)
}
