package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// MoveCommand moves the hero to an adjacent hex, spending movement points
// equal to the destination's effective terrain cost.
type MoveCommand struct {
	PlayerID string        `json:"playerId"`
	To       rules.Coord   `json:"to"`
	Terrain  rules.Terrain `json:"terrain"`
}

func (c MoveCommand) Name() string     { return "MOVE" }
func (c MoveCommand) Reversible() bool { return true }

func (c MoveCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat != nil && st.Combat.Phase != PhaseEnded {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "cannot move during combat")
	}

	cost := modifier.EffectiveTerrainCost(st.Modifiers, modifier.TerrainContext{
		PlayerID:  c.PlayerID,
		Terrain:   c.Terrain,
		Coord:     c.To,
		TimeOfDay: st.TimeOfDay,
	})
	if cost == rules.Impassable {
		return invalid(st.ID, c.PlayerID, rules.ReasonTerrainImpassable,
			fmt.Sprintf("%s is impassable", c.Terrain))
	}
	p := st.Player(c.PlayerID)
	if p.Acc.AvailableMove() < cost {
		return invalid(st.ID, c.PlayerID, rules.ReasonInsufficientMove,
			fmt.Sprintf("move onto %s costs %d, have %d", c.Terrain, cost, p.Acc.AvailableMove()))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	np.Acc.SpentMove += cost
	np.Position = c.To

	return next, []rules.Event{{
		Type: rules.EventHeroMoved, GameID: next.ID, PlayerID: c.PlayerID,
		Amount: cost,
		Metadata: map[string]string{
			"q": fmt.Sprint(c.To.Q), "r": fmt.Sprint(c.To.R), "terrain": string(c.Terrain),
		},
	}}, nil
}
