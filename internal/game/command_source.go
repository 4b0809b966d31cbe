package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// TakeSourceDieCommand takes a die from the shared Source, gaining a mana
// token of its color. The per-turn allowance is one die plus whatever
// modifiers grant on top.
type TakeSourceDieCommand struct {
	PlayerID string `json:"playerId"`
	DieIndex int    `json:"dieIndex"`
}

func (c TakeSourceDieCommand) Name() string     { return "TAKE_SOURCE_DIE" }
func (c TakeSourceDieCommand) Reversible() bool { return true }

func (c TakeSourceDieCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	allowance := modifier.SourceDiceAllowance(st.Modifiers, c.PlayerID, 1)
	if st.Source.UsedThisTurn >= allowance {
		return invalid(st.ID, c.PlayerID, rules.ReasonSourceExhausted,
			fmt.Sprintf("already took %d of %d dice this turn", st.Source.UsedThisTurn, allowance))
	}
	if !st.Source.Usable(c.DieIndex, st.TimeOfDay) {
		return invalid(st.ID, c.PlayerID, rules.ReasonManaColorUnusable,
			fmt.Sprintf("die %d cannot be taken now", c.DieIndex))
	}

	next := st.Clone()
	src, color, ok := next.Source.Take(c.DieIndex)
	if !ok {
		return nil, nil, fmt.Errorf("%w: Usable accepted a die Take rejected", ErrInvariant)
	}
	next.Source = src
	np := next.Player(c.PlayerID)
	np.Pool = np.Pool.AddToken(color)

	return next, []rules.Event{
		{
			Type: rules.EventSourceDieTaken, GameID: next.ID, PlayerID: c.PlayerID,
			Amount: c.DieIndex, Metadata: map[string]string{"color": string(color)},
		},
		{
			Type: rules.EventManaTokenGained, GameID: next.ID, PlayerID: c.PlayerID,
			Metadata: map[string]string{"color": string(color)},
		},
	}, nil
}

// RerollSourceDieCommand rerolls one Source die. The reroll consumes
// randomness, so the command is a hard undo boundary.
type RerollSourceDieCommand struct {
	PlayerID string `json:"playerId"`
	DieIndex int    `json:"dieIndex"`
}

func (c RerollSourceDieCommand) Name() string     { return "REROLL_SOURCE_DIE" }
func (c RerollSourceDieCommand) Reversible() bool { return false }

func (c RerollSourceDieCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if c.DieIndex < 0 || c.DieIndex >= len(st.Source.Dice) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("die index %d out of range", c.DieIndex))
	}
	if st.Source.Dice[c.DieIndex].Taken {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetAlreadyResolved,
			fmt.Sprintf("die %d was already taken this turn", c.DieIndex))
	}

	next := st.Clone()
	src, seed, ok := next.Source.Reroll(c.DieIndex, next.RandSeed)
	if !ok {
		return nil, nil, fmt.Errorf("%w: reroll rejected a validated die index", ErrInvariant)
	}
	next.Source = src
	next.RandSeed = seed

	return next, []rules.Event{{
		Type: rules.EventSourceDieReroll, GameID: next.ID, PlayerID: c.PlayerID,
		Amount:   c.DieIndex,
		Metadata: map[string]string{"color": string(src.Dice[c.DieIndex].Color)},
	}}, nil
}
