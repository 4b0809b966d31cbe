package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/effect"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// SelectChoiceCommand answers a pending effect choice by option index.
// Resolution resumes with the chosen option followed by the stored tail.
type SelectChoiceCommand struct {
	PlayerID string `json:"playerId"`
	Index    int    `json:"index"`
}

func (c SelectChoiceCommand) Name() string     { return "SELECT_CHOICE" }
func (c SelectChoiceCommand) Reversible() bool { return true }

func (c SelectChoiceCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if st.Pending == nil || st.Pending.PlayerID != c.PlayerID {
		return invalid(st.ID, c.PlayerID, rules.ReasonNoChoicePending, "no choice awaits this player")
	}
	if c.Index < 0 || c.Index >= len(st.Pending.Options) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("option index %d out of range", c.Index))
	}

	next := st.Clone()
	pending := next.Pending
	next.Pending = nil

	picked := pending.Options[c.Index]
	seq := append([]effect.Effect{picked}, pending.Remaining...)
	res, err := resolveSequence(next, c.PlayerID, seq, pending.Source)
	if err != nil {
		return nil, nil, err
	}
	storePending(next, c.PlayerID, res, pending.Source)

	events := []rules.Event{{
		Type: rules.EventChoiceResolved, GameID: next.ID, PlayerID: c.PlayerID,
		Description: picked.Describe(),
	}}
	return next, append(events, res.Events...), nil
}

// SelectHexCommand answers a pending hex selection by creating the
// hex-scoped terrain cost modifier the paused effect promised. The
// modifier lasts for the rest of the turn, so moving onto the hex later in
// the turn still benefits.
type SelectHexCommand struct {
	PlayerID string      `json:"playerId"`
	Coord    rules.Coord `json:"coord"`
}

func (c SelectHexCommand) Name() string     { return "SELECT_HEX" }
func (c SelectHexCommand) Reversible() bool { return true }

func (c SelectHexCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if st.PendingHex == nil || st.PendingHex.PlayerID != c.PlayerID {
		return invalid(st.ID, c.PlayerID, rules.ReasonNoChoicePending, "no hex selection awaits this player")
	}

	next := st.Clone()
	ph := next.PendingHex
	next.PendingHex = nil

	coord := c.Coord
	store, added, err := next.Modifiers.Add(modifier.ActiveModifier{
		Source:   ph.Source,
		Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
		Duration: modifier.DurationTurn,
		Effect: modifier.Payload{
			Kind:  modifier.KindTerrainCost,
			Coord: &coord,
			Delta: ph.Delta,
			Min:   ph.Min,
		},
		CreatedByPlayerID: c.PlayerID,
		CreatedAtRound:    next.Round,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	next.Modifiers = store

	return next, []rules.Event{
		{
			Type: rules.EventHexSelected, GameID: next.ID, PlayerID: c.PlayerID,
			Metadata: map[string]string{"q": fmt.Sprint(coord.Q), "r": fmt.Sprint(coord.R)},
		},
		{
			Type: rules.EventModifierAdded, GameID: next.ID, PlayerID: c.PlayerID,
			Amount:   int(added.ID),
			Metadata: map[string]string{"kind": string(added.Effect.Kind), "source": added.Source.Name},
		},
	}, nil
}
