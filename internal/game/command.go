package game

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// Command is a single player intent as an executable transform. Execute
// never mutates its input: it either returns a new state (success), or a
// nil state with INVALID_ACTION events (rule violation, state unchanged),
// or an error (invariant breach). A command is applied fully or not at all.
type Command interface {
	Name() string
	// Reversible reports whether the engine may undo this command by
	// restoring the pre-execution state. Irreversible commands form undo
	// checkpoints.
	Reversible() bool
	Execute(st *GameState) (*GameState, []rules.Event, error)
}

// invalid builds the standard rule-violation result: no state change, one
// structured event the orchestrator can re-prompt from.
func invalid(gameID, playerID string, reason rules.Reason, desc string) (*GameState, []rules.Event, error) {
	return nil, []rules.Event{{
		Type:        rules.EventInvalidAction,
		GameID:      gameID,
		PlayerID:    playerID,
		Reason:      reason,
		Description: desc,
	}}, nil
}

// pendingChoiceBlocks reports whether an unresolved choice or hex selection
// must be answered before other commands run.
func pendingChoiceBlocks(st *GameState, playerID string) bool {
	if st.Pending != nil && st.Pending.PlayerID == playerID {
		return true
	}
	if st.PendingHex != nil && st.PendingHex.PlayerID == playerID {
		return true
	}
	return false
}

// guardTurn runs the checks shared by every player command: the player
// exists, it is their turn, and no selection is pending. A non-nil event
// slice means the command must bail out with it.
func guardTurn(st *GameState, playerID string) []rules.Event {
	if st.Player(playerID) == nil {
		return []rules.Event{{
			Type: rules.EventInvalidAction, GameID: st.ID, PlayerID: playerID,
			Reason: rules.ReasonTargetIneligible, Description: "unknown player",
		}}
	}
	if st.ActivePlayerID() != playerID {
		return []rules.Event{{
			Type: rules.EventInvalidAction, GameID: st.ID, PlayerID: playerID,
			Reason: rules.ReasonNotYourTurn, Description: "not the active player",
		}}
	}
	if pendingChoiceBlocks(st, playerID) {
		return []rules.Event{{
			Type: rules.EventInvalidAction, GameID: st.ID, PlayerID: playerID,
			Reason: rules.ReasonChoicePending, Description: "a selection must be resolved first",
		}}
	}
	return nil
}

// storePending parks a paused resolution on the state so a later selection
// command can resume it.
func storePending(st *GameState, playerID string, res Resolution, src modifier.Source) {
	if res.RequiresChoice {
		st.Pending = &PendingChoice{
			PlayerID:  playerID,
			Options:   res.Options,
			Remaining: res.Remaining,
			Source:    src,
		}
	}
}
