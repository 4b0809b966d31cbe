package game

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// EndTurnCommand closes the active player's turn: turn-scoped modifiers
// expire, mana tokens evaporate, accumulators reset, the hand refills, and
// taken Source dice return rerolled. When the last player in order ends
// their turn the round rolls over, flipping day and night and rerolling
// the whole Source. Ending the turn is a hard undo boundary.
type EndTurnCommand struct {
	PlayerID string `json:"playerId"`
}

func (c EndTurnCommand) Name() string     { return "END_TURN" }
func (c EndTurnCommand) Reversible() bool { return false }

func (c EndTurnCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat != nil && st.Combat.Phase != PhaseEnded {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "finish the combat first")
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)

	events := []rules.Event{{
		Type: rules.EventTurnEnded, GameID: next.ID, PlayerID: c.PlayerID,
	}}

	events = expireInto(next, modifier.TurnEnd(c.PlayerID), c.PlayerID, events)

	np.Pool = np.Pool.ClearTokens()
	np.Acc = Accumulator{}
	next.Combat = nil

	for id, use := range np.SkillUse {
		use.UsedThisTurn = false
		np.SkillUse[id] = use
	}
	for i := range np.Units {
		np.Units[i].Spent = false
	}

	drawn := 0
	for len(np.Hand) < HandLimit && len(np.Deck) > 0 {
		np.Hand = append(np.Hand, np.Deck[0])
		np.Deck = np.Deck[1:]
		drawn++
	}
	if drawn > 0 {
		events = append(events, rules.Event{
			Type: rules.EventCardsDrawn, GameID: next.ID, PlayerID: c.PlayerID, Amount: drawn,
		})
	}

	next.Source, next.RandSeed = next.Source.EndTurn(next.RandSeed)

	next.ActiveIdx = (next.ActiveIdx + 1) % len(next.TurnOrder)
	if next.ActiveIdx == 0 || allAnnouncedEndOfRound(next) {
		events = rollOverRound(next, c.PlayerID, events)
	}

	nextID := next.ActivePlayerID()
	events = expireInto(next, modifier.TurnStart(nextID), nextID, events)
	events = append(events, rules.Event{
		Type: rules.EventTurnStarted, GameID: next.ID, PlayerID: nextID,
	})
	return next, events, nil
}

// AnnounceEndOfRoundCommand flags the active player as done with the
// round. When every player has announced, the round ends at the next
// turn boundary instead of waiting for the table to wrap.
type AnnounceEndOfRoundCommand struct {
	PlayerID string `json:"playerId"`
}

func (c AnnounceEndOfRoundCommand) Name() string     { return "ANNOUNCE_END_OF_ROUND" }
func (c AnnounceEndOfRoundCommand) Reversible() bool { return false }

func (c AnnounceEndOfRoundCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Player(c.PlayerID).AnnouncedEndOfRound {
		return nil, []rules.Event{{
			Type: rules.EventNoOp, GameID: st.ID, PlayerID: c.PlayerID,
			Description: "end of round already announced",
		}}, nil
	}

	next := st.Clone()
	next.Player(c.PlayerID).AnnouncedEndOfRound = true
	return next, []rules.Event{{
		Type: rules.EventEndOfRoundAnnounced, GameID: next.ID, PlayerID: c.PlayerID,
	}}, nil
}

func allAnnouncedEndOfRound(st *GameState) bool {
	for _, p := range st.Players {
		if !p.AnnouncedEndOfRound {
			return false
		}
	}
	return true
}

// rollOverRound applies the round boundary on an owned clone.
func rollOverRound(next *GameState, playerID string, events []rules.Event) []rules.Event {
	next.Round++
	if next.TimeOfDay == rules.Day {
		next.TimeOfDay = rules.Night
	} else {
		next.TimeOfDay = rules.Day
	}

	events = append(events,
		rules.Event{Type: rules.EventRoundEnded, GameID: next.ID, PlayerID: playerID, Amount: next.Round},
		rules.Event{Type: rules.EventTimeOfDaySet, GameID: next.ID, Description: string(next.TimeOfDay)},
	)
	events = expireInto(next, modifier.RoundEnd(), playerID, events)

	for _, p := range next.Players {
		for id, use := range p.SkillUse {
			use.UsedThisRound = false
			p.SkillUse[id] = use
		}
		p.AnnouncedEndOfRound = false
	}

	next.Source, next.RandSeed = mana.Roll(len(next.Source.Dice), next.RandSeed)
	return events
}

// expireInto runs an expiration sweep and appends the per-modifier events.
func expireInto(next *GameState, t modifier.Trigger, playerID string, events []rules.Event) []rules.Event {
	store, expired := next.Modifiers.Expire(t)
	next.Modifiers = store
	for _, m := range expired {
		events = append(events, rules.Event{
			Type: rules.EventModifierExpired, GameID: next.ID, PlayerID: playerID,
			Amount: int(m.ID), Metadata: map[string]string{"source": m.Source.Name},
		})
	}
	return events
}
