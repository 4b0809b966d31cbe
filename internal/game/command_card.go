package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// PlayCardCommand plays a card from hand for its basic effect, or for its
// strong effect by paying one mana of the card's color.
type PlayCardCommand struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
	Strong   bool   `json:"strong,omitempty"`
}

func (c PlayCardCommand) Name() string     { return "PLAY_CARD" }
func (c PlayCardCommand) Reversible() bool { return true }

func (c PlayCardCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	def, ok := content.Card(c.CardID)
	if !ok || !def.Playable() {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("card %q cannot be played for an effect", c.CardID))
	}
	p := st.Player(c.PlayerID)
	found := false
	for _, id := range p.Hand {
		if id == c.CardID {
			found = true
			break
		}
	}
	if !found {
		return invalid(st.ID, c.PlayerID, rules.ReasonCardNotInHand,
			fmt.Sprintf("card %q is not in hand", c.CardID))
	}
	if c.Strong && !p.Pool.CanPay(def.Color, st.TimeOfDay) {
		return invalid(st.ID, c.PlayerID, rules.ReasonInsufficientMana,
			fmt.Sprintf("no %s mana for the strong effect", def.Color))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	removeCard(&np.Hand, c.CardID)
	np.Discard = append(np.Discard, c.CardID)

	events := []rules.Event{{
		Type: rules.EventCardPlayed, GameID: next.ID, PlayerID: c.PlayerID,
		CardID: c.CardID, Description: def.Name,
	}}

	eff := def.Basic
	if c.Strong {
		pool, ok := np.Pool.Pay(def.Color, next.TimeOfDay)
		if !ok {
			return nil, nil, fmt.Errorf("%w: CanPay accepted a payment Pay rejected", ErrInvariant)
		}
		np.Pool = pool
		eff = def.Strong
		events = append(events, rules.Event{
			Type: rules.EventManaSpent, GameID: next.ID, PlayerID: c.PlayerID,
			Metadata: map[string]string{"color": string(def.Color)},
		})
	}

	src := modifier.Source{Kind: modifier.SourceCard, Name: def.Name, OwnerPlayerID: c.PlayerID}
	res, err := resolveEffect(next, c.PlayerID, eff, src)
	if err != nil {
		return nil, nil, err
	}
	storePending(next, c.PlayerID, res, src)
	return next, append(events, res.Events...), nil
}

// PlaySidewaysCommand plays any card face down for a generic point. The
// base value is 1, adjusted by sideways-value modifiers.
type PlaySidewaysCommand struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
	// As selects what the generic point becomes: move, influence, attack,
	// or block.
	As string `json:"as"`
}

const (
	SidewaysMove      = "MOVE"
	SidewaysInfluence = "INFLUENCE"
	SidewaysAttack    = "ATTACK"
	SidewaysBlock     = "BLOCK"
)

func (c PlaySidewaysCommand) Name() string     { return "PLAY_SIDEWAYS" }
func (c PlaySidewaysCommand) Reversible() bool { return true }

func (c PlaySidewaysCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	switch c.As {
	case SidewaysMove, SidewaysInfluence, SidewaysAttack, SidewaysBlock:
	default:
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("cannot play sideways as %q", c.As))
	}
	if c.CardID == content.WoundCardID {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			"wounds cannot be played sideways")
	}
	p := st.Player(c.PlayerID)
	found := false
	for _, id := range p.Hand {
		if id == c.CardID {
			found = true
			break
		}
	}
	if !found {
		return invalid(st.ID, c.PlayerID, rules.ReasonCardNotInHand,
			fmt.Sprintf("card %q is not in hand", c.CardID))
	}
	if (c.As == SidewaysAttack || c.As == SidewaysBlock) &&
		(st.Combat == nil || st.Combat.Phase == PhaseEnded) {
		return invalid(st.ID, c.PlayerID, rules.ReasonNotInCombat,
			"attack and block points need a combat")
	}

	value := modifier.EffectiveSidewaysValue(st.Modifiers, c.PlayerID, 1)

	next := st.Clone()
	np := next.Player(c.PlayerID)
	removeCard(&np.Hand, c.CardID)
	np.Discard = append(np.Discard, c.CardID)

	switch c.As {
	case SidewaysMove:
		np.Acc.Move += value
	case SidewaysInfluence:
		np.Acc.Influence += value
	case SidewaysAttack:
		np.Acc.Attack = np.Acc.Attack.Add(rules.AttackNormal, rules.ElementPhysical, value)
	case SidewaysBlock:
		if np.Acc.Block == nil {
			np.Acc.Block = make(map[rules.Element]int)
		}
		np.Acc.Block[rules.ElementPhysical] += value
	}

	return next, []rules.Event{{
		Type: rules.EventSidewaysPlayed, GameID: next.ID, PlayerID: c.PlayerID,
		CardID: c.CardID, Amount: value,
		Metadata: map[string]string{"as": c.As},
	}}, nil
}
