package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/effect"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

const woundCardID = content.WoundCardID

// Resolution is the outcome of resolving an effect tree. When
// RequiresChoice is set, resolution has halted: Options holds the filtered
// legal options and Remaining the not-yet-run tail, to be resumed once the
// player selects.
type Resolution struct {
	Description    string
	RequiresChoice bool
	Options        []effect.Effect
	Remaining      []effect.Effect
	Events         []rules.Event
	NoOp           bool
}

// conditionHolds evaluates a conditional effect's predicate.
func conditionHolds(st *GameState, playerID string, c effect.Condition) bool {
	switch c {
	case effect.CondInCombat:
		return st.Combat != nil && st.Combat.Phase != PhaseEnded
	case effect.CondIsDay:
		return st.TimeOfDay == rules.Day
	case effect.CondIsNight:
		return st.TimeOfDay == rules.Night
	case effect.CondHasWounds:
		p := st.Player(playerID)
		return p != nil && p.WoundsInHand() > 0
	}
	return false
}

// isResolvable reports whether resolving the effect now would do anything.
// It is side-effect-free and must agree with resolveEffect: an effect that
// reports resolvable never fails to resolve.
func isResolvable(st *GameState, playerID string, eff effect.Effect) bool {
	p := st.Player(playerID)
	if p == nil {
		return false
	}
	switch eff.Kind {
	case effect.KindMove, effect.KindInfluence, effect.KindGainManaToken, effect.KindAddModifier:
		return true
	case effect.KindAttack, effect.KindBlock:
		return st.Combat != nil && st.Combat.Phase != PhaseEnded
	case effect.KindHeal:
		return p.WoundsInHand() > 0
	case effect.KindDraw:
		return len(p.Deck) > 0
	case effect.KindGainCrystal:
		return p.Pool.Crystals[mana.Color(eff.Color)] < mana.CrystalCap
	case effect.KindCureUnit:
		for _, u := range p.Units {
			if u.Wounded {
				return true
			}
		}
		return false
	case effect.KindDisease:
		if st.Combat == nil {
			return false
		}
		for _, e := range st.Combat.Enemies {
			if !e.Defeated && e.IsBlocked() {
				return true
			}
		}
		return false
	case effect.KindTerrainReduction:
		return st.PendingHex == nil
	case effect.KindCompound:
		for _, c := range eff.Children {
			if isResolvable(st, playerID, c) {
				return true
			}
		}
		return false
	case effect.KindChoice:
		for _, c := range eff.Children {
			if isResolvable(st, playerID, c) {
				return true
			}
		}
		return false
	case effect.KindConditional:
		branch := eff.Children
		if !conditionHolds(st, playerID, eff.Condition) {
			branch = eff.Else
		}
		for _, c := range branch {
			if isResolvable(st, playerID, c) {
				return true
			}
		}
		return false
	}
	return false
}

// resolvableOptions filters a choice's options down to the currently legal
// ones.
func resolvableOptions(st *GameState, playerID string, options []effect.Effect) []effect.Effect {
	var out []effect.Effect
	for _, o := range options {
		if isResolvable(st, playerID, o) {
			out = append(out, o)
		}
	}
	return out
}

// resolveEffect applies the effect tree to st in place. st must be a clone
// owned by the executing command. The returned resolution's Remaining tail
// is non-empty only when a choice halted resolution.
func resolveEffect(st *GameState, playerID string, eff effect.Effect, src modifier.Source) (Resolution, error) {
	p := st.Player(playerID)
	if p == nil {
		return Resolution{}, fmt.Errorf("%w: unknown player %q", ErrInvariant, playerID)
	}

	switch eff.Kind {
	case effect.KindMove:
		p.Acc.Move += eff.Amount
		return Resolution{
			Description: eff.Describe(),
			Events:      []rules.Event{{Type: rules.EventMoveGained, PlayerID: playerID, Amount: eff.Amount}},
		}, nil

	case effect.KindInfluence:
		p.Acc.Influence += eff.Amount
		return Resolution{
			Description: eff.Describe(),
			Events:      []rules.Event{{Type: rules.EventInfluenceGained, PlayerID: playerID, Amount: eff.Amount}},
		}, nil

	case effect.KindAttack:
		if st.Combat == nil || st.Combat.Phase == PhaseEnded {
			return noOp(eff, "no combat to attack in"), nil
		}
		p.Acc.Attack = p.Acc.Attack.Add(eff.AttackType, eff.Element, eff.Amount)
		return Resolution{
			Description: eff.Describe(),
			Events:      []rules.Event{{Type: rules.EventAttackGained, PlayerID: playerID, Element: eff.Element, Amount: eff.Amount}},
		}, nil

	case effect.KindBlock:
		if st.Combat == nil || st.Combat.Phase == PhaseEnded {
			return noOp(eff, "no combat to block in"), nil
		}
		if p.Acc.Block == nil {
			p.Acc.Block = make(map[rules.Element]int)
		}
		p.Acc.Block[eff.Element] += eff.Amount
		return Resolution{
			Description: eff.Describe(),
			Events:      []rules.Event{{Type: rules.EventBlockGained, PlayerID: playerID, Element: eff.Element, Amount: eff.Amount}},
		}, nil

	case effect.KindHeal:
		healed := 0
		for i := 0; i < eff.Amount; i++ {
			if !removeCard(&p.Hand, woundCardID) {
				break
			}
			healed++
		}
		if healed == 0 {
			return noOp(eff, "no wounds to heal"), nil
		}
		return Resolution{
			Description: fmt.Sprintf("Healed %d wound(s)", healed),
			Events:      []rules.Event{{Type: rules.EventWoundsHealed, PlayerID: playerID, Amount: healed}},
		}, nil

	case effect.KindDraw:
		drawn := 0
		for i := 0; i < eff.Amount && len(p.Deck) > 0; i++ {
			p.Hand = append(p.Hand, p.Deck[0])
			p.Deck = p.Deck[1:]
			drawn++
		}
		if drawn == 0 {
			return noOp(eff, "deck is empty"), nil
		}
		return Resolution{
			Description: fmt.Sprintf("Drew %d card(s)", drawn),
			Events:      []rules.Event{{Type: rules.EventCardsDrawn, PlayerID: playerID, Amount: drawn}},
		}, nil

	case effect.KindGainCrystal:
		pool, ok := p.Pool.AddCrystal(mana.Color(eff.Color))
		if !ok {
			return noOp(eff, "crystal inventory full"), nil
		}
		p.Pool = pool
		return Resolution{
			Description: eff.Describe(),
			Events:      []rules.Event{{Type: rules.EventCrystalGained, PlayerID: playerID, Metadata: map[string]string{"color": eff.Color}}},
		}, nil

	case effect.KindGainManaToken:
		p.Pool = p.Pool.AddToken(mana.Color(eff.Color))
		return Resolution{
			Description: eff.Describe(),
			Events:      []rules.Event{{Type: rules.EventManaTokenGained, PlayerID: playerID, Metadata: map[string]string{"color": eff.Color}}},
		}, nil

	case effect.KindCureUnit:
		for i := range p.Units {
			if p.Units[i].Wounded {
				p.Units[i].Wounded = false
				return Resolution{
					Description: "Healed a wounded unit",
					Events:      []rules.Event{{Type: rules.EventWoundsHealed, PlayerID: playerID, UnitID: p.Units[i].ID, Amount: 1}},
				}, nil
			}
		}
		return noOp(eff, "no wounded units"), nil

	case effect.KindDisease:
		return resolveDisease(st, playerID)

	case effect.KindTerrainReduction:
		if st.PendingHex != nil {
			return noOp(eff, "a hex selection is already pending"), nil
		}
		st.PendingHex = &PendingHex{PlayerID: playerID, Delta: eff.Amount, Min: eff.Min, Source: src}
		return Resolution{
			Description: eff.Describe(),
			Events:      []rules.Event{{Type: rules.EventChoiceRequired, PlayerID: playerID, Description: "select a hex"}},
		}, nil

	case effect.KindAddModifier:
		if eff.Modifier == nil {
			return Resolution{}, fmt.Errorf("%w: add-modifier effect without template", ErrInvariant)
		}
		m := *eff.Modifier
		m.CreatedByPlayerID = playerID
		m.CreatedAtRound = st.Round
		if m.Source.OwnerPlayerID == "" {
			m.Source.OwnerPlayerID = playerID
		}
		store, added, err := st.Modifiers.Add(m)
		if err != nil {
			return Resolution{}, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		st.Modifiers = store
		return Resolution{
			Description: eff.Describe(),
			Events: []rules.Event{{
				Type: rules.EventModifierAdded, PlayerID: playerID,
				Amount:   int(added.ID),
				Metadata: map[string]string{"kind": string(added.Effect.Kind), "source": added.Source.Name},
			}},
		}, nil

	case effect.KindCompound:
		return resolveSequence(st, playerID, eff.Children, src)

	case effect.KindChoice:
		return resolveChoice(st, playerID, eff, nil, src)

	case effect.KindConditional:
		branch := eff.Children
		if !conditionHolds(st, playerID, eff.Condition) {
			branch = eff.Else
		}
		return resolveSequence(st, playerID, branch, src)
	}

	return Resolution{}, fmt.Errorf("%w: unknown effect kind %q", ErrInvariant, eff.Kind)
}

func noOp(eff effect.Effect, why string) Resolution {
	return Resolution{
		Description: fmt.Sprintf("%s: %s", eff.Describe(), why),
		NoOp:        true,
		Events:      []rules.Event{{Type: rules.EventNoOp, Description: why}},
	}
}

// resolveDisease weakens every fully blocked, undefeated enemy for the rest
// of the combat.
func resolveDisease(st *GameState, playerID string) (Resolution, error) {
	if st.Combat == nil {
		return noOp(effect.Disease(), "no combat"), nil
	}
	var events []rules.Event
	hit := 0
	for _, e := range st.Combat.Enemies {
		if e.Defeated || !e.IsBlocked() {
			continue
		}
		store, added, err := st.Modifiers.Add(modifier.ActiveModifier{
			Source:            modifier.Source{Kind: modifier.SourceCard, Name: "Disease", OwnerPlayerID: playerID},
			Scope:             modifier.Scope{Kind: modifier.ScopeOneEnemy, EnemyID: e.ID},
			Duration:          modifier.DurationCombat,
			Effect:            modifier.Payload{Kind: modifier.KindEnemyArmor, Delta: -2, Min: 1},
			CreatedByPlayerID: playerID,
			CreatedAtRound:    st.Round,
		})
		if err != nil {
			return Resolution{}, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		st.Modifiers = store
		events = append(events, rules.Event{
			Type: rules.EventModifierAdded, PlayerID: playerID, EnemyID: e.ID,
			Amount: int(added.ID), Metadata: map[string]string{"kind": string(modifier.KindEnemyArmor), "source": "Disease"},
		})
		hit++
	}
	if hit == 0 {
		return noOp(effect.Disease(), "no fully blocked enemies"), nil
	}
	return Resolution{
		Description: fmt.Sprintf("Disease weakened %d enem(ies)", hit),
		Events:      events,
	}, nil
}

func mergeInto(out *Resolution, res Resolution) {
	out.Events = append(out.Events, res.Events...)
	if out.Description == "" {
		out.Description = res.Description
	} else if res.Description != "" {
		out.Description += "; " + res.Description
	}
}

// resolveSequence resolves effects strictly in order, halting when a choice
// requires player input and carrying the unresolved tail in Remaining.
func resolveSequence(st *GameState, playerID string, effs []effect.Effect, src modifier.Source) (Resolution, error) {
	var out Resolution
	for i, eff := range effs {
		if eff.Kind == effect.KindChoice {
			// The choice consumes or carries the rest of the sequence, so
			// the loop ends here either way.
			res, err := resolveChoice(st, playerID, eff, effs[i+1:], src)
			if err != nil {
				return Resolution{}, err
			}
			mergeInto(&out, res)
			out.RequiresChoice = res.RequiresChoice
			out.Options = res.Options
			out.Remaining = res.Remaining
			return out, nil
		}

		res, err := resolveEffect(st, playerID, eff, src)
		if err != nil {
			return Resolution{}, err
		}
		mergeInto(&out, res)
		if res.RequiresChoice {
			// A nested compound paused; its tail plus our unresolved
			// siblings form the resume point.
			out.RequiresChoice = true
			out.Options = res.Options
			out.Remaining = append(tailCopy(res.Remaining), effs[i+1:]...)
			return out, nil
		}
	}
	return out, nil
}

// resolveChoice applies the choice law: more than one resolvable option
// halts for input, exactly one auto-picks, zero skips. tail is the
// enclosing sequence's remainder, carried into the pause so resolution can
// resume after the selection. The behavior is identical wherever the
// choice came from.
func resolveChoice(st *GameState, playerID string, choice effect.Effect, tail []effect.Effect, src modifier.Source) (Resolution, error) {
	options := resolvableOptions(st, playerID, choice.Children)
	switch len(options) {
	case 0:
		// The choice is skipped, but the enclosing sequence's tail still
		// runs.
		out := noOp(choice, "no resolvable options")
		if len(tail) == 0 {
			return out, nil
		}
		res, err := resolveSequence(st, playerID, tailCopy(tail), src)
		if err != nil {
			return Resolution{}, err
		}
		mergeInto(&out, res)
		out.RequiresChoice = res.RequiresChoice
		out.Options = res.Options
		out.Remaining = res.Remaining
		out.NoOp = false
		return out, nil
	case 1:
		return resolveSequence(st, playerID, append([]effect.Effect{options[0]}, tailCopy(tail)...), src)
	default:
		return Resolution{
			Description:    choice.Describe(),
			RequiresChoice: true,
			Options:        options,
			Remaining:      tailCopy(tail),
			Events:         []rules.Event{{Type: rules.EventChoiceRequired, PlayerID: playerID, Description: choice.Describe()}},
		}, nil
	}
}

func tailCopy(tail []effect.Effect) []effect.Effect {
	return append([]effect.Effect(nil), tail...)
}

// ReverseAdditive undoes a purely additive atomic gain by subtraction.
// Only Move, Influence, Attack, and Block qualify; anything else relies on
// the command layer's captured-before-state undo. Callers that track the
// effects they resolved can take a single gain back without replaying a
// snapshot.
func ReverseAdditive(p *Player, eff effect.Effect) error {
	if !eff.Additive() {
		return fmt.Errorf("%w: effect %s is not additive-reversible", ErrInvariant, eff.Kind)
	}
	switch eff.Kind {
	case effect.KindMove:
		p.Acc.Move -= eff.Amount
	case effect.KindInfluence:
		p.Acc.Influence -= eff.Amount
	case effect.KindAttack:
		p.Acc.Attack = p.Acc.Attack.Add(eff.AttackType, eff.Element, -eff.Amount)
	case effect.KindBlock:
		if p.Acc.Block == nil {
			p.Acc.Block = make(map[rules.Element]int)
		}
		p.Acc.Block[eff.Element] -= eff.Amount
	}
	return nil
}

// removeCard removes the first occurrence of id from the slice.
func removeCard(cards *[]string, id string) bool {
	for i, c := range *cards {
		if c == id {
			*cards = append((*cards)[:i], (*cards)[i+1:]...)
			return true
		}
	}
	return false
}
