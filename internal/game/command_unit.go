package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// upkeepCost is the influence a mercenary unit charges per combat before it
// will soak damage.
const upkeepCost = 2

// RecruitUnitCommand spends influence to add a unit to the player's
// command.
type RecruitUnitCommand struct {
	PlayerID  string `json:"playerId"`
	UnitDefID string `json:"unitDefId"`
}

func (c RecruitUnitCommand) Name() string     { return "RECRUIT_UNIT" }
func (c RecruitUnitCommand) Reversible() bool { return true }

func (c RecruitUnitCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	def, ok := content.Unit(c.UnitDefID)
	if !ok {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("unknown unit %q", c.UnitDefID))
	}
	p := st.Player(c.PlayerID)
	if p.Acc.AvailableInfluence() < def.Cost {
		return invalid(st.ID, c.PlayerID, rules.ReasonInsufficientInfluence,
			fmt.Sprintf("%s costs %d influence, have %d", def.Name, def.Cost, p.Acc.AvailableInfluence()))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	np.Acc.SpentInfluence += def.Cost
	id := fmt.Sprintf("unit-%d", next.NextUnitID)
	next.NextUnitID++
	np.Units = append(np.Units, UnitInstance{ID: id, DefID: def.ID})

	return next, []rules.Event{{
		Type: rules.EventUnitRecruited, GameID: next.ID, PlayerID: c.PlayerID,
		UnitID: id, Amount: def.Cost, Description: def.Name,
	}}, nil
}

// ActivateUnitCommand spends a ready unit for one of its abilities.
type ActivateUnitCommand struct {
	PlayerID     string `json:"playerId"`
	UnitID       string `json:"unitId"`
	AbilityIndex int    `json:"abilityIndex"`
}

func (c ActivateUnitCommand) Name() string     { return "ACTIVATE_UNIT" }
func (c ActivateUnitCommand) Reversible() bool { return true }

func (c ActivateUnitCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	p := st.Player(c.PlayerID)
	u := p.Unit(c.UnitID)
	if u == nil {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("no unit %q under command", c.UnitID))
	}
	if u.Spent {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetAlreadyResolved,
			"unit was already activated this turn")
	}
	if u.Wounded {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			"a wounded unit cannot be activated")
	}
	def, ok := content.Unit(u.DefID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unit %s references unknown definition %q", ErrInvariant, u.ID, u.DefID)
	}
	if c.AbilityIndex < 0 || c.AbilityIndex >= len(def.Abilities) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("ability index %d out of range for %s", c.AbilityIndex, def.Name))
	}
	eff := def.Abilities[c.AbilityIndex]
	if !isResolvable(st, c.PlayerID, eff) {
		return invalid(st.ID, c.PlayerID, rules.ReasonEffectNotResolvable,
			fmt.Sprintf("%s's ability would do nothing now", def.Name))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	np.Unit(c.UnitID).Spent = true

	src := modifier.Source{Kind: modifier.SourceUnit, Name: def.Name, OwnerPlayerID: c.PlayerID}
	res, err := resolveEffect(next, c.PlayerID, eff, src)
	if err != nil {
		return nil, nil, err
	}
	storePending(next, c.PlayerID, res, src)

	events := []rules.Event{{
		Type: rules.EventUnitActivated, GameID: next.ID, PlayerID: c.PlayerID,
		UnitID: c.UnitID, Description: def.Name,
	}}
	return next, append(events, res.Events...), nil
}

// PayUpkeepCommand records a mercenary unit's per-combat upkeep payment.
// Until it is paid, the unit refuses damage assignment.
type PayUpkeepCommand struct {
	PlayerID string `json:"playerId"`
	UnitID   string `json:"unitId"`
}

func (c PayUpkeepCommand) Name() string     { return "PAY_UPKEEP" }
func (c PayUpkeepCommand) Reversible() bool { return true }

func (c PayUpkeepCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase == PhaseEnded {
		return invalid(st.ID, c.PlayerID, rules.ReasonNotInCombat, "upkeep is paid during combat")
	}
	p := st.Player(c.PlayerID)
	u := p.Unit(c.UnitID)
	if u == nil {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("no unit %q under command", c.UnitID))
	}
	def, ok := content.Unit(u.DefID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unit %s references unknown definition %q", ErrInvariant, u.ID, u.DefID)
	}
	if !def.RequiresUpkeep {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("%s has no upkeep", def.Name))
	}
	if u.UpkeepPaid {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetAlreadyResolved,
			"upkeep is already paid for this combat")
	}
	if p.Acc.AvailableInfluence() < upkeepCost {
		return invalid(st.ID, c.PlayerID, rules.ReasonInsufficientInfluence,
			fmt.Sprintf("upkeep costs %d influence, have %d", upkeepCost, p.Acc.AvailableInfluence()))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	np.Acc.SpentInfluence += upkeepCost
	np.Unit(c.UnitID).UpkeepPaid = true

	return next, []rules.Event{{
		Type: rules.EventUpkeepPaid, GameID: next.ID, PlayerID: c.PlayerID,
		UnitID: c.UnitID, Amount: upkeepCost, Description: fmt.Sprintf("upkeep paid for %s", def.Name),
	}}, nil
}
