package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// CombatEnemySpec names one enemy to face when a combat starts.
type CombatEnemySpec struct {
	DefID string `json:"defId"`
	// SiteFortifications is extra fortification beyond the flat
	// fortified-site bonus, e.g. a city's level.
	SiteFortifications int  `json:"siteFortifications,omitempty"`
	Rampaging          bool `json:"rampaging,omitempty"`
	Summoned           bool `json:"summoned,omitempty"`
}

// StartCombatCommand opens a combat against a group of enemies. Entering
// combat is a hard undo boundary: face-down enemy tokens are revealed by
// it.
type StartCombatCommand struct {
	PlayerID        string            `json:"playerId"`
	Enemies         []CombatEnemySpec `json:"enemies"`
	AtFortifiedSite bool              `json:"atFortifiedSite,omitempty"`
}

func (c StartCombatCommand) Name() string     { return "START_COMBAT" }
func (c StartCombatCommand) Reversible() bool { return false }

func (c StartCombatCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat != nil && st.Combat.Phase != PhaseEnded {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "a combat is already underway")
	}
	if len(c.Enemies) == 0 {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible, "no enemies to fight")
	}
	for _, spec := range c.Enemies {
		if _, ok := content.Enemy(spec.DefID); !ok {
			return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
				fmt.Sprintf("unknown enemy %q", spec.DefID))
		}
	}

	next := st.Clone()
	combat := &CombatState{
		PlayerID:        c.PlayerID,
		Phase:           PhaseRangedSiege,
		AtFortifiedSite: c.AtFortifiedSite,
	}
	events := []rules.Event{{
		Type: rules.EventCombatStarted, GameID: next.ID, PlayerID: c.PlayerID,
		Amount: len(c.Enemies),
	}}
	for _, spec := range c.Enemies {
		def, _ := content.Enemy(spec.DefID)
		id := fmt.Sprintf("enemy-%d", next.NextEnemyID)
		next.NextEnemyID++
		combat.Enemies = append(combat.Enemies, &CombatEnemy{
			ID:                    id,
			DefID:                 spec.DefID,
			SiteFortifications:    spec.SiteFortifications,
			Rampaging:             spec.Rampaging,
			Summoned:              spec.Summoned,
			AttacksBlocked:        make([]bool, len(def.Attacks)),
			AttacksDamageAssigned: make([]bool, len(def.Attacks)),
			CumbersomeReductions:  make([]int, len(def.Attacks)),
		})
		events = append(events, rules.Event{
			Type: rules.EventCombatPhase, GameID: next.ID, PlayerID: c.PlayerID,
			EnemyID: id, Description: def.Name,
			Metadata: map[string]string{"revealed": spec.DefID},
		})
	}
	next.Combat = combat
	return next, events, nil
}

// AdvancePhaseCommand moves the combat to its next phase. Leaving the
// assign-damage phase requires every live unblocked attack to have had its
// damage assigned; once every enemy is defeated any advance ends the
// combat immediately.
type AdvancePhaseCommand struct {
	PlayerID string `json:"playerId"`
}

func (c AdvancePhaseCommand) Name() string     { return "ADVANCE_PHASE" }
func (c AdvancePhaseCommand) Reversible() bool { return true }

func (c AdvancePhaseCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase == PhaseEnded {
		return invalid(st.ID, c.PlayerID, rules.ReasonNotInCombat, "no combat to advance")
	}
	if st.Combat.Phase == PhaseAssignDamage && !st.Combat.allDefeated() && !damageFullyAssigned(st) {
		return invalid(st.ID, c.PlayerID, rules.ReasonDamageUnassigned,
			"unblocked attacks still need their damage assigned")
	}

	next := st.Clone()
	if next.Combat.allDefeated() {
		return endCombat(next, c.PlayerID)
	}

	next.Combat.Phase = nextPhase(next.Combat.Phase)
	events := []rules.Event{{
		Type: rules.EventCombatPhase, GameID: next.ID, PlayerID: c.PlayerID,
		Description: string(next.Combat.Phase),
	}}

	switch next.Combat.Phase {
	case PhaseAssignDamage:
		// Attacks already blocked or reduced to nothing have no damage to
		// assign; mark them so the exit guard only watches live attacks.
		next.Combat.PendingDamage = make(map[string]int)
		for _, e := range next.Combat.Enemies {
			if e.Defeated {
				continue
			}
			total := 0
			for i := range e.AttacksBlocked {
				if e.AttacksBlocked[i] || reducedAttack(next, e, i) == 0 {
					e.AttacksDamageAssigned[i] = true
					continue
				}
				total += damageOf(next, e, i)
			}
			if total > 0 {
				next.Combat.PendingDamage[e.ID] = total
			}
		}
	case PhaseEnded:
		return endCombat(next, c.PlayerID)
	}
	return next, events, nil
}

// endCombat closes out the combat on an owned clone: combat-scoped
// modifiers expire and per-combat unit bookkeeping resets.
func endCombat(next *GameState, playerID string) (*GameState, []rules.Event, error) {
	next.Combat.Phase = PhaseEnded
	events := []rules.Event{{
		Type: rules.EventCombatEnded, GameID: next.ID, PlayerID: playerID,
	}}

	events = expireInto(next, modifier.CombatEnd(), playerID, events)

	for _, p := range next.Players {
		for i := range p.Units {
			p.Units[i].UsedResistance = false
			p.Units[i].UpkeepPaid = false
		}
	}
	next.Combat.PendingBlock = nil
	next.Combat.PendingSwiftBlock = nil
	next.Combat.PendingDamage = nil
	next.Combat.DeclaredBlockTarget = nil
	next.Combat.DeclaredAttackTargets = nil
	return next, events, nil
}

// ReduceEnemyAttackCommand converts movement points into a reduction of
// one enemy attack during the block phase. Only Cumbersome enemies allow
// it; a reduction that zeroes the attack counts as a block.
type ReduceEnemyAttackCommand struct {
	PlayerID    string `json:"playerId"`
	EnemyID     string `json:"enemyId"`
	AttackIndex int    `json:"attackIndex"`
	Amount      int    `json:"amount"`
}

func (c ReduceEnemyAttackCommand) Name() string     { return "REDUCE_ENEMY_ATTACK" }
func (c ReduceEnemyAttackCommand) Reversible() bool { return true }

func (c ReduceEnemyAttackCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase != PhaseBlock {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "attacks are reduced in the block phase")
	}
	e := st.Combat.Enemy(c.EnemyID)
	if e == nil || e.Defeated {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("no live enemy %q", c.EnemyID))
	}
	if !e.Def().Has(rules.AbilityCumbersome) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("%s is not cumbersome", e.Def().Name))
	}
	if c.AttackIndex < 0 || c.AttackIndex >= len(e.AttacksBlocked) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("attack index %d out of range", c.AttackIndex))
	}
	if e.AttacksBlocked[c.AttackIndex] {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetAlreadyResolved,
			"that attack is already blocked")
	}
	if c.Amount <= 0 {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible, "reduction must be positive")
	}
	p := st.Player(c.PlayerID)
	if p.Acc.AvailableMove() < c.Amount {
		return invalid(st.ID, c.PlayerID, rules.ReasonInsufficientMove,
			fmt.Sprintf("reduction costs %d move, have %d", c.Amount, p.Acc.AvailableMove()))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	np.Acc.SpentMove += c.Amount
	ne := next.Combat.Enemy(c.EnemyID)
	ne.CumbersomeReductions[c.AttackIndex] += c.Amount

	events := []rules.Event{{
		Type: rules.EventAttackReduced, GameID: next.ID, PlayerID: c.PlayerID,
		EnemyID: c.EnemyID, Amount: c.Amount,
	}}
	if reducedAttack(next, ne, c.AttackIndex) == 0 {
		ne.AttacksBlocked[c.AttackIndex] = true
		events = append(events, rules.Event{
			Type: rules.EventEnemyBlocked, GameID: next.ID, PlayerID: c.PlayerID,
			EnemyID: c.EnemyID, Description: "attack reduced to nothing",
		})
	}
	return next, events, nil
}

// AssignBlockCommand earmarks block points from the pool against one
// enemy attack. Points stay conserved: assigned totals always equal the
// pending allocation until a declaration consumes them or an unassign
// returns them.
type AssignBlockCommand struct {
	PlayerID    string        `json:"playerId"`
	EnemyID     string        `json:"enemyId"`
	AttackIndex int           `json:"attackIndex"`
	Element     rules.Element `json:"element"`
	Amount      int           `json:"amount"`
}

func (c AssignBlockCommand) Name() string     { return "ASSIGN_BLOCK" }
func (c AssignBlockCommand) Reversible() bool { return true }

func (c AssignBlockCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase != PhaseBlock {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "block is assigned in the block phase")
	}
	e := st.Combat.Enemy(c.EnemyID)
	if e == nil || e.Defeated {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("no live enemy %q", c.EnemyID))
	}
	if c.AttackIndex < 0 || c.AttackIndex >= len(e.AttacksBlocked) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("attack index %d out of range", c.AttackIndex))
	}
	if e.AttacksBlocked[c.AttackIndex] {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetAlreadyResolved,
			"that attack is already blocked")
	}
	if t := st.Combat.DeclaredBlockTarget; t != nil && (t.EnemyID != c.EnemyID || t.AttackIndex != c.AttackIndex) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			"block is already allocated against a different attack")
	}
	if c.Amount <= 0 {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible, "allocation must be positive")
	}
	p := st.Player(c.PlayerID)
	if p.Acc.AvailableBlock(c.Element) < c.Amount {
		return invalid(st.ID, c.PlayerID, rules.ReasonInsufficientBlock,
			fmt.Sprintf("have %d unassigned %s block", p.Acc.AvailableBlock(c.Element), c.Element))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	if np.Acc.AssignedBlock == nil {
		np.Acc.AssignedBlock = make(map[rules.Element]int)
	}
	np.Acc.AssignedBlock[c.Element] += c.Amount

	combat := next.Combat
	combat.DeclaredBlockTarget = &BlockTarget{EnemyID: c.EnemyID, AttackIndex: c.AttackIndex}
	target := &combat.PendingBlock
	if swiftActive(next, combat.Enemy(c.EnemyID), c.AttackIndex) {
		target = &combat.PendingSwiftBlock
	}
	if *target == nil {
		*target = make(map[string]map[rules.Element]int)
	}
	if (*target)[c.EnemyID] == nil {
		(*target)[c.EnemyID] = make(map[rules.Element]int)
	}
	(*target)[c.EnemyID][c.Element] += c.Amount

	return next, []rules.Event{{
		Type: rules.EventBlockAssigned, GameID: next.ID, PlayerID: c.PlayerID,
		EnemyID: c.EnemyID, Element: c.Element, Amount: c.Amount,
	}}, nil
}

// UnassignBlockCommand returns earmarked block points to the pool.
type UnassignBlockCommand struct {
	PlayerID string        `json:"playerId"`
	EnemyID  string        `json:"enemyId"`
	Element  rules.Element `json:"element"`
	Amount   int           `json:"amount"`
}

func (c UnassignBlockCommand) Name() string     { return "UNASSIGN_BLOCK" }
func (c UnassignBlockCommand) Reversible() bool { return true }

func (c UnassignBlockCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase != PhaseBlock {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "block is unassigned in the block phase")
	}
	pending := st.Combat.pendingFor(c.EnemyID)
	if c.Amount <= 0 || pending[c.Element] < c.Amount {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("only %d %s block is allocated there", pending[c.Element], c.Element))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	np.Acc.AssignedBlock[c.Element] -= c.Amount

	combat := next.Combat
	remaining := c.Amount
	for _, m := range []map[string]map[rules.Element]int{combat.PendingBlock, combat.PendingSwiftBlock} {
		if remaining == 0 || m[c.EnemyID] == nil {
			continue
		}
		take := m[c.EnemyID][c.Element]
		if take > remaining {
			take = remaining
		}
		m[c.EnemyID][c.Element] -= take
		remaining -= take
	}
	if total := sumAlloc(combat.pendingFor(c.EnemyID)); total == 0 {
		delete(combat.PendingBlock, c.EnemyID)
		delete(combat.PendingSwiftBlock, c.EnemyID)
		combat.DeclaredBlockTarget = nil
	}

	return next, []rules.Event{{
		Type: rules.EventBlockUnassigned, GameID: next.ID, PlayerID: c.PlayerID,
		EnemyID: c.EnemyID, Element: c.Element, Amount: c.Amount,
	}}, nil
}

func sumAlloc(m map[rules.Element]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// DeclareBlockCommand commits the allocated block against its target
// attack. Success consumes the points and marks the attack blocked;
// insufficient block leaves the allocation untouched. Declaring is a hard
// undo boundary.
type DeclareBlockCommand struct {
	PlayerID string `json:"playerId"`
}

func (c DeclareBlockCommand) Name() string     { return "DECLARE_BLOCK" }
func (c DeclareBlockCommand) Reversible() bool { return false }

func (c DeclareBlockCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase != PhaseBlock {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "block is declared in the block phase")
	}
	target := st.Combat.DeclaredBlockTarget
	if target == nil {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible, "no block allocation to declare")
	}
	e := st.Combat.Enemy(target.EnemyID)
	if e == nil || e.Defeated {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("no live enemy %q", target.EnemyID))
	}
	if e.AttacksBlocked[target.AttackIndex] {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetAlreadyResolved,
			"that attack is already blocked")
	}

	required := RequiredBlock(st, e, target.AttackIndex)
	alloc := st.Combat.pendingFor(target.EnemyID)
	attackElem := e.Def().Attacks[target.AttackIndex].Element
	total := rules.EffectiveBlockValue(alloc, attackElem)
	if total < required {
		return nil, []rules.Event{
			{
				Type: rules.EventBlockFailed, GameID: st.ID, PlayerID: c.PlayerID,
				EnemyID: target.EnemyID, Amount: total,
				Description: fmt.Sprintf("need %d effective block, have %d", required, total),
			},
			{
				Type: rules.EventInvalidAction, GameID: st.ID, PlayerID: c.PlayerID,
				Reason:      rules.ReasonInsufficientBlock,
				Description: fmt.Sprintf("need %d effective block, have %d", required, total),
			},
		}, nil
	}

	next := st.Clone()
	combat := next.Combat
	np := next.Player(c.PlayerID)
	for elem, v := range combat.pendingFor(target.EnemyID) {
		np.Acc.Block[elem] -= v
		np.Acc.AssignedBlock[elem] -= v
	}
	delete(combat.PendingBlock, target.EnemyID)
	delete(combat.PendingSwiftBlock, target.EnemyID)
	ne := combat.Enemy(target.EnemyID)
	ne.AttacksBlocked[target.AttackIndex] = true
	combat.DeclaredBlockTarget = nil

	return next, []rules.Event{{
		Type: rules.EventEnemyBlocked, GameID: next.ID, PlayerID: c.PlayerID,
		EnemyID: target.EnemyID, Amount: total,
	}}, nil
}

// AttackSpend is one line of attack points committed to a declaration.
type AttackSpend struct {
	Type    rules.AttackType `json:"type"`
	Element rules.Element    `json:"element"`
	Amount  int              `json:"amount"`
}

// RangedSiegeAttackCommand attacks a group of enemies in the ranged and
// siege phase. Only ranged and siege points are usable, and any
// fortification on any target restricts the group to siege points. The
// declaration either defeats the whole group or fails outright.
type RangedSiegeAttackCommand struct {
	PlayerID string        `json:"playerId"`
	EnemyIDs []string      `json:"enemyIds"`
	Spend    []AttackSpend `json:"spend"`
}

func (c RangedSiegeAttackCommand) Name() string     { return "RANGED_SIEGE_ATTACK" }
func (c RangedSiegeAttackCommand) Reversible() bool { return false }

func (c RangedSiegeAttackCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase != PhaseRangedSiege {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase,
			"ranged and siege attacks happen in the first phase")
	}
	targets, evs := gatherTargets(st, c.PlayerID, c.EnemyIDs)
	if evs != nil {
		return nil, evs, nil
	}

	fortified := false
	for _, e := range targets {
		if st.Combat.FortificationLevel(e) > 0 {
			fortified = true
			break
		}
	}
	for _, s := range c.Spend {
		switch s.Type {
		case rules.AttackRanged:
			if fortified {
				return invalid(st.ID, c.PlayerID, rules.ReasonFortifiedTarget,
					"fortified targets only accept siege attack")
			}
		case rules.AttackSiege:
		default:
			return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase,
				fmt.Sprintf("%s attack is not usable in this phase", s.Type))
		}
	}

	armor := 0
	for _, e := range targets {
		armor += rangedPhaseArmor(st, e)
	}
	next, events, err := resolveAttackDeclaration(st, c.PlayerID, targets, c.Spend, armor)
	if err != nil || next == nil {
		return next, events, err
	}
	events = append([]rules.Event{{
		Type: rules.EventRangedAttack, GameID: next.ID, PlayerID: c.PlayerID,
		Amount: len(targets),
	}}, events...)
	return next, events, nil
}

// DeclareAttackCommand attacks a group of enemies in the attack phase.
// Every attack type is usable; Elusive enemies that were not fully blocked
// present doubled armor.
type DeclareAttackCommand struct {
	PlayerID string        `json:"playerId"`
	EnemyIDs []string      `json:"enemyIds"`
	Spend    []AttackSpend `json:"spend"`
}

func (c DeclareAttackCommand) Name() string     { return "DECLARE_ATTACK" }
func (c DeclareAttackCommand) Reversible() bool { return false }

func (c DeclareAttackCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase != PhaseAttack {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "attacks are declared in the attack phase")
	}
	targets, evs := gatherTargets(st, c.PlayerID, c.EnemyIDs)
	if evs != nil {
		return nil, evs, nil
	}

	armor := 0
	for _, e := range targets {
		armor += attackPhaseArmor(st, e)
	}
	return resolveAttackDeclaration(st, c.PlayerID, targets, c.Spend, armor)
}

// gatherTargets validates an attack declaration's target list.
func gatherTargets(st *GameState, playerID string, enemyIDs []string) ([]*CombatEnemy, []rules.Event) {
	if len(enemyIDs) == 0 {
		_, evs, _ := invalid(st.ID, playerID, rules.ReasonTargetIneligible, "no targets named")
		return nil, evs
	}
	seen := make(map[string]bool, len(enemyIDs))
	var targets []*CombatEnemy
	for _, id := range enemyIDs {
		if seen[id] {
			_, evs, _ := invalid(st.ID, playerID, rules.ReasonTargetIneligible,
				fmt.Sprintf("enemy %q named twice", id))
			return nil, evs
		}
		seen[id] = true
		e := st.Combat.Enemy(id)
		if e == nil {
			_, evs, _ := invalid(st.ID, playerID, rules.ReasonTargetIneligible,
				fmt.Sprintf("no enemy %q in this combat", id))
			return nil, evs
		}
		if e.Defeated {
			_, evs, _ := invalid(st.ID, playerID, rules.ReasonTargetAlreadyResolved,
				fmt.Sprintf("enemy %q is already defeated", id))
			return nil, evs
		}
		targets = append(targets, e)
	}
	return targets, nil
}

// resolveAttackDeclaration validates the spend, folds it against the
// group's combined resistances, and either defeats every target or
// reports the shortfall without touching state.
func resolveAttackDeclaration(st *GameState, playerID string, targets []*CombatEnemy, spend []AttackSpend, armor int) (*GameState, []rules.Event, error) {
	p := st.Player(playerID)
	committed := make(map[rules.AttackType]map[rules.Element]int)
	for _, s := range spend {
		if s.Amount <= 0 {
			return invalid(st.ID, playerID, rules.ReasonTargetIneligible, "spend amounts must be positive")
		}
		if committed[s.Type] == nil {
			committed[s.Type] = make(map[rules.Element]int)
		}
		committed[s.Type][s.Element] += s.Amount
	}
	for t, byElem := range committed {
		for elem, v := range byElem {
			if p.Acc.AvailableAttack(t, elem) < v {
				return invalid(st.ID, playerID, rules.ReasonInsufficientAttack,
					fmt.Sprintf("have %d %s %s attack, committed %d", p.Acc.AvailableAttack(t, elem), t, elem, v))
			}
		}
	}

	byElement := make(map[rules.Element]int)
	for _, byElem := range committed {
		for elem, v := range byElem {
			byElement[elem] += v
		}
	}
	total := rules.EffectiveAttackValue(byElement, combinedResistances(targets))
	if total < armor {
		return nil, []rules.Event{
			{
				Type: rules.EventAttackFailed, GameID: st.ID, PlayerID: playerID,
				Amount:      total,
				Description: fmt.Sprintf("need %d effective attack, have %d", armor, total),
			},
			{
				Type: rules.EventInvalidAction, GameID: st.ID, PlayerID: playerID,
				Reason:      rules.ReasonInsufficientAttack,
				Description: fmt.Sprintf("need %d effective attack, have %d", armor, total),
			},
		}, nil
	}

	next := st.Clone()
	np := next.Player(playerID)
	for t, byElem := range committed {
		for elem, v := range byElem {
			np.Acc.SpentAttack = np.Acc.SpentAttack.Add(t, elem, v)
		}
	}

	events := make([]rules.Event, 0, len(targets))
	fame := 0
	for _, e := range targets {
		ne := next.Combat.Enemy(e.ID)
		ne.Defeated = true
		def := ne.Def()
		if !ne.Summoned {
			fame += def.Fame
		}
		delete(next.Combat.PendingDamage, ne.ID)
		events = append(events, rules.Event{
			Type: rules.EventEnemyDefeated, GameID: next.ID, PlayerID: playerID,
			EnemyID: ne.ID, Amount: def.Fame, Description: def.Name,
		})
		// Modifiers scoped to the defeated enemy have nothing left to
		// affect; drop them now instead of at combat end.
		for _, m := range next.Modifiers.Modifiers {
			if m.Scope.Kind == modifier.ScopeOneEnemy && m.Scope.EnemyID == ne.ID {
				next.Modifiers = next.Modifiers.Remove(m.ID)
				events = append(events, rules.Event{
					Type: rules.EventModifierRemoved, GameID: next.ID, PlayerID: playerID,
					EnemyID: ne.ID, Amount: int(m.ID), Metadata: map[string]string{"source": m.Source.Name},
				})
			}
		}
	}
	np.Fame += fame
	return next, events, nil
}

// AssignDamageCommand assigns one unblocked attack's damage to the hero or
// to a unit. A resistant unit absorbs the whole attack once per combat
// without wounding; otherwise the unit takes a wound, soaks its armor, and
// the remainder falls on the hero. Poison adds a discard-pile wound per
// hero wound taken.
type AssignDamageCommand struct {
	PlayerID    string `json:"playerId"`
	EnemyID     string `json:"enemyId"`
	AttackIndex int    `json:"attackIndex"`
	// UnitID is the soaking unit; empty assigns everything to the hero.
	UnitID string `json:"unitId,omitempty"`
}

func (c AssignDamageCommand) Name() string     { return "ASSIGN_DAMAGE" }
func (c AssignDamageCommand) Reversible() bool { return true }

func (c AssignDamageCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	if st.Combat == nil || st.Combat.Phase != PhaseAssignDamage {
		return invalid(st.ID, c.PlayerID, rules.ReasonWrongPhase, "damage is assigned in the damage phase")
	}
	e := st.Combat.Enemy(c.EnemyID)
	if e == nil || e.Defeated {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("no live enemy %q", c.EnemyID))
	}
	if c.AttackIndex < 0 || c.AttackIndex >= len(e.AttacksBlocked) {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("attack index %d out of range", c.AttackIndex))
	}
	if e.AttacksBlocked[c.AttackIndex] || e.AttacksDamageAssigned[c.AttackIndex] {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetAlreadyResolved,
			"that attack has no damage left to assign")
	}

	damage := damageOf(st, e, c.AttackIndex)
	def := e.Def()
	attackElem := def.Attacks[c.AttackIndex].Element
	poison := def.Has(rules.AbilityPoison)

	p := st.Player(c.PlayerID)
	var unitDef content.UnitDef
	if c.UnitID != "" {
		u := p.Unit(c.UnitID)
		if u == nil {
			return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
				fmt.Sprintf("no unit %q under command", c.UnitID))
		}
		if u.Wounded {
			return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
				"a wounded unit cannot soak more damage")
		}
		var ok bool
		unitDef, ok = content.Unit(u.DefID)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unit %s references unknown definition %q", ErrInvariant, u.ID, u.DefID)
		}
		if unitDef.RequiresUpkeep && !u.UpkeepPaid {
			return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
				fmt.Sprintf("%s demands upkeep before soaking damage", unitDef.Name))
		}
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	ne := next.Combat.Enemy(c.EnemyID)
	ne.AttacksDamageAssigned[c.AttackIndex] = true

	events := []rules.Event{{
		Type: rules.EventDamageAssigned, GameID: next.ID, PlayerID: c.PlayerID,
		EnemyID: c.EnemyID, Element: attackElem, Amount: damage,
	}}

	if c.UnitID != "" {
		nu := np.Unit(c.UnitID)
		if unitDef.Resistances.Resists(attackElem) && !nu.UsedResistance {
			nu.UsedResistance = true
			settlePendingDamage(next.Combat, c.EnemyID, damage)
			events = append(events, rules.Event{
				Type: rules.EventUnitResisted, GameID: next.ID, PlayerID: c.PlayerID,
				UnitID: c.UnitID, EnemyID: c.EnemyID, Element: attackElem, Amount: damage,
			})
			return next, events, nil
		}
		nu.Wounded = true
		events = append(events, rules.Event{
			Type: rules.EventUnitWounded, GameID: next.ID, PlayerID: c.PlayerID,
			UnitID: c.UnitID, EnemyID: c.EnemyID,
		})
		if poison {
			// Poison destroys the wounded unit outright.
			for i := range np.Units {
				if np.Units[i].ID == c.UnitID {
					np.Units = append(np.Units[:i], np.Units[i+1:]...)
					break
				}
			}
		}
		damage -= unitDef.Armor
		if damage < 0 {
			damage = 0
		}
	}

	if damage > 0 {
		wounds := (damage + np.Armor - 1) / np.Armor
		for i := 0; i < wounds; i++ {
			np.Hand = append(np.Hand, woundCardID)
			if poison {
				np.Discard = append(np.Discard, woundCardID)
			}
		}
		events = append(events, rules.Event{
			Type: rules.EventWoundTaken, GameID: next.ID, PlayerID: c.PlayerID,
			EnemyID: c.EnemyID, Amount: wounds,
		})
	}
	settlePendingDamage(next.Combat, c.EnemyID, damageOf(next, ne, c.AttackIndex))
	return next, events, nil
}

// settlePendingDamage decrements the per-enemy pending damage summary.
func settlePendingDamage(c *CombatState, enemyID string, amount int) {
	if c.PendingDamage == nil {
		return
	}
	c.PendingDamage[enemyID] -= amount
	if c.PendingDamage[enemyID] <= 0 {
		delete(c.PendingDamage, enemyID)
	}
}
