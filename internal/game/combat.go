package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// CombatPhase is the current phase of a combat.
type CombatPhase string

const (
	PhaseRangedSiege  CombatPhase = "RANGED_SIEGE"
	PhaseBlock        CombatPhase = "BLOCK"
	PhaseAttack       CombatPhase = "ATTACK"
	PhaseAssignDamage CombatPhase = "ASSIGN_DAMAGE"
	PhaseEnded        CombatPhase = "ENDED"
)

// nextPhase returns the phase following p in the fixed sequence.
func nextPhase(p CombatPhase) CombatPhase {
	switch p {
	case PhaseRangedSiege:
		return PhaseBlock
	case PhaseBlock:
		return PhaseAttack
	case PhaseAttack:
		return PhaseAssignDamage
	case PhaseAssignDamage:
		return PhaseEnded
	}
	return PhaseEnded
}

// CombatEnemy is one enemy instance in the current combat.
type CombatEnemy struct {
	ID    string `json:"id"`
	DefID string `json:"defId"`
	// SiteFortifications is the extra fortification granted by the site
	// the enemy defends, beyond the flat fortified-site bonus.
	SiteFortifications int `json:"siteFortifications,omitempty"`
	// Rampaging marks a provoked rampaging enemy: site fortification never
	// counts for it.
	Rampaging bool `json:"rampaging,omitempty"`
	Summoned  bool `json:"summoned,omitempty"`
	Defeated  bool `json:"defeated,omitempty"`

	// Parallel arrays over the definition's attacks.
	AttacksBlocked        []bool `json:"attacksBlocked"`
	AttacksDamageAssigned []bool `json:"attacksDamageAssigned"`
	// CumbersomeReductions is the move spent against each attack.
	CumbersomeReductions []int `json:"cumbersomeReductions"`
}

// Def returns the enemy's definition. A missing definition is an invariant
// failure: instances are only built from the content table.
func (e *CombatEnemy) Def() content.EnemyDef {
	def, ok := content.Enemy(e.DefID)
	if !ok {
		panic(fmt.Sprintf("combat enemy %s references unknown definition %q", e.ID, e.DefID))
	}
	return def
}

// IsBlocked reports whether every attack of the enemy is blocked.
func (e *CombatEnemy) IsBlocked() bool {
	for _, b := range e.AttacksBlocked {
		if !b {
			return false
		}
	}
	return true
}

func (e *CombatEnemy) clone() *CombatEnemy {
	out := *e
	out.AttacksBlocked = append([]bool(nil), e.AttacksBlocked...)
	out.AttacksDamageAssigned = append([]bool(nil), e.AttacksDamageAssigned...)
	out.CumbersomeReductions = append([]int(nil), e.CumbersomeReductions...)
	return &out
}

// BlockTarget is the declared target of the next block declaration.
type BlockTarget struct {
	EnemyID     string `json:"enemyId"`
	AttackIndex int    `json:"attackIndex"`
}

// CombatState is the full state of one combat.
type CombatState struct {
	PlayerID        string         `json:"playerId"`
	Phase           CombatPhase    `json:"phase"`
	Enemies         []*CombatEnemy `json:"enemies"`
	AtFortifiedSite bool           `json:"atFortifiedSite,omitempty"`

	// PendingBlock and PendingSwiftBlock hold block points earmarked per
	// enemy but not yet declared. Points aimed at a Swift-active enemy
	// live in the swift map so consumers can show the doubled requirement
	// without re-deriving it.
	PendingBlock      map[string]map[rules.Element]int `json:"pendingBlock,omitempty"`
	PendingSwiftBlock map[string]map[rules.Element]int `json:"pendingSwiftBlock,omitempty"`

	// PendingDamage is the damage per enemy still to be assigned in the
	// assign-damage phase.
	PendingDamage map[string]int `json:"pendingDamage,omitempty"`

	DeclaredBlockTarget   *BlockTarget `json:"declaredBlockTarget,omitempty"`
	DeclaredAttackTargets []string     `json:"declaredAttackTargets,omitempty"`
}

func cloneBlockMap(m map[string]map[rules.Element]int) map[string]map[rules.Element]int {
	if m == nil {
		return nil
	}
	out := make(map[string]map[rules.Element]int, len(m))
	for k, v := range m {
		out[k] = cloneElemMap(v)
	}
	return out
}

func (c *CombatState) clone() *CombatState {
	out := *c
	out.Enemies = make([]*CombatEnemy, len(c.Enemies))
	for i, e := range c.Enemies {
		out.Enemies[i] = e.clone()
	}
	out.PendingBlock = cloneBlockMap(c.PendingBlock)
	out.PendingSwiftBlock = cloneBlockMap(c.PendingSwiftBlock)
	if c.PendingDamage != nil {
		out.PendingDamage = make(map[string]int, len(c.PendingDamage))
		for k, v := range c.PendingDamage {
			out.PendingDamage[k] = v
		}
	}
	if c.DeclaredBlockTarget != nil {
		t := *c.DeclaredBlockTarget
		out.DeclaredBlockTarget = &t
	}
	out.DeclaredAttackTargets = append([]string(nil), c.DeclaredAttackTargets...)
	return &out
}

// Enemy returns the combat enemy with the given instance id, or nil.
func (c *CombatState) Enemy(id string) *CombatEnemy {
	for _, e := range c.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// pendingFor returns the combined pending block allocation for an enemy,
// merging the plain and swift maps.
func (c *CombatState) pendingFor(enemyID string) map[rules.Element]int {
	out := make(map[rules.Element]int)
	for e, v := range c.PendingBlock[enemyID] {
		out[e] += v
	}
	for e, v := range c.PendingSwiftBlock[enemyID] {
		out[e] += v
	}
	return out
}

// FortificationLevel computes an enemy's fortification: site fortification
// (never for provoked rampaging enemies) plus the Fortified ability, minus
// the Unfortified ability, floored at zero.
func (c *CombatState) FortificationLevel(e *CombatEnemy) int {
	def := e.Def()
	level := 0
	if c.AtFortifiedSite && !e.Rampaging {
		level += 1 + e.SiteFortifications
	}
	if def.Has(rules.AbilityFortified) {
		level++
	}
	if def.Has(rules.AbilityUnfortified) {
		level--
	}
	if level < 0 {
		level = 0
	}
	return level
}

// effectiveAttackBase returns an enemy attack after stat modifiers but
// before Cumbersome reduction and Swift doubling.
func effectiveAttackBase(st *GameState, e *CombatEnemy, attackIdx int) int {
	def := e.Def()
	if attackIdx < 0 || attackIdx >= len(def.Attacks) {
		panic(fmt.Sprintf("attack index %d out of range for enemy %s", attackIdx, e.ID))
	}
	return modifier.EffectiveEnemyAttack(st.Modifiers, e.ID, def.Attacks[attackIdx].Value)
}

// reducedAttack returns an enemy attack after modifiers and Cumbersome
// reduction, before Swift doubling.
func reducedAttack(st *GameState, e *CombatEnemy, attackIdx int) int {
	v := effectiveAttackBase(st, e, attackIdx) - e.CumbersomeReductions[attackIdx]
	if v < 0 {
		v = 0
	}
	return v
}

// swiftActive reports whether Swift doubling applies to the enemy's attack:
// Swift enemies whose attack has been zeroed out by Cumbersome lose it.
func swiftActive(st *GameState, e *CombatEnemy, attackIdx int) bool {
	return e.Def().Has(rules.AbilitySwift) && reducedAttack(st, e, attackIdx) > 0
}

// RequiredBlock computes the block needed for one attack of one enemy.
// Cumbersome reduction is subtracted from the base attack before Swift
// doubling: zeroing a Swift attack zeroes the requirement.
func RequiredBlock(st *GameState, e *CombatEnemy, attackIdx int) int {
	v := reducedAttack(st, e, attackIdx)
	if v == 0 {
		return 0
	}
	if e.Def().Has(rules.AbilitySwift) {
		v *= 2
	}
	return v
}

// damageOf computes the damage one unblocked attack deals when assigned:
// the effective attack after modifiers and Cumbersome, doubled by Brutal.
func damageOf(st *GameState, e *CombatEnemy, attackIdx int) int {
	v := reducedAttack(st, e, attackIdx)
	if e.Def().Has(rules.AbilityBrutal) {
		v *= 2
	}
	return v
}

// rangedPhaseArmor returns the armor an enemy presents in the ranged/siege
// phase: effective armor, doubled for Elusive enemies.
func rangedPhaseArmor(st *GameState, e *CombatEnemy) int {
	armor := modifier.EffectiveEnemyArmor(st.Modifiers, e.ID, e.Def().Armor)
	if e.Def().Has(rules.AbilityElusive) {
		armor *= 2
	}
	return armor
}

// attackPhaseArmor returns the armor an enemy presents in the attack
// phase. Elusive doubles armor unless the enemy was fully blocked.
func attackPhaseArmor(st *GameState, e *CombatEnemy) int {
	armor := modifier.EffectiveEnemyArmor(st.Modifiers, e.ID, e.Def().Armor)
	if e.Def().Has(rules.AbilityElusive) && !e.IsBlocked() {
		armor *= 2
	}
	return armor
}

// allDefeated reports whether every enemy in the combat is defeated.
func (c *CombatState) allDefeated() bool {
	for _, e := range c.Enemies {
		if !e.Defeated {
			return false
		}
	}
	return true
}

// damageFullyAssigned reports whether every undefeated, unblocked enemy
// attack with a non-zero effective value has had its damage assigned. This
// is the guard on leaving the assign-damage phase.
func damageFullyAssigned(st *GameState) bool {
	c := st.Combat
	for _, e := range c.Enemies {
		if e.Defeated {
			continue
		}
		for i := range e.AttacksBlocked {
			if e.AttacksBlocked[i] || e.AttacksDamageAssigned[i] {
				continue
			}
			if reducedAttack(st, e, i) > 0 {
				return false
			}
		}
	}
	return true
}

// combinedResistances unions the resistances of a target group; an attack
// element inefficient against any member is inefficient against the group.
func combinedResistances(enemies []*CombatEnemy) rules.Resistances {
	var out rules.Resistances
	for _, e := range enemies {
		r := e.Def().Resistances
		out.Physical = out.Physical || r.Physical
		out.Fire = out.Fire || r.Fire
		out.Ice = out.Ice || r.Ice
	}
	return out
}
