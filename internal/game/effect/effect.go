// Package effect defines the closed algebraic language every card, skill,
// and unit ability compiles down to. Effects are immutable data; resolving
// them against game state is the engine's job, not this package's.
package effect

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// Kind tags one variant of the effect tree. The set is closed: the engine's
// resolver switches over every kind and treats an unknown tag as an
// invariant failure, never a silent no-op.
type Kind string

const (
	KindMove          Kind = "MOVE"
	KindInfluence     Kind = "INFLUENCE"
	KindAttack        Kind = "ATTACK"
	KindBlock         Kind = "BLOCK"
	KindHeal          Kind = "HEAL"
	KindDraw          Kind = "DRAW"
	KindGainCrystal   Kind = "GAIN_CRYSTAL"
	KindGainManaToken Kind = "GAIN_MANA_TOKEN"
	KindCureUnit      Kind = "CURE_UNIT"
	KindDisease       Kind = "DISEASE"
	// KindTerrainReduction grants a pending hex selection; the chosen hex
	// receives a turn-scoped terrain-cost modifier.
	KindTerrainReduction Kind = "TERRAIN_REDUCTION"
	// KindAddModifier installs an arbitrary modifier. This is the escape
	// hatch most card texts compile into.
	KindAddModifier Kind = "ADD_MODIFIER"

	KindCompound    Kind = "COMPOUND"
	KindChoice      Kind = "CHOICE"
	KindConditional Kind = "CONDITIONAL"
)

// Condition selects the predicate of a conditional effect.
type Condition string

const (
	CondInCombat  Condition = "IN_COMBAT"
	CondIsDay     Condition = "IS_DAY"
	CondIsNight   Condition = "IS_NIGHT"
	CondHasWounds Condition = "HAS_WOUNDS"
)

// Effect is one node of the tree. Which fields are meaningful depends on
// Kind; the zero value of the rest is ignored.
type Effect struct {
	Kind Kind `json:"kind"`

	Amount     int              `json:"amount,omitempty"`
	Min        int              `json:"min,omitempty"`
	AttackType rules.AttackType `json:"attackType,omitempty"`
	Element    rules.Element    `json:"element,omitempty"`
	Color      string           `json:"color,omitempty"`

	// Modifier is the template installed by KindAddModifier. Its ID and
	// creator fields are filled in at resolution time.
	Modifier *modifier.ActiveModifier `json:"modifier,omitempty"`

	// Description overrides the generated text, for card-specific wording.
	Description string `json:"description,omitempty"`

	Condition Condition `json:"condition,omitempty"`
	Children  []Effect  `json:"children,omitempty"`
	Else      []Effect  `json:"else,omitempty"`
}

// Move grants movement points.
func Move(n int) Effect { return Effect{Kind: KindMove, Amount: n} }

// Influence grants influence points.
func Influence(n int) Effect { return Effect{Kind: KindInfluence, Amount: n} }

// Attack grants attack points of a type and element.
func Attack(t rules.AttackType, e rules.Element, n int) Effect {
	return Effect{Kind: KindAttack, AttackType: t, Element: e, Amount: n}
}

// Block grants block points of an element.
func Block(e rules.Element, n int) Effect {
	return Effect{Kind: KindBlock, Element: e, Amount: n}
}

// Heal grants healing points, each discarding one wound from hand.
func Heal(n int) Effect { return Effect{Kind: KindHeal, Amount: n} }

// Draw draws cards from the player's deed deck.
func Draw(n int) Effect { return Effect{Kind: KindDraw, Amount: n} }

// GainCrystal adds a crystal of the given basic color to the inventory.
func GainCrystal(color string) Effect { return Effect{Kind: KindGainCrystal, Color: color} }

// GainManaToken adds a mana token usable this turn.
func GainManaToken(color string) Effect { return Effect{Kind: KindGainManaToken, Color: color} }

// CureUnit heals one wounded unit.
func CureUnit() Effect { return Effect{Kind: KindCureUnit} }

// Disease weakens every fully blocked enemy for the rest of the combat.
func Disease() Effect { return Effect{Kind: KindDisease} }

// TerrainReduction grants a pending hex selection reducing that hex's cost
// by delta, clamped at min, for the rest of the turn.
func TerrainReduction(delta, min int) Effect {
	return Effect{Kind: KindTerrainReduction, Amount: delta, Min: min}
}

// AddModifier installs the given modifier template.
func AddModifier(m modifier.ActiveModifier) Effect {
	return Effect{Kind: KindAddModifier, Modifier: &m}
}

// Compound runs its children strictly in order.
func Compound(children ...Effect) Effect {
	return Effect{Kind: KindCompound, Children: children}
}

// Choice resolves at most one of its children.
func Choice(options ...Effect) Effect {
	return Effect{Kind: KindChoice, Children: options}
}

// When runs then-effects if the condition holds, else-effects otherwise.
func When(cond Condition, then []Effect, els []Effect) Effect {
	return Effect{Kind: KindConditional, Condition: cond, Children: then, Else: els}
}

// Additive reports whether the effect is a purely additive atomic gain,
// safely undoable by subtraction without stored history. Everything else
// relies on the command layer's captured-before-state undo.
func (e Effect) Additive() bool {
	switch e.Kind {
	case KindMove, KindInfluence, KindAttack, KindBlock:
		return true
	}
	return false
}
