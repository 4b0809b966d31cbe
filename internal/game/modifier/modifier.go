// Package modifier implements the registry of time- and scope-bounded rule
// adjustments and the effective-value queries layered over the base rule
// tables. Every other subsystem must read terrain costs, enemy stats, and
// sideways values through these queries, never from the tables directly.
package modifier

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// SourceKind identifies the kind of game object that created a modifier.
type SourceKind string

const (
	SourceCard  SourceKind = "CARD"
	SourceSkill SourceKind = "SKILL"
	SourceUnit  SourceKind = "UNIT"
	SourceSite  SourceKind = "SITE"
)

// Source describes where a modifier came from, for display and cleanup.
type Source struct {
	Kind          SourceKind `json:"kind"`
	Name          string     `json:"name"`
	OwnerPlayerID string     `json:"ownerPlayerId"`
}

// ScopeKind selects which players or enemies a modifier applies to.
type ScopeKind string

const (
	ScopeSelf         ScopeKind = "SELF"
	ScopeAllPlayers   ScopeKind = "ALL_PLAYERS"
	ScopeOtherPlayers ScopeKind = "OTHER_PLAYERS"
	ScopeOneEnemy     ScopeKind = "ONE_ENEMY"
	ScopeAllEnemies   ScopeKind = "ALL_ENEMIES"
)

// Scope is the resolved applicability of a modifier. EnemyID is set only
// for ScopeOneEnemy.
type Scope struct {
	Kind    ScopeKind `json:"kind"`
	EnemyID string    `json:"enemyId,omitempty"`
}

// Duration classes. Expiration is event-driven: nothing here counts down.
type Duration string

const (
	DurationTurn          Duration = "TURN"
	DurationRound         Duration = "ROUND"
	DurationCombat        Duration = "COMBAT"
	DurationUntilNextTurn Duration = "UNTIL_NEXT_TURN"
)

// Kind tags the typed payload of a modifier.
type Kind string

const (
	// KindTerrainCost adds Delta to a terrain movement cost, clamped at Min.
	KindTerrainCost Kind = "TERRAIN_COST"
	// KindTerrainCostSet replaces a terrain movement cost outright.
	KindTerrainCostSet Kind = "TERRAIN_COST_SET"
	// KindTerrainRule swaps the day/night cost column used for queries.
	KindTerrainRule Kind = "TERRAIN_RULE"
	// KindEnemyArmor adds Delta to an enemy's armor, clamped at Min.
	KindEnemyArmor Kind = "ENEMY_ARMOR"
	// KindEnemyAttack adds Delta to an enemy's attack values, clamped at Min.
	KindEnemyAttack Kind = "ENEMY_ATTACK"
	// KindSidewaysValue adds Delta to the player's sideways card value.
	KindSidewaysValue Kind = "SIDEWAYS_VALUE"
	// KindSidewaysValueSet replaces the player's sideways card value.
	KindSidewaysValueSet Kind = "SIDEWAYS_VALUE_SET"
	// KindSourceDice grants extra Source die uses this turn.
	KindSourceDice Kind = "SOURCE_DICE"
)

// TimeRule is the payload of KindTerrainRule.
type TimeRule string

const (
	UseDayCosts   TimeRule = "USE_DAY_COSTS"
	UseNightCosts TimeRule = "USE_NIGHT_COSTS"
)

// Payload is the typed effect of a modifier. Which fields are meaningful
// depends on Kind; zero values mean "no filter" / "not declared".
type Payload struct {
	Kind Kind `json:"kind"`

	// Terrain and Coord narrow terrain-cost payloads. Empty terrain matches
	// every terrain; nil coord matches every hex.
	Terrain rules.Terrain `json:"terrain,omitempty"`
	Coord   *rules.Coord  `json:"coord,omitempty"`

	Delta int `json:"delta,omitempty"`
	// Min is the per-modifier floor declared by additive payloads.
	Min int `json:"min,omitempty"`
	// Value carries the replacement for the Set kinds.
	Value int `json:"value,omitempty"`

	TimeRule TimeRule `json:"timeRule,omitempty"`
}

// ActiveModifier is one live entry in the store.
type ActiveModifier struct {
	ID                int64    `json:"id"`
	Source            Source   `json:"source"`
	Scope             Scope    `json:"scope"`
	Duration          Duration `json:"duration"`
	Effect            Payload  `json:"effect"`
	CreatedAtRound    int      `json:"createdAtRound"`
	CreatedByPlayerID string   `json:"createdByPlayerId"`
}

// playerScoped reports whether the payload kind targets players.
func (k Kind) playerScoped() bool {
	switch k {
	case KindTerrainCost, KindTerrainCostSet, KindTerrainRule, KindSidewaysValue, KindSidewaysValueSet, KindSourceDice:
		return true
	}
	return false
}

// enemyScoped reports whether the payload kind targets enemies.
func (k Kind) enemyScoped() bool {
	return k == KindEnemyArmor || k == KindEnemyAttack
}

// Validate checks scope/payload compatibility. A mismatch is a programmer
// error in the effect that tried to create the modifier.
func (m ActiveModifier) Validate() error {
	switch m.Scope.Kind {
	case ScopeSelf, ScopeAllPlayers, ScopeOtherPlayers:
		if !m.Effect.Kind.playerScoped() {
			return fmt.Errorf("modifier kind %s requires an enemy scope, got %s", m.Effect.Kind, m.Scope.Kind)
		}
	case ScopeOneEnemy, ScopeAllEnemies:
		if !m.Effect.Kind.enemyScoped() {
			return fmt.Errorf("modifier kind %s requires a player scope, got %s", m.Effect.Kind, m.Scope.Kind)
		}
		if m.Scope.Kind == ScopeOneEnemy && m.Scope.EnemyID == "" {
			return fmt.Errorf("one-enemy scope requires an enemy id")
		}
	default:
		return fmt.Errorf("unknown modifier scope %q", m.Scope.Kind)
	}
	return nil
}
