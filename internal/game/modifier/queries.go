package modifier

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// TerrainContext carries everything an effective terrain cost query needs.
type TerrainContext struct {
	PlayerID  string
	Terrain   rules.Terrain
	Coord     rules.Coord
	TimeOfDay rules.TimeOfDay
}

// matchesTerrain reports whether a terrain payload's filters accept the
// query context.
func matchesTerrain(p Payload, ctx TerrainContext) bool {
	if p.Terrain != "" && p.Terrain != ctx.Terrain {
		return false
	}
	if p.Coord != nil && *p.Coord != ctx.Coord {
		return false
	}
	return true
}

// EffectiveTerrainCost folds all matching modifiers over the base terrain
// cost table. The fold order is load-bearing: time-rule overrides pick the
// base column, full cost overrides replace it, additive deltas stack on
// top, and the result is clamped to the maximum of all declared minimums.
// Impassable terrain stays impassable regardless of modifiers.
func EffectiveTerrainCost(s Store, ctx TerrainContext) int {
	mods := s.ForPlayer(ctx.PlayerID)

	// Time-rule overrides swap the cost column before anything else; the
	// most recently created rule wins.
	tod := ctx.TimeOfDay
	var ruleID int64 = -1
	for _, m := range mods {
		if m.Effect.Kind == KindTerrainRule && m.ID > ruleID {
			ruleID = m.ID
			if m.Effect.TimeRule == UseNightCosts {
				tod = rules.Night
			} else {
				tod = rules.Day
			}
		}
	}

	cost := rules.BaseMoveCost(ctx.Terrain, tod)
	if cost == rules.Impassable {
		return rules.Impassable
	}

	// Full replacements, most recent wins.
	var setID int64 = -1
	for _, m := range mods {
		if m.Effect.Kind == KindTerrainCostSet && matchesTerrain(m.Effect, ctx) && m.ID > setID {
			setID = m.ID
			cost = m.Effect.Value
		}
	}

	// Additive stacking, then the clamp.
	floor := 0
	for _, m := range mods {
		if m.Effect.Kind != KindTerrainCost || !matchesTerrain(m.Effect, ctx) {
			continue
		}
		cost += m.Effect.Delta
		if m.Effect.Min > floor {
			floor = m.Effect.Min
		}
	}
	if cost < floor {
		cost = floor
	}
	return cost
}

// EffectiveEnemyArmor folds armor modifiers over an enemy's base armor.
// Armor never drops below 1: a defeated-by-modifier enemy is not a thing.
func EffectiveEnemyArmor(s Store, enemyID string, base int) int {
	armor := base
	floor := 1
	for _, m := range s.ForEnemy(enemyID) {
		if m.Effect.Kind != KindEnemyArmor {
			continue
		}
		armor += m.Effect.Delta
		if m.Effect.Min > floor {
			floor = m.Effect.Min
		}
	}
	if armor < floor {
		armor = floor
	}
	return armor
}

// EffectiveEnemyAttack folds attack modifiers over one attack value of an
// enemy. The result never drops below 0; an attack at 0 deals nothing and
// needs no block.
func EffectiveEnemyAttack(s Store, enemyID string, base int) int {
	attack := base
	floor := 0
	for _, m := range s.ForEnemy(enemyID) {
		if m.Effect.Kind != KindEnemyAttack {
			continue
		}
		attack += m.Effect.Delta
		if m.Effect.Min > floor {
			floor = m.Effect.Min
		}
	}
	if attack < floor {
		attack = floor
	}
	return attack
}

// EffectiveSidewaysValue folds sideways-value modifiers over the base
// sideways card value. Full replacements apply before deltas, most recent
// replacement wins.
func EffectiveSidewaysValue(s Store, playerID string, base int) int {
	value := base
	var setID int64 = -1
	mods := s.ForPlayer(playerID)
	for _, m := range mods {
		if m.Effect.Kind == KindSidewaysValueSet && m.ID > setID {
			setID = m.ID
			value = m.Effect.Value
		}
	}
	for _, m := range mods {
		if m.Effect.Kind == KindSidewaysValue {
			value += m.Effect.Delta
		}
	}
	if value < 0 {
		value = 0
	}
	return value
}

// SourceDiceAllowance returns how many Source dice the player may use this
// turn: the base allowance plus every extra-die grant in scope.
func SourceDiceAllowance(s Store, playerID string, base int) int {
	allowance := base
	for _, m := range s.ForPlayer(playerID) {
		if m.Effect.Kind == KindSourceDice {
			allowance += m.Effect.Delta
		}
	}
	return allowance
}
