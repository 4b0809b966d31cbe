package content

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/effect"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// UnitDef is one recruitable unit definition. Abilities are the activation
// options; a unit activates at most one per turn.
type UnitDef struct {
	ID          string
	Name        string
	Cost        int
	Armor       int
	Resistances rules.Resistances
	Abilities   []effect.Effect
	// RequiresUpkeep marks mercenary units that only soak damage after
	// their upkeep payment is recorded for the combat.
	RequiresUpkeep bool
}

var units = map[string]UnitDef{
	"peasants": {
		ID: "peasants", Name: "Peasants", Cost: 4, Armor: 3,
		Abilities: []effect.Effect{
			effect.Choice(
				effect.Move(2),
				effect.Influence(2),
				effect.Attack(rules.AttackNormal, rules.ElementPhysical, 2),
				effect.Block(rules.ElementPhysical, 2),
			),
		},
	},
	"foresters": {
		ID: "foresters", Name: "Foresters", Cost: 5, Armor: 4,
		Abilities: []effect.Effect{
			effect.Compound(
				effect.Move(2),
				effect.TerrainReduction(-1, 0),
			),
			effect.Block(rules.ElementPhysical, 3),
		},
	},
	"herbalists": {
		ID: "herbalists", Name: "Herbalists", Cost: 3, Armor: 2,
		Abilities: []effect.Effect{
			effect.Heal(2),
			effect.CureUnit(),
		},
	},
	"utem_guardsmen": {
		ID: "utem_guardsmen", Name: "Utem Guardsmen", Cost: 5, Armor: 5,
		Abilities: []effect.Effect{
			effect.Attack(rules.AttackNormal, rules.ElementPhysical, 2),
			effect.Block(rules.ElementPhysical, 4),
		},
	},
	"utem_crossbowmen": {
		ID: "utem_crossbowmen", Name: "Utem Crossbowmen", Cost: 6, Armor: 4,
		Abilities: []effect.Effect{
			effect.Attack(rules.AttackNormal, rules.ElementPhysical, 3),
			effect.Attack(rules.AttackRanged, rules.ElementPhysical, 2),
		},
	},
	"guardian_golems": {
		ID: "guardian_golems", Name: "Guardian Golems", Cost: 7, Armor: 3,
		Resistances: rules.Resistances{Physical: true},
		Abilities: []effect.Effect{
			effect.Attack(rules.AttackNormal, rules.ElementPhysical, 2),
			effect.Block(rules.ElementPhysical, 2),
		},
	},
	"fire_mages": {
		ID: "fire_mages", Name: "Fire Mages", Cost: 9, Armor: 4,
		Resistances: rules.Resistances{Fire: true},
		Abilities: []effect.Effect{
			effect.Attack(rules.AttackRanged, rules.ElementFire, 3),
			effect.Block(rules.ElementFire, 4),
		},
		RequiresUpkeep: true,
	},
	"altem_guardians": {
		ID: "altem_guardians", Name: "Altem Guardians", Cost: 11, Armor: 7,
		Resistances: rules.Resistances{Physical: true, Fire: true, Ice: true},
		Abilities: []effect.Effect{
			effect.Block(rules.ElementPhysical, 5),
		},
		RequiresUpkeep: true,
	},
}

// Unit returns the unit definition for an id.
func Unit(id string) (UnitDef, bool) {
	u, ok := units[id]
	return u, ok
}
