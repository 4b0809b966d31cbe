package content

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// EnemyAttack is one printed attack line of an enemy.
type EnemyAttack struct {
	Element rules.Element
	Value   int
}

// EnemyDef is one enemy token definition.
type EnemyDef struct {
	ID          string
	Name        string
	Armor       int
	Attacks     []EnemyAttack
	Abilities   []rules.Ability
	Resistances rules.Resistances
	Fame        int
}

// Has reports whether the enemy has the given innate ability.
func (e EnemyDef) Has(a rules.Ability) bool {
	for _, x := range e.Abilities {
		if x == a {
			return true
		}
	}
	return false
}

var enemies = map[string]EnemyDef{
	"prowlers": {
		ID: "prowlers", Name: "Prowlers", Armor: 3, Fame: 2,
		Attacks: []EnemyAttack{{Element: rules.ElementPhysical, Value: 4}},
	},
	"ironclads": {
		ID: "ironclads", Name: "Ironclads", Armor: 3, Fame: 4,
		Attacks:     []EnemyAttack{{Element: rules.ElementPhysical, Value: 4}},
		Abilities:   []rules.Ability{rules.AbilityBrutal},
		Resistances: rules.Resistances{Physical: true},
	},
	"orc_summoners": {
		ID: "orc_summoners", Name: "Orc Summoners", Armor: 4, Fame: 4,
		Attacks: []EnemyAttack{{Element: rules.ElementPhysical, Value: 3}},
	},
	"crossbowmen": {
		ID: "crossbowmen", Name: "Crossbowmen", Armor: 4, Fame: 3,
		Attacks:   []EnemyAttack{{Element: rules.ElementPhysical, Value: 4}},
		Abilities: []rules.Ability{rules.AbilitySwift},
	},
	"guardsmen": {
		ID: "guardsmen", Name: "Guardsmen", Armor: 7, Fame: 3,
		Attacks:   []EnemyAttack{{Element: rules.ElementPhysical, Value: 3}},
		Abilities: []rules.Ability{rules.AbilityFortified},
	},
	"golems": {
		ID: "golems", Name: "Golems", Armor: 5, Fame: 4,
		Attacks:     []EnemyAttack{{Element: rules.ElementPhysical, Value: 2}},
		Abilities:   []rules.Ability{rules.AbilityCumbersome},
		Resistances: rules.Resistances{Physical: true},
	},
	"freezers": {
		ID: "freezers", Name: "Freezers", Armor: 7, Fame: 7,
		Attacks:     []EnemyAttack{{Element: rules.ElementIce, Value: 3}},
		Abilities:   []rules.Ability{rules.AbilitySwift},
		Resistances: rules.Resistances{Ice: true},
	},
	"gunners": {
		ID: "gunners", Name: "Gunners", Armor: 6, Fame: 7,
		Attacks:   []EnemyAttack{{Element: rules.ElementFire, Value: 6}},
		Abilities: []rules.Ability{rules.AbilityBrutal},
		Resistances: rules.Resistances{Fire: true},
	},
	"ice_mages": {
		ID: "ice_mages", Name: "Ice Mages", Armor: 6, Fame: 6,
		Attacks:     []EnemyAttack{{Element: rules.ElementIce, Value: 5}},
		Resistances: rules.Resistances{Ice: true},
	},
	"fire_dragon": {
		ID: "fire_dragon", Name: "Fire Dragon", Armor: 7, Fame: 8,
		Attacks: []EnemyAttack{
			{Element: rules.ElementFire, Value: 3},
			{Element: rules.ElementPhysical, Value: 4},
		},
		Resistances: rules.Resistances{Fire: true},
	},
	"storm_dragon": {
		ID: "storm_dragon", Name: "Storm Dragon", Armor: 7, Fame: 8,
		Attacks: []EnemyAttack{
			{Element: rules.ElementIce, Value: 1},
			{Element: rules.ElementIce, Value: 1},
		},
		Abilities:   []rules.Ability{rules.AbilitySwift},
		Resistances: rules.Resistances{Ice: true},
	},
	"high_dragon": {
		ID: "high_dragon", Name: "High Dragon", Armor: 9, Fame: 9,
		Attacks: []EnemyAttack{
			{Element: rules.ElementColdFire, Value: 6},
		},
		Abilities:   []rules.Ability{rules.AbilityBrutal},
		Resistances: rules.Resistances{Fire: true, Ice: true},
	},
	"sorcerers": {
		ID: "sorcerers", Name: "Sorcerers", Armor: 4, Fame: 5,
		Attacks:   []EnemyAttack{{Element: rules.ElementIce, Value: 4}},
		Abilities: []rules.Ability{rules.AbilityPoison, rules.AbilityUnfortified},
	},
	"swamp_things": {
		ID: "swamp_things", Name: "Swamp Things", Armor: 5, Fame: 5,
		Attacks:   []EnemyAttack{{Element: rules.ElementPhysical, Value: 5}},
		Abilities: []rules.Ability{rules.AbilityCumbersome, rules.AbilitySwift},
	},
	"shadow": {
		ID: "shadow", Name: "Shadow", Armor: 4, Fame: 6,
		Attacks:   []EnemyAttack{{Element: rules.ElementPhysical, Value: 4}},
		Abilities: []rules.Ability{rules.AbilityElusive},
	},
}

// Enemy returns the enemy definition for an id.
func Enemy(id string) (EnemyDef, bool) {
	e, ok := enemies[id]
	return e, ok
}
