// Package content holds the read-only definition tables: cards, enemies,
// units, and skills. The engine looks these up by id and overlays modifiers
// on top of queries; nothing in here is ever mutated at runtime.
package content

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/effect"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// CardType distinguishes the deck a card belongs to.
type CardType string

const (
	CardBasicAction    CardType = "BASIC_ACTION"
	CardAdvancedAction CardType = "ADVANCED_ACTION"
	CardSpell          CardType = "SPELL"
	CardWound          CardType = "WOUND"
)

// WoundCardID is the id of the wound card shuffled into hands by combat.
const WoundCardID = "wound"

// CardDef is one card definition. Basic is the card's plain effect;
// Strong is the amped effect unlocked by paying one mana of Color.
type CardDef struct {
	ID     string
	Name   string
	Type   CardType
	Color  mana.Color
	Basic  effect.Effect
	Strong effect.Effect
	// SidewaysValue is the base generic value when played sideways.
	SidewaysValue int
}

// Playable reports whether the card can be played for an effect at all.
func (c CardDef) Playable() bool { return c.Type != CardWound }

var cards = map[string]CardDef{
	"march": {
		ID: "march", Name: "March", Type: CardBasicAction, Color: mana.Green,
		Basic:  effect.Move(2),
		Strong: effect.Move(4),
		SidewaysValue: 1,
	},
	"stamina": {
		ID: "stamina", Name: "Stamina", Type: CardBasicAction, Color: mana.Blue,
		Basic:  effect.Move(2),
		Strong: effect.Move(4),
		SidewaysValue: 1,
	},
	"swiftness": {
		ID: "swiftness", Name: "Swiftness", Type: CardBasicAction, Color: mana.White,
		Basic:  effect.Move(2),
		Strong: effect.Attack(rules.AttackRanged, rules.ElementPhysical, 3),
		SidewaysValue: 1,
	},
	"rage": {
		ID: "rage", Name: "Rage", Type: CardBasicAction, Color: mana.Red,
		Basic: effect.Choice(
			effect.Attack(rules.AttackNormal, rules.ElementPhysical, 2),
			effect.Block(rules.ElementPhysical, 2),
		),
		Strong: effect.Attack(rules.AttackNormal, rules.ElementPhysical, 4),
		SidewaysValue: 1,
	},
	"determination": {
		ID: "determination", Name: "Determination", Type: CardBasicAction, Color: mana.Blue,
		Basic: effect.Choice(
			effect.Attack(rules.AttackNormal, rules.ElementPhysical, 2),
			effect.Block(rules.ElementPhysical, 2),
		),
		Strong: effect.Block(rules.ElementPhysical, 5),
		SidewaysValue: 1,
	},
	"tranquility": {
		ID: "tranquility", Name: "Tranquility", Type: CardBasicAction, Color: mana.Green,
		Basic: effect.Choice(
			effect.Heal(1),
			effect.Draw(1),
		),
		Strong: effect.Choice(
			effect.Heal(2),
			effect.Draw(2),
		),
		SidewaysValue: 1,
	},
	"promise": {
		ID: "promise", Name: "Promise", Type: CardBasicAction, Color: mana.Green,
		Basic:  effect.Influence(2),
		Strong: effect.Influence(4),
		SidewaysValue: 1,
	},
	"threaten": {
		ID: "threaten", Name: "Threaten", Type: CardBasicAction, Color: mana.Red,
		Basic:  effect.Influence(2),
		Strong: effect.Influence(5),
		SidewaysValue: 1,
	},
	"crystallize": {
		ID: "crystallize", Name: "Crystallize", Type: CardBasicAction, Color: mana.Blue,
		Basic: effect.Choice(
			effect.GainCrystal(string(mana.Red)),
			effect.GainCrystal(string(mana.Blue)),
			effect.GainCrystal(string(mana.Green)),
			effect.GainCrystal(string(mana.White)),
		),
		Strong: effect.Compound(
			effect.GainCrystal(string(mana.Red)),
			effect.GainCrystal(string(mana.Blue)),
		),
		SidewaysValue: 1,
	},
	"mana_draw": {
		ID: "mana_draw", Name: "Mana Draw", Type: CardBasicAction, Color: mana.White,
		Basic: effect.AddModifier(modifier.ActiveModifier{
			Source:   modifier.Source{Kind: modifier.SourceCard, Name: "Mana Draw"},
			Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
			Duration: modifier.DurationTurn,
			Effect:   modifier.Payload{Kind: modifier.KindSourceDice, Delta: 1},
		}),
		Strong: effect.Compound(
			effect.AddModifier(modifier.ActiveModifier{
				Source:   modifier.Source{Kind: modifier.SourceCard, Name: "Mana Draw"},
				Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
				Duration: modifier.DurationTurn,
				Effect:   modifier.Payload{Kind: modifier.KindSourceDice, Delta: 2},
			}),
			effect.GainManaToken(string(mana.Gold)),
		),
		SidewaysValue: 1,
	},
	"concentration": {
		ID: "concentration", Name: "Concentration", Type: CardBasicAction, Color: mana.Green,
		Basic: effect.Choice(
			effect.GainManaToken(string(mana.Blue)),
			effect.GainManaToken(string(mana.White)),
			effect.GainManaToken(string(mana.Red)),
		),
		Strong: effect.Compound(
			effect.Move(2),
			effect.Influence(2),
		),
		SidewaysValue: 1,
	},
	"pathfinding": {
		ID: "pathfinding", Name: "Pathfinding", Type: CardAdvancedAction, Color: mana.Green,
		Basic: effect.Compound(
			effect.Move(2),
			effect.TerrainReduction(-1, 2),
		),
		Strong: effect.Compound(
			effect.Move(4),
			effect.TerrainReduction(-2, 1),
		),
		SidewaysValue: 1,
	},
	"frost_bridge": {
		ID: "frost_bridge", Name: "Frost Bridge", Type: CardAdvancedAction, Color: mana.Blue,
		Basic: effect.Compound(
			effect.Move(2),
			effect.AddModifier(modifier.ActiveModifier{
				Source:   modifier.Source{Kind: modifier.SourceCard, Name: "Frost Bridge"},
				Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
				Duration: modifier.DurationTurn,
				Effect:   modifier.Payload{Kind: modifier.KindTerrainCostSet, Terrain: rules.TerrainSwamp, Value: 1},
			}),
		),
		Strong: effect.Compound(
			effect.Move(4),
			effect.AddModifier(modifier.ActiveModifier{
				Source:   modifier.Source{Kind: modifier.SourceCard, Name: "Frost Bridge"},
				Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
				Duration: modifier.DurationTurn,
				Effect:   modifier.Payload{Kind: modifier.KindTerrainCostSet, Terrain: rules.TerrainLake, Value: 1},
			}),
		),
		SidewaysValue: 1,
	},
	"fire_bolt": {
		ID: "fire_bolt", Name: "Fire Bolt", Type: CardSpell, Color: mana.Red,
		Basic:  effect.Attack(rules.AttackRanged, rules.ElementFire, 3),
		Strong: effect.Attack(rules.AttackRanged, rules.ElementColdFire, 5),
		SidewaysValue: 1,
	},
	"ice_shield": {
		ID: "ice_shield", Name: "Ice Shield", Type: CardSpell, Color: mana.Blue,
		Basic: effect.Block(rules.ElementIce, 3),
		Strong: effect.Compound(
			effect.Block(rules.ElementIce, 3),
			effect.AddModifier(modifier.ActiveModifier{
				Source:   modifier.Source{Kind: modifier.SourceCard, Name: "Ice Shield"},
				Scope:    modifier.Scope{Kind: modifier.ScopeAllEnemies},
				Duration: modifier.DurationCombat,
				Effect:   modifier.Payload{Kind: modifier.KindEnemyArmor, Delta: -3, Min: 1},
			}),
		),
		SidewaysValue: 1,
	},
	"tremor": {
		ID: "tremor", Name: "Tremor", Type: CardSpell, Color: mana.Red,
		Basic: effect.AddModifier(modifier.ActiveModifier{
			Source:   modifier.Source{Kind: modifier.SourceCard, Name: "Tremor"},
			Scope:    modifier.Scope{Kind: modifier.ScopeAllEnemies},
			Duration: modifier.DurationCombat,
			Effect:   modifier.Payload{Kind: modifier.KindEnemyAttack, Delta: -3},
		}),
		Strong: effect.AddModifier(modifier.ActiveModifier{
			Source:   modifier.Source{Kind: modifier.SourceCard, Name: "Tremor"},
			Scope:    modifier.Scope{Kind: modifier.ScopeAllEnemies},
			Duration: modifier.DurationCombat,
			Effect:   modifier.Payload{Kind: modifier.KindEnemyArmor, Delta: -3, Min: 1},
		}),
		SidewaysValue: 1,
	},
	"cure": {
		ID: "cure", Name: "Cure", Type: CardSpell, Color: mana.Green,
		Basic: effect.Compound(
			effect.Heal(2),
			effect.CureUnit(),
		),
		Strong: effect.Compound(
			effect.Heal(3),
			effect.CureUnit(),
			effect.CureUnit(),
		),
		SidewaysValue: 1,
	},
	"disease": {
		ID: "disease", Name: "Disease", Type: CardSpell, Color: mana.Green,
		Basic:  effect.Disease(),
		Strong: effect.Compound(effect.Disease(), effect.Heal(2)),
		SidewaysValue: 1,
	},
	WoundCardID: {
		ID: WoundCardID, Name: "Wound", Type: CardWound,
	},
}

// Card returns the card definition for an id.
func Card(id string) (CardDef, bool) {
	c, ok := cards[id]
	return c, ok
}

// StarterDeck is the deed deck every new player begins with.
func StarterDeck() []string {
	return []string{
		"march", "march", "stamina", "stamina",
		"rage", "rage", "determination", "swiftness",
		"tranquility", "promise", "threaten", "crystallize",
		"mana_draw", "concentration",
	}
}
