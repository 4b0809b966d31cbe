// Package rules holds the base rule vocabulary and read-only tables of the
// game: elements, terrain movement costs, elemental efficiency, and enemy
// abilities. Everything here is pure data; the engine overlays modifiers on
// top of these tables, never mutates them.
package rules

// Element is the damage/block element of an attack or block contribution.
type Element string

const (
	ElementPhysical Element = "PHYSICAL"
	ElementFire     Element = "FIRE"
	ElementIce      Element = "ICE"
	ElementColdFire Element = "COLD_FIRE"
)

// Elements lists all elements in a stable order, for per-element accounting.
var Elements = []Element{ElementPhysical, ElementFire, ElementIce, ElementColdFire}

// AttackType distinguishes when an attack value may be spent in combat.
type AttackType string

const (
	AttackNormal AttackType = "NORMAL"
	AttackRanged AttackType = "RANGED"
	AttackSiege  AttackType = "SIEGE"
)

// TimeOfDay selects the day or night column of the terrain cost table.
type TimeOfDay string

const (
	Day   TimeOfDay = "DAY"
	Night TimeOfDay = "NIGHT"
)

// Terrain is the terrain kind of a map hex.
type Terrain string

const (
	TerrainPlains    Terrain = "PLAINS"
	TerrainHills     Terrain = "HILLS"
	TerrainForest    Terrain = "FOREST"
	TerrainWasteland Terrain = "WASTELAND"
	TerrainDesert    Terrain = "DESERT"
	TerrainSwamp     Terrain = "SWAMP"
	TerrainCity      Terrain = "CITY"
	TerrainMountain  Terrain = "MOUNTAIN"
	TerrainLake      Terrain = "LAKE"
)

// Ability identifiers for enemy special abilities.
type Ability string

const (
	AbilityFortified   Ability = "FORTIFIED"
	AbilityUnfortified Ability = "UNFORTIFIED"
	AbilitySwift       Ability = "SWIFT"
	AbilityBrutal      Ability = "BRUTAL"
	AbilityCumbersome  Ability = "CUMBERSOME"
	AbilityElusive     Ability = "ELUSIVE"
	AbilityPoison      Ability = "POISON"
)

// Resistances marks the elements an enemy or unit ignores or discounts.
type Resistances struct {
	Physical bool `json:"physical,omitempty"`
	Fire     bool `json:"fire,omitempty"`
	Ice      bool `json:"ice,omitempty"`
}

// Resists reports whether the given attack element is resisted. Cold Fire is
// resisted only by combined fire and ice resistance.
func (r Resistances) Resists(e Element) bool {
	switch e {
	case ElementPhysical:
		return r.Physical
	case ElementFire:
		return r.Fire
	case ElementIce:
		return r.Ice
	case ElementColdFire:
		return r.Fire && r.Ice
	}
	return false
}

// Coord addresses a single map hex. Geography is out of scope here; hexes
// are opaque keys supplied by the map layer.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}
