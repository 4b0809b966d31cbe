package rules

// BlockEfficient reports whether a block of the given element counts at
// full value against an attack of the given element. Inefficient block
// counts at half value, rounded down.
//
// Physical attacks are blocked efficiently by everything. Fire attacks are
// blocked efficiently by Ice and Cold Fire block; Ice attacks by Fire and
// Cold Fire block. Cold Fire attacks accept only Cold Fire block at full
// value.
func BlockEfficient(block, attack Element) bool {
	switch attack {
	case ElementPhysical:
		return true
	case ElementFire:
		return block == ElementIce || block == ElementColdFire
	case ElementIce:
		return block == ElementFire || block == ElementColdFire
	case ElementColdFire:
		return block == ElementColdFire
	}
	return false
}

// EffectiveBlockValue folds a per-element block allocation into its value
// against an attack of the given element.
func EffectiveBlockValue(allocated map[Element]int, attack Element) int {
	total := 0
	for _, e := range Elements {
		v := allocated[e]
		if v == 0 {
			continue
		}
		if BlockEfficient(e, attack) {
			total += v
		} else {
			total += v / 2
		}
	}
	return total
}

// EffectiveAttackValue folds a per-element attack allocation into its value
// against a target with the given resistances. Resisted elements count at
// half value, rounded down.
func EffectiveAttackValue(allocated map[Element]int, res Resistances) int {
	total := 0
	for _, e := range Elements {
		v := allocated[e]
		if v == 0 {
			continue
		}
		if res.Resists(e) {
			total += v / 2
		} else {
			total += v
		}
	}
	return total
}
