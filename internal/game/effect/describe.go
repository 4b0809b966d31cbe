package effect

import (
	"fmt"
	"strings"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

func elementName(e rules.Element) string {
	switch e {
	case rules.ElementFire:
		return "Fire "
	case rules.ElementIce:
		return "Ice "
	case rules.ElementColdFire:
		return "Cold Fire "
	}
	return ""
}

func attackTypeName(t rules.AttackType) string {
	switch t {
	case rules.AttackRanged:
		return "Ranged "
	case rules.AttackSiege:
		return "Siege "
	}
	return ""
}

// Describe renders the effect as rulebook-style text. Used for card text
// generation and for the human-readable part of resolution results.
func (e Effect) Describe() string {
	if e.Description != "" {
		return e.Description
	}
	switch e.Kind {
	case KindMove:
		return fmt.Sprintf("Move %d", e.Amount)
	case KindInfluence:
		return fmt.Sprintf("Influence %d", e.Amount)
	case KindAttack:
		return fmt.Sprintf("%s%sAttack %d", attackTypeName(e.AttackType), elementName(e.Element), e.Amount)
	case KindBlock:
		return fmt.Sprintf("%sBlock %d", elementName(e.Element), e.Amount)
	case KindHeal:
		return fmt.Sprintf("Heal %d", e.Amount)
	case KindDraw:
		if e.Amount == 1 {
			return "Draw a card"
		}
		return fmt.Sprintf("Draw %d cards", e.Amount)
	case KindGainCrystal:
		return fmt.Sprintf("Gain a %s crystal", strings.ToLower(e.Color))
	case KindGainManaToken:
		return fmt.Sprintf("Gain a %s mana token", strings.ToLower(e.Color))
	case KindCureUnit:
		return "Heal a wounded Unit"
	case KindDisease:
		return "Each fully blocked enemy gets Armor -2 this combat"
	case KindTerrainReduction:
		return fmt.Sprintf("The move cost of one hex is reduced by %d (to a minimum of %d) this turn", -e.Amount, e.Min)
	case KindAddModifier:
		if e.Modifier != nil && e.Modifier.Source.Name != "" {
			return e.Modifier.Source.Name
		}
		return "Apply a lasting effect"
	case KindCompound:
		parts := make([]string, 0, len(e.Children))
		for _, c := range e.Children {
			parts = append(parts, c.Describe())
		}
		return strings.Join(parts, ", then ")
	case KindChoice:
		parts := make([]string, 0, len(e.Children))
		for _, c := range e.Children {
			parts = append(parts, c.Describe())
		}
		return strings.Join(parts, " or ")
	case KindConditional:
		parts := make([]string, 0, len(e.Children))
		for _, c := range e.Children {
			parts = append(parts, c.Describe())
		}
		return strings.Join(parts, ", then ")
	}
	return string(e.Kind)
}
