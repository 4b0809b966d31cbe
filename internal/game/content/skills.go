package content

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/effect"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// Cooldown classes for skills.
type Cooldown string

const (
	OncePerTurn  Cooldown = "ONCE_PER_TURN"
	OncePerRound Cooldown = "ONCE_PER_ROUND"
)

// SkillDef is one hero skill definition.
type SkillDef struct {
	ID       string
	Name     string
	Cooldown Cooldown
	Effect   effect.Effect
}

var skills = map[string]SkillDef{
	"motivation": {
		ID: "motivation", Name: "Motivation", Cooldown: OncePerRound,
		Effect: effect.Draw(2),
	},
	"i_dont_give_a_damn": {
		ID: "i_dont_give_a_damn", Name: "I Don't Give a Damn!", Cooldown: OncePerTurn,
		Effect: effect.AddModifier(modifier.ActiveModifier{
			Source:   modifier.Source{Kind: modifier.SourceSkill, Name: "I Don't Give a Damn!"},
			Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
			Duration: modifier.DurationTurn,
			Effect:   modifier.Payload{Kind: modifier.KindSidewaysValueSet, Value: 2},
		}),
	},
	"dark_paths": {
		ID: "dark_paths", Name: "Dark Paths", Cooldown: OncePerTurn,
		Effect: effect.AddModifier(modifier.ActiveModifier{
			Source:   modifier.Source{Kind: modifier.SourceSkill, Name: "Dark Paths"},
			Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
			Duration: modifier.DurationTurn,
			Effect:   modifier.Payload{Kind: modifier.KindTerrainRule, TimeRule: modifier.UseNightCosts},
		}),
	},
	"hawk_eyes": {
		ID: "hawk_eyes", Name: "Hawk Eyes", Cooldown: OncePerTurn,
		Effect: effect.Attack(rules.AttackRanged, rules.ElementPhysical, 1),
	},
	"cold_swordsmanship": {
		ID: "cold_swordsmanship", Name: "Cold Swordsmanship", Cooldown: OncePerTurn,
		Effect: effect.Choice(
			effect.Attack(rules.AttackNormal, rules.ElementPhysical, 2),
			effect.Attack(rules.AttackNormal, rules.ElementIce, 2),
		),
	},
	"invocation": {
		ID: "invocation", Name: "Invocation", Cooldown: OncePerRound,
		Effect: effect.AddModifier(modifier.ActiveModifier{
			Source:   modifier.Source{Kind: modifier.SourceSkill, Name: "Invocation"},
			Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
			Duration: modifier.DurationTurn,
			Effect:   modifier.Payload{Kind: modifier.KindSourceDice, Delta: 1},
		}),
	},
}

// Skill returns the skill definition for an id.
func Skill(id string) (SkillDef, bool) {
	s, ok := skills[id]
	return s, ok
}
