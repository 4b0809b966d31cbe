package game

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// UseSkillCommand activates one of the player's hero skills, subject to its
// cooldown. Skill use is a hard undo boundary: taking it back would let a
// player probe a skill's outcome for free.
type UseSkillCommand struct {
	PlayerID string `json:"playerId"`
	SkillID  string `json:"skillId"`
}

func (c UseSkillCommand) Name() string     { return "USE_SKILL" }
func (c UseSkillCommand) Reversible() bool { return false }

func (c UseSkillCommand) Execute(st *GameState) (*GameState, []rules.Event, error) {
	if evs := guardTurn(st, c.PlayerID); evs != nil {
		return nil, evs, nil
	}
	p := st.Player(c.PlayerID)
	owned := false
	for _, id := range p.Skills {
		if id == c.SkillID {
			owned = true
			break
		}
	}
	if !owned {
		return invalid(st.ID, c.PlayerID, rules.ReasonTargetIneligible,
			fmt.Sprintf("skill %q is not known", c.SkillID))
	}
	def, ok := content.Skill(c.SkillID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: player knows undefined skill %q", ErrInvariant, c.SkillID)
	}

	use := p.SkillUse[c.SkillID]
	switch def.Cooldown {
	case content.OncePerTurn:
		if use.UsedThisTurn {
			return invalid(st.ID, c.PlayerID, rules.ReasonCooldownUsed,
				fmt.Sprintf("%s was already used this turn", def.Name))
		}
	case content.OncePerRound:
		if use.UsedThisRound {
			return invalid(st.ID, c.PlayerID, rules.ReasonCooldownUsed,
				fmt.Sprintf("%s was already used this round", def.Name))
		}
	}
	if !isResolvable(st, c.PlayerID, def.Effect) {
		return invalid(st.ID, c.PlayerID, rules.ReasonEffectNotResolvable,
			fmt.Sprintf("%s would do nothing now", def.Name))
	}

	next := st.Clone()
	np := next.Player(c.PlayerID)
	if np.SkillUse == nil {
		np.SkillUse = make(map[string]SkillState)
	}
	nu := np.SkillUse[c.SkillID]
	nu.UsedThisTurn = true
	nu.UsedThisRound = true
	np.SkillUse[c.SkillID] = nu

	src := modifier.Source{Kind: modifier.SourceSkill, Name: def.Name, OwnerPlayerID: c.PlayerID}
	res, err := resolveEffect(next, c.PlayerID, def.Effect, src)
	if err != nil {
		return nil, nil, err
	}
	storePending(next, c.PlayerID, res, src)

	events := []rules.Event{{
		Type: rules.EventSkillUsed, GameID: next.ID, PlayerID: c.PlayerID,
		Description: def.Name, Metadata: map[string]string{"skill": c.SkillID},
	}}
	return next, append(events, res.Events...), nil
}
