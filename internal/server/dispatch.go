package server

import (
	"encoding/json"
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game"
)

// decodeCommand turns a message type and payload into the matching
// game command. The player id comes from the envelope, never from the
// payload.
func decodeCommand(msgType, playerID string, payload json.RawMessage) (game.Command, error) {
	if payload == nil {
		payload = json.RawMessage("{}")
	}

	switch msgType {
	case "PLAY_CARD":
		var c game.PlayCardCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "PLAY_SIDEWAYS":
		var c game.PlaySidewaysCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "SELECT_CHOICE":
		var c game.SelectChoiceCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "SELECT_HEX":
		var c game.SelectHexCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "MOVE":
		var c game.MoveCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "TAKE_SOURCE_DIE":
		var c game.TakeSourceDieCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "REROLL_SOURCE_DIE":
		var c game.RerollSourceDieCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "USE_SKILL":
		var c game.UseSkillCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "RECRUIT_UNIT":
		var c game.RecruitUnitCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "ACTIVATE_UNIT":
		var c game.ActivateUnitCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "PAY_UPKEEP":
		var c game.PayUpkeepCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "START_COMBAT":
		var c game.StartCombatCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "ADVANCE_PHASE":
		var c game.AdvancePhaseCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "REDUCE_ENEMY_ATTACK":
		var c game.ReduceEnemyAttackCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "ASSIGN_BLOCK":
		var c game.AssignBlockCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "UNASSIGN_BLOCK":
		var c game.UnassignBlockCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "DECLARE_BLOCK":
		return game.DeclareBlockCommand{PlayerID: playerID}, nil

	case "RANGED_SIEGE_ATTACK":
		var c game.RangedSiegeAttackCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "DECLARE_ATTACK":
		var c game.DeclareAttackCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "ASSIGN_DAMAGE":
		var c game.AssignDamageCommand
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		c.PlayerID = playerID
		return c, nil

	case "ANNOUNCE_END_OF_ROUND":
		return game.AnnounceEndOfRoundCommand{PlayerID: playerID}, nil

	case "END_TURN":
		return game.EndTurnCommand{PlayerID: playerID}, nil
	}

	return nil, fmt.Errorf("unknown command type %q", msgType)
}
