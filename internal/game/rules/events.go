package rules

// EventType indicates the category of an engine event. Events are
// descriptive, not authoritative: the returned state is the source of truth
// and consumers must never reconstruct state from events alone.
type EventType string

const (
	// Card and resource events
	EventCardPlayed       EventType = "CARD_PLAYED"
	EventSidewaysPlayed   EventType = "SIDEWAYS_PLAYED"
	EventMoveGained       EventType = "MOVE_GAINED"
	EventInfluenceGained  EventType = "INFLUENCE_GAINED"
	EventAttackGained     EventType = "ATTACK_GAINED"
	EventBlockGained      EventType = "BLOCK_GAINED"
	EventCardsDrawn       EventType = "CARDS_DRAWN"
	EventWoundsHealed     EventType = "WOUNDS_HEALED"
	EventCrystalGained    EventType = "CRYSTAL_GAINED"
	EventManaTokenGained  EventType = "MANA_TOKEN_GAINED"
	EventManaSpent        EventType = "MANA_SPENT"
	EventSourceDieTaken   EventType = "SOURCE_DIE_TAKEN"
	EventSourceDieReroll  EventType = "SOURCE_DIE_REROLLED"
	EventUnitActivated    EventType = "UNIT_ACTIVATED"
	EventUnitRecruited    EventType = "UNIT_RECRUITED"
	EventUpkeepPaid       EventType = "UPKEEP_PAID"
	EventSkillUsed        EventType = "SKILL_USED"
	EventHeroMoved        EventType = "HERO_MOVED"

	// Modifier events
	EventModifierAdded   EventType = "MODIFIER_ADDED"
	EventModifierRemoved EventType = "MODIFIER_REMOVED"
	EventModifierExpired EventType = "MODIFIER_EXPIRED"

	// Choice events
	EventChoiceRequired EventType = "CHOICE_REQUIRED"
	EventChoiceResolved EventType = "CHOICE_RESOLVED"
	EventHexSelected    EventType = "HEX_SELECTED"

	// Combat events
	EventCombatStarted     EventType = "COMBAT_STARTED"
	EventCombatPhase       EventType = "COMBAT_PHASE_CHANGED"
	EventCombatEnded       EventType = "COMBAT_ENDED"
	EventRangedAttack      EventType = "RANGED_ATTACK_RESOLVED"
	EventEnemyBlocked      EventType = "ENEMY_BLOCKED"
	EventBlockFailed       EventType = "BLOCK_FAILED"
	EventEnemyDefeated     EventType = "ENEMY_DEFEATED"
	EventAttackFailed      EventType = "ATTACK_FAILED"
	EventAttackReduced     EventType = "MOVE_CONVERTED_TO_REDUCTION"
	EventDamageAssigned    EventType = "DAMAGE_ASSIGNED"
	EventWoundTaken        EventType = "WOUND_TAKEN"
	EventUnitWounded       EventType = "UNIT_WOUNDED"
	EventUnitResisted      EventType = "UNIT_RESISTED"
	EventBlockAssigned     EventType = "BLOCK_ASSIGNED"
	EventBlockUnassigned   EventType = "BLOCK_UNASSIGNED"

	// Turn and round events
	EventTurnEnded           EventType = "TURN_ENDED"
	EventTurnStarted         EventType = "TURN_STARTED"
	EventEndOfRoundAnnounced EventType = "END_OF_ROUND_ANNOUNCED"
	EventRoundEnded          EventType = "ROUND_ENDED"
	EventTimeOfDaySet        EventType = "TIME_OF_DAY_SET"

	// Outcome events
	EventInvalidAction EventType = "INVALID_ACTION"
	EventNoOp          EventType = "NO_OP"
	EventCommandUndone EventType = "COMMAND_UNDONE"
)

// Reason is a machine-checkable code attached to INVALID_ACTION events.
type Reason string

const (
	ReasonNotYourTurn           Reason = "NOT_YOUR_TURN"
	ReasonWrongPhase            Reason = "WRONG_PHASE"
	ReasonNotInCombat           Reason = "NOT_IN_COMBAT"
	ReasonInsufficientMove      Reason = "INSUFFICIENT_MOVE"
	ReasonInsufficientInfluence Reason = "INSUFFICIENT_INFLUENCE"
	ReasonInsufficientMana      Reason = "INSUFFICIENT_MANA"
	ReasonInsufficientBlock     Reason = "INSUFFICIENT_BLOCK"
	ReasonInsufficientAttack    Reason = "INSUFFICIENT_ATTACK"
	ReasonFortifiedTarget       Reason = "FORTIFIED_TARGET"
	ReasonCooldownUsed          Reason = "COOLDOWN_USED"
	ReasonSourceExhausted       Reason = "SOURCE_EXHAUSTED"
	ReasonManaColorUnusable     Reason = "MANA_COLOR_UNUSABLE"
	ReasonTargetIneligible      Reason = "TARGET_INELIGIBLE"
	ReasonTargetAlreadyResolved Reason = "TARGET_ALREADY_RESOLVED"
	ReasonChoicePending         Reason = "CHOICE_PENDING"
	ReasonNoChoicePending       Reason = "NO_CHOICE_PENDING"
	ReasonDamageUnassigned      Reason = "DAMAGE_UNASSIGNED"
	ReasonTerrainImpassable     Reason = "TERRAIN_IMPASSABLE"
	ReasonCardNotInHand         Reason = "CARD_NOT_IN_HAND"
	ReasonEffectNotResolvable   Reason = "EFFECT_NOT_RESOLVABLE"
)

// Event is a single descriptive record emitted by a command.
type Event struct {
	Type        EventType         `json:"type"`
	GameID      string            `json:"gameId,omitempty"`
	PlayerID    string            `json:"playerId,omitempty"`
	EnemyID     string            `json:"enemyId,omitempty"`
	CardID      string            `json:"cardId,omitempty"`
	UnitID      string            `json:"unitId,omitempty"`
	Element     Element           `json:"element,omitempty"`
	Amount      int               `json:"amount,omitempty"`
	Reason      Reason            `json:"reason,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
