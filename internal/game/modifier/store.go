package modifier

// Store is the append-only-until-expired list of active modifiers. It is a
// value: every operation returns a new Store and leaves the receiver's
// backing data untouched, so previous game states stay valid for undo and
// replay.
type Store struct {
	Modifiers []ActiveModifier `json:"modifiers"`
	// NextID is the monotonic id counter threaded through state instead of
	// a global, keeping the engine replay-deterministic.
	NextID int64 `json:"nextId"`
}

// NewStore returns an empty store with the id counter primed.
func NewStore() Store {
	return Store{NextID: 1}
}

// TriggerKind names the four expiration events.
type TriggerKind string

const (
	TriggerTurnEnd   TriggerKind = "TURN_END"
	TriggerTurnStart TriggerKind = "TURN_START"
	TriggerCombatEnd TriggerKind = "COMBAT_END"
	TriggerRoundEnd  TriggerKind = "ROUND_END"
)

// Trigger is one expiration event. PlayerID is meaningful only for the
// turn-scoped triggers.
type Trigger struct {
	Kind     TriggerKind
	PlayerID string
}

// TurnEnd builds the trigger fired when the given player's turn ends.
func TurnEnd(playerID string) Trigger { return Trigger{Kind: TriggerTurnEnd, PlayerID: playerID} }

// TurnStart builds the trigger fired when the given player's turn begins.
func TurnStart(playerID string) Trigger { return Trigger{Kind: TriggerTurnStart, PlayerID: playerID} }

// CombatEnd builds the trigger fired when a combat concludes.
func CombatEnd() Trigger { return Trigger{Kind: TriggerCombatEnd} }

// RoundEnd builds the trigger fired when the round ends.
func RoundEnd() Trigger { return Trigger{Kind: TriggerRoundEnd} }

// Add validates the modifier, assigns it a fresh id, and returns the new
// store plus the stored modifier.
func (s Store) Add(m ActiveModifier) (Store, ActiveModifier, error) {
	if err := m.Validate(); err != nil {
		return s, ActiveModifier{}, err
	}
	m.ID = s.NextID

	out := Store{NextID: s.NextID + 1}
	out.Modifiers = make([]ActiveModifier, 0, len(s.Modifiers)+1)
	out.Modifiers = append(out.Modifiers, s.Modifiers...)
	out.Modifiers = append(out.Modifiers, m)
	return out, m, nil
}

// Remove drops the modifier with the given id. Removing an id that is not
// present is a no-op, so removal stays idempotent across replays.
func (s Store) Remove(id int64) Store {
	out := Store{NextID: s.NextID}
	out.Modifiers = make([]ActiveModifier, 0, len(s.Modifiers))
	for _, m := range s.Modifiers {
		if m.ID != id {
			out.Modifiers = append(out.Modifiers, m)
		}
	}
	return out
}

// expires reports whether the modifier is removed by the trigger.
func expires(m ActiveModifier, t Trigger) bool {
	switch t.Kind {
	case TriggerTurnEnd:
		return m.Duration == DurationTurn && m.CreatedByPlayerID == t.PlayerID
	case TriggerTurnStart:
		return m.Duration == DurationUntilNextTurn && m.CreatedByPlayerID == t.PlayerID
	case TriggerCombatEnd:
		return m.Duration == DurationCombat
	case TriggerRoundEnd:
		return m.Duration == DurationRound
	}
	return false
}

// Expire runs one expiration sweep and returns the surviving store along
// with the modifiers that were removed, for event emission. Callers must
// invoke each trigger exactly once per triggering event.
func (s Store) Expire(t Trigger) (Store, []ActiveModifier) {
	out := Store{NextID: s.NextID}
	out.Modifiers = make([]ActiveModifier, 0, len(s.Modifiers))
	var removed []ActiveModifier
	for _, m := range s.Modifiers {
		if expires(m, t) {
			removed = append(removed, m)
		} else {
			out.Modifiers = append(out.Modifiers, m)
		}
	}
	return out, removed
}

// ForPlayer returns modifiers whose scope resolves to the given player.
func (s Store) ForPlayer(playerID string) []ActiveModifier {
	var out []ActiveModifier
	for _, m := range s.Modifiers {
		switch m.Scope.Kind {
		case ScopeSelf:
			if m.CreatedByPlayerID == playerID {
				out = append(out, m)
			}
		case ScopeAllPlayers:
			out = append(out, m)
		case ScopeOtherPlayers:
			if m.CreatedByPlayerID != playerID {
				out = append(out, m)
			}
		}
	}
	return out
}

// ForEnemy returns modifiers whose scope resolves to the given enemy
// instance.
func (s Store) ForEnemy(enemyID string) []ActiveModifier {
	var out []ActiveModifier
	for _, m := range s.Modifiers {
		switch m.Scope.Kind {
		case ScopeOneEnemy:
			if m.Scope.EnemyID == enemyID {
				out = append(out, m)
			}
		case ScopeAllEnemies:
			out = append(out, m)
		}
	}
	return out
}
