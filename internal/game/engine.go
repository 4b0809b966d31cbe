package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/content"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// sourceDiceExtra is added to the player count to size the Source.
const sourceDiceExtra = 2

type gameEntry struct {
	state *GameState
	// history holds pre-execution snapshots for reversible commands. An
	// irreversible command empties it: everything before the boundary is
	// out of reach.
	history []*GameState
}

// Engine owns every live game. It is the only mutable cell in the rules
// kernel; all state transforms inside are pure.
type Engine struct {
	mu    sync.RWMutex
	log   *zap.Logger
	games map[string]*gameEntry
}

// NewEngine creates an empty engine.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log, games: make(map[string]*gameEntry)}
}

// CreateGame builds a fresh game for the named players. The same seed and
// player list always produce the same opening state.
func (e *Engine) CreateGame(playerNames []string, seed int64) (*GameState, error) {
	if len(playerNames) == 0 {
		return nil, fmt.Errorf("a game needs at least one player")
	}

	rng := rand.New(rand.NewSource(seed))
	st := &GameState{
		ID:          uuid.NewString(),
		Round:       1,
		TimeOfDay:   rules.Day,
		Players:     make(map[string]*Player, len(playerNames)),
		Modifiers:   modifier.NewStore(),
		NextEnemyID: 1,
		NextUnitID:  1,
	}
	for i, name := range playerNames {
		id := fmt.Sprintf("player-%d", i+1)
		deck := content.StarterDeck()
		rng.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })

		hand := deck[:HandLimit]
		deck = deck[HandLimit:]
		st.Players[id] = &Player{
			ID:       id,
			Name:     name,
			Armor:    HeroArmor,
			Hand:     append([]string(nil), hand...),
			Deck:     append([]string(nil), deck...),
			Pool:     mana.NewPool(),
			SkillUse: make(map[string]SkillState),
		}
		st.TurnOrder = append(st.TurnOrder, id)
	}
	st.Source, st.RandSeed = mana.Roll(len(playerNames)+sourceDiceExtra, rng.Int63())

	e.mu.Lock()
	e.games[st.ID] = &gameEntry{state: st}
	e.mu.Unlock()

	e.log.Info("game created",
		zap.String("game_id", st.ID),
		zap.Int("players", len(playerNames)),
		zap.Int64("seed", seed))
	return st.Clone(), nil
}

// Process executes a command against a game. The stored state only moves
// forward when the command succeeds; rule violations return their events
// with the state untouched.
func (e *Engine) Process(gameID string, cmd Command) (*GameState, []rules.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.games[gameID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	next, events, err := cmd.Execute(entry.state)
	if err != nil {
		e.log.Error("command failed",
			zap.String("game_id", gameID),
			zap.String("command", cmd.Name()),
			zap.Error(err))
		return nil, nil, err
	}
	if next == nil {
		e.log.Debug("command rejected",
			zap.String("game_id", gameID),
			zap.String("command", cmd.Name()),
			zap.Int("events", len(events)))
		return entry.state.Clone(), events, nil
	}

	if cmd.Reversible() {
		entry.history = append(entry.history, entry.state)
	} else {
		entry.history = nil
	}
	entry.state = next

	e.log.Info("command applied",
		zap.String("game_id", gameID),
		zap.String("command", cmd.Name()),
		zap.Bool("reversible", cmd.Reversible()),
		zap.Int("events", len(events)))
	return next.Clone(), events, nil
}

// Undo restores the state before the last reversible command. Commands
// behind an irreversible boundary cannot be taken back.
func (e *Engine) Undo(gameID, playerID string) (*GameState, []rules.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.games[gameID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if len(entry.history) == 0 {
		return nil, nil, ErrNotUndoable
	}
	if entry.state.ActivePlayerID() != playerID {
		return nil, []rules.Event{{
			Type: rules.EventInvalidAction, GameID: gameID, PlayerID: playerID,
			Reason: rules.ReasonNotYourTurn, Description: "only the active player may undo",
		}}, nil
	}

	entry.state = entry.history[len(entry.history)-1]
	entry.history = entry.history[:len(entry.history)-1]

	e.log.Info("command undone",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.Int("history_left", len(entry.history)))
	return entry.state.Clone(), []rules.Event{{
		Type: rules.EventCommandUndone, GameID: gameID, PlayerID: playerID,
	}}, nil
}

// State returns a copy of a game's current state.
func (e *Engine) State(gameID string) (*GameState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entry, ok := e.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return entry.state.Clone(), nil
}

// RestoreGame installs a deserialized state, replacing any loaded game
// with the same id. The undo history does not survive a restore.
func (e *Engine) RestoreGame(st *GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.games[st.ID] = &gameEntry{state: st.Clone()}
}

// GameIDs lists the loaded games.
func (e *Engine) GameIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.games))
	for id := range e.games {
		ids = append(ids, id)
	}
	return ids
}
