// Package game is the rules kernel: a pure, single-threaded state
// transformer. Every operation is a (state, args) -> state' transform;
// previous state values stay valid for reads, which is what undo and replay
// consumers rely on. The Engine at the boundary owns the only mutable cell.
package game

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/mana"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/modifier"
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/effect"
)

// HeroArmor is the hero's armor against assigned combat damage.
const HeroArmor = 2

// HandLimit is the number of cards drawn up to at end of turn.
const HandLimit = 5

// AttackPool accumulates attack points by type and element.
type AttackPool map[rules.AttackType]map[rules.Element]int

// Add returns the pool with the amount added; nil maps are allocated lazily.
func (p AttackPool) Add(t rules.AttackType, e rules.Element, n int) AttackPool {
	out := p
	if out == nil {
		out = make(AttackPool)
	}
	if out[t] == nil {
		out[t] = make(map[rules.Element]int)
	}
	out[t][e] += n
	return out
}

// Get returns the accumulated amount for a type and element.
func (p AttackPool) Get(t rules.AttackType, e rules.Element) int {
	if p == nil || p[t] == nil {
		return 0
	}
	return p[t][e]
}

func (p AttackPool) clone() AttackPool {
	if p == nil {
		return nil
	}
	out := make(AttackPool, len(p))
	for t, m := range p {
		inner := make(map[rules.Element]int, len(m))
		for e, v := range m {
			inner[e] = v
		}
		out[t] = inner
	}
	return out
}

func cloneElemMap(m map[rules.Element]int) map[rules.Element]int {
	if m == nil {
		return nil
	}
	out := make(map[rules.Element]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Accumulator is the combat-relevant resource slice of a player: points
// gained this turn minus what has been spent or earmarked.
type Accumulator struct {
	Move           int `json:"move,omitempty"`
	SpentMove      int `json:"spentMove,omitempty"`
	Influence      int `json:"influence,omitempty"`
	SpentInfluence int `json:"spentInfluence,omitempty"`

	Block         map[rules.Element]int `json:"block,omitempty"`
	AssignedBlock map[rules.Element]int `json:"assignedBlock,omitempty"`

	Attack      AttackPool `json:"attack,omitempty"`
	SpentAttack AttackPool `json:"spentAttack,omitempty"`
}

// AvailableMove returns unspent movement points.
func (a Accumulator) AvailableMove() int { return a.Move - a.SpentMove }

// AvailableInfluence returns unspent influence points.
func (a Accumulator) AvailableInfluence() int { return a.Influence - a.SpentInfluence }

// AvailableBlock returns the per-element block pool not yet assigned to an
// enemy: accumulated minus already assigned.
func (a Accumulator) AvailableBlock(e rules.Element) int {
	return a.Block[e] - a.AssignedBlock[e]
}

// AvailableAttack returns unspent attack of a type and element.
func (a Accumulator) AvailableAttack(t rules.AttackType, e rules.Element) int {
	return a.Attack.Get(t, e) - a.SpentAttack.Get(t, e)
}

func (a Accumulator) clone() Accumulator {
	a.Block = cloneElemMap(a.Block)
	a.AssignedBlock = cloneElemMap(a.AssignedBlock)
	a.Attack = a.Attack.clone()
	a.SpentAttack = a.SpentAttack.clone()
	return a
}

// UnitInstance is one recruited unit and its per-combat bookkeeping.
type UnitInstance struct {
	ID      string `json:"id"`
	DefID   string `json:"defId"`
	Wounded bool   `json:"wounded,omitempty"`
	Spent   bool   `json:"spent,omitempty"`
	// UsedResistance marks a resistance consumed this combat; the unit
	// cannot absorb a second resisted attack until combat ends.
	UsedResistance bool `json:"usedResistance,omitempty"`
	// UpkeepPaid records the combat upkeep payment for mercenary units.
	UpkeepPaid bool `json:"upkeepPaid,omitempty"`
}

// SkillState tracks a skill's cooldown consumption.
type SkillState struct {
	UsedThisTurn  bool `json:"usedThisTurn,omitempty"`
	UsedThisRound bool `json:"usedThisRound,omitempty"`
}

// Player is one hero's full state.
type Player struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Armor    int         `json:"armor"`
	Position rules.Coord `json:"position"`

	Hand    []string `json:"hand"`
	Deck    []string `json:"deck"`
	Discard []string `json:"discard"`

	Units    []UnitInstance        `json:"units,omitempty"`
	Skills   []string              `json:"skills,omitempty"`
	SkillUse map[string]SkillState `json:"skillUse,omitempty"`

	Pool mana.Pool   `json:"pool"`
	Acc  Accumulator `json:"acc"`
	Fame int         `json:"fame,omitempty"`

	AnnouncedEndOfRound bool `json:"announcedEndOfRound,omitempty"`
}

// WoundsInHand counts wound cards currently clogging the hand.
func (p *Player) WoundsInHand() int {
	n := 0
	for _, c := range p.Hand {
		if c == woundCardID {
			n++
		}
	}
	return n
}

// Unit returns a pointer to the unit instance with the given id.
func (p *Player) Unit(id string) *UnitInstance {
	for i := range p.Units {
		if p.Units[i].ID == id {
			return &p.Units[i]
		}
	}
	return nil
}

func (p *Player) clone() *Player {
	out := *p
	out.Hand = append([]string(nil), p.Hand...)
	out.Deck = append([]string(nil), p.Deck...)
	out.Discard = append([]string(nil), p.Discard...)
	out.Units = append([]UnitInstance(nil), p.Units...)
	out.Skills = append([]string(nil), p.Skills...)
	if p.SkillUse != nil {
		out.SkillUse = make(map[string]SkillState, len(p.SkillUse))
		for k, v := range p.SkillUse {
			out.SkillUse[k] = v
		}
	}
	out.Pool = p.Pool.Clone()
	out.Acc = p.Acc.clone()
	return &out
}

// PendingChoice is a paused effect resolution awaiting a player selection.
type PendingChoice struct {
	PlayerID  string          `json:"playerId"`
	Options   []effect.Effect `json:"options"`
	Remaining []effect.Effect `json:"remaining,omitempty"`
	Source    modifier.Source `json:"source"`
}

// PendingHex is a paused terrain-cost-reduction selection: the player owes
// the engine a hex choice.
type PendingHex struct {
	PlayerID string          `json:"playerId"`
	Delta    int             `json:"delta"`
	Min      int             `json:"min"`
	Source   modifier.Source `json:"source"`
}

// GameState is the single global state value. It is never mutated in place
// by commands; Clone produces the next value to transform.
type GameState struct {
	ID        string          `json:"id"`
	Round     int             `json:"round"`
	TimeOfDay rules.TimeOfDay `json:"timeOfDay"`

	TurnOrder []string           `json:"turnOrder"`
	ActiveIdx int                `json:"activeIdx"`
	Players   map[string]*Player `json:"players"`

	Modifiers modifier.Store `json:"modifiers"`
	Source    mana.Source    `json:"source"`
	// RandSeed is the explicit RNG state threaded through dice commands.
	RandSeed int64 `json:"randSeed"`

	Combat     *CombatState   `json:"combat,omitempty"`
	Pending    *PendingChoice `json:"pending,omitempty"`
	PendingHex *PendingHex    `json:"pendingHex,omitempty"`

	// NextEnemyID numbers combat enemy instances deterministically.
	NextEnemyID int `json:"nextEnemyId"`
	// NextUnitID numbers recruited unit instances deterministically.
	NextUnitID int `json:"nextUnitId"`
}

// ActivePlayerID returns the id of the player whose turn it is.
func (s *GameState) ActivePlayerID() string {
	if len(s.TurnOrder) == 0 {
		return ""
	}
	return s.TurnOrder[s.ActiveIdx%len(s.TurnOrder)]
}

// Player returns the player with the given id, or nil.
func (s *GameState) Player(id string) *Player {
	return s.Players[id]
}

// Clone deep-copies the state. Commands clone, transform the copy, and
// return it; the original stays valid.
func (s *GameState) Clone() *GameState {
	out := *s
	out.TurnOrder = append([]string(nil), s.TurnOrder...)
	out.Players = make(map[string]*Player, len(s.Players))
	for id, p := range s.Players {
		out.Players[id] = p.clone()
	}
	out.Modifiers = modifier.Store{
		Modifiers: append([]modifier.ActiveModifier(nil), s.Modifiers.Modifiers...),
		NextID:    s.Modifiers.NextID,
	}
	out.Source = s.Source.Clone()
	if s.Combat != nil {
		out.Combat = s.Combat.clone()
	}
	if s.Pending != nil {
		p := *s.Pending
		p.Options = append([]effect.Effect(nil), s.Pending.Options...)
		p.Remaining = append([]effect.Effect(nil), s.Pending.Remaining...)
		out.Pending = &p
	}
	if s.PendingHex != nil {
		h := *s.PendingHex
		out.PendingHex = &h
	}
	return &out
}
