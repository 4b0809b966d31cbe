package mana

import (
	"math/rand"

	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// Die is one Source die.
type Die struct {
	Color Color `json:"color"`
	// Taken marks a die consumed this turn; it is rerolled and returned
	// when the turn ends.
	Taken bool `json:"taken,omitempty"`
}

// Source is the shared dice pool. It is a value like everything else in
// this package; rolls also return the advanced RNG seed so the same seed
// always replays to the same dice.
type Source struct {
	Dice []Die `json:"dice"`
	// UsedThisTurn counts dice taken by the active player this turn. The
	// allowance is one plus whatever modifiers grant (counted-dice rule).
	UsedThisTurn int `json:"usedThisTurn,omitempty"`
}

// rollColor draws one die face from the rng.
func rollColor(rng *rand.Rand) Color {
	return AllColors[rng.Intn(len(AllColors))]
}

// Roll creates a freshly rolled Source of n dice from the given seed and
// returns the advanced seed for the next consumer.
func Roll(n int, seed int64) (Source, int64) {
	rng := rand.New(rand.NewSource(seed))
	dice := make([]Die, n)
	for i := range dice {
		dice[i] = Die{Color: rollColor(rng)}
	}
	return Source{Dice: dice}, rng.Int63()
}

// Clone returns an independent copy of the source.
func (s Source) Clone() Source {
	out := Source{UsedThisTurn: s.UsedThisTurn}
	out.Dice = append([]Die(nil), s.Dice...)
	return out
}

// Usable reports whether the die at index i can be taken at the given time
// of day. Gold dice are dead at night, black dice by day.
func (s Source) Usable(i int, tod rules.TimeOfDay) bool {
	if i < 0 || i >= len(s.Dice) {
		return false
	}
	d := s.Dice[i]
	if d.Taken {
		return false
	}
	switch d.Color {
	case Gold:
		return tod == rules.Day
	case Black:
		return tod == rules.Night
	}
	return true
}

// Take consumes the die at index i, yielding its color as a mana token for
// the taking player. The caller enforces the per-turn allowance.
func (s Source) Take(i int) (Source, Color, bool) {
	if i < 0 || i >= len(s.Dice) || s.Dice[i].Taken {
		return s, "", false
	}
	out := s.Clone()
	out.Dice[i].Taken = true
	out.UsedThisTurn++
	return out, out.Dice[i].Color, true
}

// Reroll rerolls the die at index i in place and returns the advanced seed.
// Used by effects that manipulate the Source; the reroll is irreversible.
func (s Source) Reroll(i int, seed int64) (Source, int64, bool) {
	if i < 0 || i >= len(s.Dice) {
		return s, seed, false
	}
	rng := rand.New(rand.NewSource(seed))
	out := s.Clone()
	out.Dice[i].Color = rollColor(rng)
	return out, rng.Int63(), true
}

// EndTurn rerolls every taken die, returns them to the pool, and resets the
// per-turn use counter.
func (s Source) EndTurn(seed int64) (Source, int64) {
	rng := rand.New(rand.NewSource(seed))
	out := s.Clone()
	for i := range out.Dice {
		if out.Dice[i].Taken {
			out.Dice[i] = Die{Color: rollColor(rng)}
		}
	}
	out.UsedThisTurn = 0
	return out, rng.Int63()
}
