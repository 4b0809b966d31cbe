package mana

import (
	"github.com/mage-knight-digital/MageKnight-sub007/internal/game/rules"
)

// CrystalCap is the inventory limit per basic color.
const CrystalCap = 3

// Pool holds a player's crystals and this turn's mana tokens. Crystals
// persist between turns; tokens are discarded by the end-of-turn sweep.
type Pool struct {
	Crystals map[Color]int `json:"crystals,omitempty"`
	Tokens   map[Color]int `json:"tokens,omitempty"`
}

// NewPool returns an empty pool.
func NewPool() Pool {
	return Pool{}
}

func copyCounts(m map[Color]int) map[Color]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[Color]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the pool.
func (p Pool) Clone() Pool {
	return Pool{Crystals: copyCounts(p.Crystals), Tokens: copyCounts(p.Tokens)}
}

// AddCrystal adds one crystal, respecting the inventory cap. The second
// return reports whether the crystal fit.
func (p Pool) AddCrystal(c Color) (Pool, bool) {
	if !c.Basic() || p.Crystals[c] >= CrystalCap {
		return p, false
	}
	out := p.Clone()
	if out.Crystals == nil {
		out.Crystals = make(map[Color]int)
	}
	out.Crystals[c]++
	return out, true
}

// AddToken adds one mana token for the current turn.
func (p Pool) AddToken(c Color) Pool {
	out := p.Clone()
	if out.Tokens == nil {
		out.Tokens = make(map[Color]int)
	}
	out.Tokens[c]++
	return out
}

// ClearTokens drops all tokens; invoked by the end-of-turn sweep.
func (p Pool) ClearTokens() Pool {
	return Pool{Crystals: copyCounts(p.Crystals)}
}

// wild reports whether color w can stand in for a basic color at the given
// time of day. Gold is wild by day and dead at night; black the reverse.
func wild(w Color, tod rules.TimeOfDay) bool {
	switch w {
	case Gold:
		return tod == rules.Day
	case Black:
		return tod == rules.Night
	}
	return false
}

// CanPay reports whether the pool can produce one mana of the given basic
// color at the given time of day.
func (p Pool) CanPay(c Color, tod rules.TimeOfDay) bool {
	if p.Tokens[c] > 0 || p.Crystals[c] > 0 {
		return true
	}
	for _, w := range []Color{Gold, Black} {
		if p.Tokens[w] > 0 && wild(w, tod) && c.Basic() {
			return true
		}
	}
	return false
}

// Pay consumes one mana of the given color: exact token first, then wild
// token, then crystal. Returns the new pool and whether payment succeeded.
func (p Pool) Pay(c Color, tod rules.TimeOfDay) (Pool, bool) {
	if p.Tokens[c] > 0 {
		out := p.Clone()
		out.Tokens[c]--
		if out.Tokens[c] == 0 {
			delete(out.Tokens, c)
		}
		return out, true
	}
	if c.Basic() {
		for _, w := range []Color{Gold, Black} {
			if p.Tokens[w] > 0 && wild(w, tod) {
				out := p.Clone()
				out.Tokens[w]--
				if out.Tokens[w] == 0 {
					delete(out.Tokens, w)
				}
				return out, true
			}
		}
	}
	if p.Crystals[c] > 0 {
		out := p.Clone()
		out.Crystals[c]--
		if out.Crystals[c] == 0 {
			delete(out.Crystals, c)
		}
		return out, true
	}
	return p, false
}
