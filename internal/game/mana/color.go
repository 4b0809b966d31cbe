// Package mana implements crystals, mana tokens, and the Source dice pool.
// All types are values: operations return new values and never mutate the
// receiver, matching the engine's pure-transform discipline.
package mana

// Color represents a mana color.
type Color string

const (
	Red   Color = "RED"
	Blue  Color = "BLUE"
	Green Color = "GREEN"
	White Color = "WHITE"
	Gold  Color = "GOLD"
	Black Color = "BLACK"
)

// BasicColors are the four colors that can exist as crystals.
var BasicColors = []Color{Red, Blue, Green, White}

// AllColors lists every color a Source die can show.
var AllColors = []Color{Red, Blue, Green, White, Gold, Black}

// Basic reports whether the color can be stored as a crystal.
func (c Color) Basic() bool {
	switch c {
	case Red, Blue, Green, White:
		return true
	}
	return false
}
