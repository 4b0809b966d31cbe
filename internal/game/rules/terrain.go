package rules

// Impassable is returned as the cost of terrain that cannot be entered by
// normal movement (mountains, lakes).
const Impassable = -1

// terrainCost holds the day and night movement cost columns.
type terrainCost struct {
	day   int
	night int
}

var terrainCosts = map[Terrain]terrainCost{
	TerrainPlains:    {day: 2, night: 2},
	TerrainHills:     {day: 3, night: 3},
	TerrainForest:    {day: 3, night: 5},
	TerrainWasteland: {day: 4, night: 4},
	TerrainDesert:    {day: 5, night: 3},
	TerrainSwamp:     {day: 5, night: 5},
	TerrainCity:      {day: 2, night: 2},
	TerrainMountain:  {day: Impassable, night: Impassable},
	TerrainLake:      {day: Impassable, night: Impassable},
}

// BaseMoveCost returns the unmodified movement cost of a terrain at the
// given time of day, or Impassable.
func BaseMoveCost(t Terrain, tod TimeOfDay) int {
	c, ok := terrainCosts[t]
	if !ok {
		return Impassable
	}
	if tod == Night {
		return c.night
	}
	return c.day
}

// Passable reports whether the terrain can be entered at all.
func Passable(t Terrain, tod TimeOfDay) bool {
	return BaseMoveCost(t, tod) != Impassable
}
