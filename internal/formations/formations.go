// Package formations holds the static tactical formation catalog used by the
// squad builder. Pitch coordinates are percentages from the top-left of the
// pitch graphic, attacking upward.
package formations

// Position is one slot on the pitch.
type Position struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Formation is a named arrangement of eleven positions.
type Formation struct {
	Name      string     `json:"name"`
	Label     string     `json:"label"`
	Positions []Position `json:"positions"`
}

var catalog = []Formation{
	{
		Name:  "4-3-3",
		Label: "4-3-3 (Attack)",
		Positions: []Position{
			{ID: "gk", Label: "GK", X: 50, Y: 90},
			{ID: "lb", Label: "LB", X: 20, Y: 70},
			{ID: "cb1", Label: "CB", X: 38, Y: 70},
			{ID: "cb2", Label: "CB", X: 62, Y: 70},
			{ID: "rb", Label: "RB", X: 80, Y: 70},
			{ID: "cm1", Label: "CM", X: 30, Y: 45},
			{ID: "cm2", Label: "CM", X: 50, Y: 45},
			{ID: "cm3", Label: "CM", X: 70, Y: 45},
			{ID: "lw", Label: "LW", X: 20, Y: 20},
			{ID: "st", Label: "ST", X: 50, Y: 15},
			{ID: "rw", Label: "RW", X: 80, Y: 20},
		},
	},
	{
		Name:  "4-4-2",
		Label: "4-4-2 (Balanced)",
		Positions: []Position{
			{ID: "gk", Label: "GK", X: 50, Y: 90},
			{ID: "lb", Label: "LB", X: 20, Y: 70},
			{ID: "cb1", Label: "CB", X: 38, Y: 70},
			{ID: "cb2", Label: "CB", X: 62, Y: 70},
			{ID: "rb", Label: "RB", X: 80, Y: 70},
			{ID: "lm", Label: "LM", X: 20, Y: 45},
			{ID: "cm1", Label: "CM", X: 38, Y: 45},
			{ID: "cm2", Label: "CM", X: 62, Y: 45},
			{ID: "rm", Label: "RM", X: 80, Y: 45},
			{ID: "st1", Label: "ST", X: 38, Y: 20},
			{ID: "st2", Label: "ST", X: 62, Y: 20},
		},
	},
	{
		Name:  "3-5-2",
		Label: "3-5-2 (Wing Play)",
		Positions: []Position{
			{ID: "gk", Label: "GK", X: 50, Y: 90},
			{ID: "cb1", Label: "CB", X: 30, Y: 70},
			{ID: "cb2", Label: "CB", X: 50, Y: 70},
			{ID: "cb3", Label: "CB", X: 70, Y: 70},
			{ID: "lwb", Label: "LWB", X: 15, Y: 50},
			{ID: "cm1", Label: "CM", X: 35, Y: 45},
			{ID: "cm2", Label: "CM", X: 50, Y: 45},
			{ID: "cm3", Label: "CM", X: 65, Y: 45},
			{ID: "rwb", Label: "RWB", X: 85, Y: 50},
			{ID: "st1", Label: "ST", X: 38, Y: 20},
			{ID: "st2", Label: "ST", X: 62, Y: 20},
		},
	},
	{
		Name:  "4-2-3-1",
		Label: "4-2-3-1 (Modern)",
		Positions: []Position{
			{ID: "gk", Label: "GK", X: 50, Y: 90},
			{ID: "lb", Label: "LB", X: 20, Y: 70},
			{ID: "cb1", Label: "CB", X: 38, Y: 70},
			{ID: "cb2", Label: "CB", X: 62, Y: 70},
			{ID: "rb", Label: "RB", X: 80, Y: 70},
			{ID: "cdm1", Label: "CDM", X: 38, Y: 55},
			{ID: "cdm2", Label: "CDM", X: 62, Y: 55},
			{ID: "lm", Label: "LM", X: 20, Y: 35},
			{ID: "cam", Label: "CAM", X: 50, Y: 35},
			{ID: "rm", Label: "RM", X: 80, Y: 35},
			{ID: "st", Label: "ST", X: 50, Y: 15},
		},
	},
	{
		Name:  "3-4-3",
		Label: "3-4-3 (Attack)",
		Positions: []Position{
			{ID: "gk", Label: "GK", X: 50, Y: 90},
			{ID: "cb1", Label: "CB", X: 30, Y: 70},
			{ID: "cb2", Label: "CB", X: 50, Y: 70},
			{ID: "cb3", Label: "CB", X: 70, Y: 70},
			{ID: "cm1", Label: "CM", X: 25, Y: 45},
			{ID: "cm2", Label: "CM", X: 42, Y: 45},
			{ID: "cm3", Label: "CM", X: 58, Y: 45},
			{ID: "cm4", Label: "CM", X: 75, Y: 45},
			{ID: "lw", Label: "LW", X: 20, Y: 20},
			{ID: "st", Label: "ST", X: 50, Y: 15},
			{ID: "rw", Label: "RW", X: 80, Y: 20},
		},
	},
	{
		Name:  "5-3-2",
		Label: "5-3-2 (Defensive)",
		Positions: []Position{
			{ID: "gk", Label: "GK", X: 50, Y: 90},
			{ID: "cb1", Label: "CB", X: 20, Y: 70},
			{ID: "cb2", Label: "CB", X: 35, Y: 70},
			{ID: "cb3", Label: "CB", X: 50, Y: 70},
			{ID: "cb4", Label: "CB", X: 65, Y: 70},
			{ID: "cb5", Label: "CB", X: 80, Y: 70},
			{ID: "cm1", Label: "CM", X: 30, Y: 45},
			{ID: "cm2", Label: "CM", X: 50, Y: 45},
			{ID: "cm3", Label: "CM", X: 70, Y: 45},
			{ID: "st1", Label: "ST", X: 38, Y: 20},
			{ID: "st2", Label: "ST", X: 62, Y: 20},
		},
	},
	{
		Name:  "5-4-1",
		Label: "5-4-1 (Ultra Defensive)",
		Positions: []Position{
			{ID: "gk", Label: "GK", X: 50, Y: 90},
			{ID: "cb1", Label: "CB", X: 20, Y: 70},
			{ID: "cb2", Label: "CB", X: 35, Y: 70},
			{ID: "cb3", Label: "CB", X: 50, Y: 70},
			{ID: "cb4", Label: "CB", X: 65, Y: 70},
			{ID: "cb5", Label: "CB", X: 80, Y: 70},
			{ID: "cm1", Label: "CM", X: 25, Y: 45},
			{ID: "cm2", Label: "CM", X: 42, Y: 45},
			{ID: "cm3", Label: "CM", X: 58, Y: 45},
			{ID: "cm4", Label: "CM", X: 75, Y: 45},
			{ID: "st", Label: "ST", X: 50, Y: 15},
		},
	},
}

// All returns the formation catalog in display order.
func All() []Formation {
	return catalog
}

// Get returns the formation with the given name.
func Get(name string) (Formation, bool) {
	for _, f := range catalog {
		if f.Name == name {
			return f, true
		}
	}
	return Formation{}, false
}

// ValidSlots reports whether every key in slots is a position ID of the named
// formation. It is used to reject squad saves that reference slots the
// formation does not have.
func ValidSlots(name string, slots map[string]string) bool {
	f, ok := Get(name)
	if !ok {
		return false
	}
	ids := make(map[string]bool, len(f.Positions))
	for _, p := range f.Positions {
		ids[p.ID] = true
	}
	for id := range slots {
		if !ids[id] {
			return false
		}
	}
	return true
}
