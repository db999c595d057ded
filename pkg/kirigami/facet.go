package kirigami

// Orientation is the direction a facet looks at once the sheet is folded.
type Orientation uint8

const (
	// Upward is a riser: the facet stands vertically.
	Upward Orientation = iota + 1
	// Face is a tread: the facet faces the viewer.
	Face
)

// Facet is one unit cell of the flattened sheet.
type Facet struct {
	Orientation Orientation
	Depth       int
}

// Ordering is the result of comparing two facets.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// Compare orders facets by orientation first, Upward before Face, and by
// depth when orientations match. Depth never breaks an orientation tie.
func Compare(a, b Facet) Ordering {
	if a.Orientation != b.Orientation {
		if a.Orientation == Upward {
			return Less
		}
		return Greater
	}
	switch {
	case a.Depth < b.Depth:
		return Less
	case a.Depth > b.Depth:
		return Greater
	default:
		return Equal
	}
}
