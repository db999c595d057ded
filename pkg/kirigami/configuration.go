package kirigami

import (
	"iter"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
)

// MaxCells bounds the number of facets in one sheet, width times
// BasePlaneDepth + BackgroundPlaneHeight.
const MaxCells = 1 << 24

// checkSize rejects sheets whose facet count would exceed MaxCells. The
// comparisons are arranged so that none of them can overflow.
func checkSize(width, background, basePlaneDepth int) error {
	if basePlaneDepth > MaxCells-background {
		return kerrors.New(kerrors.ErrCodeInvalidDimensions,
			"base plane depth %d with %d background rows exceeds %d cells", basePlaneDepth, background, MaxCells)
	}
	if height := basePlaneDepth + background; height > 0 && width > MaxCells/height {
		return kerrors.New(kerrors.ErrCodeInvalidDimensions,
			"sheet of %d columns and %d rows exceeds %d cells", width, height, MaxCells)
	}
	return nil
}

// Configuration is a facetized sheet: a width x height facet grid plus the
// geometry it was built from. It is immutable after FromDepths returns.
type Configuration struct {
	facets                []Facet // column-major, len = width*height
	width                 int
	basePlaneDepth        int
	backgroundPlaneHeight int
}

// FromDepths facetizes a [column][row] depth grid.
//
// The grid must have at least one column and every column must have the
// same number of rows, which becomes the background plane height. Each
// depth must lie in [0, background plane height].
func FromDepths(depths [][]int, basePlaneDepth int) (*Configuration, error) {
	if len(depths) == 0 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidDimensions, "depth grid has no columns")
	}
	if basePlaneDepth < 0 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidDimensions, "base plane depth must be >= 0, got %d", basePlaneDepth)
	}
	background := len(depths[0])
	for c, col := range depths {
		if len(col) != background {
			return nil, kerrors.New(kerrors.ErrCodeInvalidDimensions,
				"depth grid is not rectangular: column %d has %d rows, want %d", c, len(col), background)
		}
	}
	if err := checkSize(len(depths), background, basePlaneDepth); err != nil {
		return nil, err
	}

	cfg := &Configuration{
		width:                 len(depths),
		basePlaneDepth:        basePlaneDepth,
		backgroundPlaneHeight: background,
	}
	height := cfg.Height()
	cfg.facets = make([]Facet, cfg.width*height)
	for c, col := range depths {
		if err := facetizeInto(cfg.facets[c*height:(c+1)*height], col, basePlaneDepth); err != nil {
			return nil, kerrors.Wrap(kerrors.GetCode(err), err, "column %d", c)
		}
	}

	// A grid that breaks the support invariant is a facetizer defect; surface
	// it here instead of in the middle of a later scan.
	for c := range cfg.width {
		if _, err := foldLines(c, cfg.column(c), basePlaneDepth, func(Line) bool { return true }); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Width is the number of columns.
func (c *Configuration) Width() int { return c.width }

// Height is the flattened sheet height, BasePlaneDepth + BackgroundPlaneHeight.
func (c *Configuration) Height() int { return c.basePlaneDepth + c.backgroundPlaneHeight }

// BasePlaneDepth is the number of support rows above the picture.
func (c *Configuration) BasePlaneDepth() int { return c.basePlaneDepth }

// BackgroundPlaneHeight is the number of rows read from the depth grid.
func (c *Configuration) BackgroundPlaneHeight() int { return c.backgroundPlaneHeight }

// At returns the facet at (column, row) and whether the position is inside
// the grid.
func (c *Configuration) At(column, row int) (Facet, bool) {
	if column < 0 || column >= c.width || row < 0 || row >= c.Height() {
		return Facet{}, false
	}
	return c.facets[column*c.Height()+row], true
}

// Column returns a copy of one column, top row first. It returns nil when
// column is out of range.
func (c *Configuration) Column(column int) []Facet {
	if column < 0 || column >= c.width {
		return nil
	}
	out := make([]Facet, c.Height())
	copy(out, c.column(column))
	return out
}

func (c *Configuration) column(i int) []Facet {
	h := c.Height()
	return c.facets[i*h : (i+1)*h : (i+1)*h]
}

// Lines returns every cut and fold line: the boundary between each pair of
// neighbouring columns first, left to right, then the inside of each column,
// left to right. The sequence is recomputed on every iteration.
//
// Iteration panics with an INTERNAL_ERROR *errors.Error if the grid breaks
// the support invariant, which FromDepths already rules out.
func (c *Configuration) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		if err := c.scan(yield); err != nil {
			panic(err)
		}
	}
}

// CollectLines materialises Lines, returning invariant violations as errors.
func (c *Configuration) CollectLines() ([]Line, error) {
	var lines []Line
	err := c.scan(func(l Line) bool {
		lines = append(lines, l)
		return true
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Configuration) scan(yield func(Line) bool) error {
	for i := 0; i+1 < c.width; i++ {
		if !cutLines(i, c.column(i), c.column(i+1), yield) {
			return nil
		}
	}
	for j := range c.width {
		more, err := foldLines(j, c.column(j), c.basePlaneDepth, yield)
		if err != nil || !more {
			return err
		}
	}
	return nil
}
