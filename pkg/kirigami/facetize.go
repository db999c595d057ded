package kirigami

import (
	kerrors "github.com/matzehuels/kirigami/pkg/errors"
)

// columnState is the accumulator folded over the depths of one column.
type columnState struct {
	depth     int // level the profile currently rests on
	baseDepth int // number of Face steps placed so far
	k         int // write cursor
}

// Facetize flattens one column of depths into basePlaneDepth+len(depths)
// facets, top row first.
//
// Every depth must lie in [0, len(depths)]. A profile whose steps would need
// more rows than the sheet has is rejected rather than truncated.
func Facetize(depths []int, basePlaneDepth int) ([]Facet, error) {
	if basePlaneDepth < 0 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidDimensions, "base plane depth must be >= 0, got %d", basePlaneDepth)
	}
	if err := checkSize(1, len(depths), basePlaneDepth); err != nil {
		return nil, err
	}
	out := make([]Facet, basePlaneDepth+len(depths))
	if err := facetizeInto(out, depths, basePlaneDepth); err != nil {
		return nil, err
	}
	return out, nil
}

// facetizeInto fills dst, whose length is the sheet height.
func facetizeInto(dst []Facet, depths []int, basePlaneDepth int) error {
	background := len(depths)
	for j, d := range depths {
		if d < 0 || d > background {
			return kerrors.New(kerrors.ErrCodeInvalidDepth,
				"depth %d at row %d outside [0, %d]", d, j, background)
		}
	}

	st := columnState{depth: basePlaneDepth}
	for j, d := range depths {
		var err error
		st, err = st.step(dst, j, d, basePlaneDepth)
		if err != nil {
			return err
		}
	}
	for st.k < len(dst) {
		dst[st.k] = Facet{Orientation: Face}
		st.k++
	}
	return nil
}

// step consumes the depth d read at input row j.
func (st columnState) step(dst []Facet, j, d, basePlaneDepth int) (columnState, error) {
	if d <= st.depth {
		for n := st.depth; n > d; n-- {
			if err := st.emit(dst, j, Facet{Orientation: Upward, Depth: st.baseDepth}); err != nil {
				return st, err
			}
		}
		st.depth = d
		if d != 0 {
			st.baseDepth++
			if err := st.emit(dst, j, Facet{Orientation: Face, Depth: d}); err != nil {
				return st, err
			}
		}
		return st, nil
	}

	for st.baseDepth < j-1 {
		f := Facet{Orientation: Upward}
		if st.k >= basePlaneDepth {
			f.Orientation = Face
			st.baseDepth++
		}
		if err := st.emit(dst, j, f); err != nil {
			return st, err
		}
	}
	if err := st.emit(dst, j, Facet{Orientation: Face, Depth: d}); err != nil {
		return st, err
	}
	st.depth = d
	return st, nil
}

// emit writes f at the cursor and advances it.
func (st *columnState) emit(dst []Facet, j int, f Facet) error {
	if st.k >= len(dst) {
		return kerrors.New(kerrors.ErrCodeInvalidDimensions,
			"depth profile overflows a sheet of height %d at input row %d", len(dst), j)
	}
	dst[st.k] = f
	st.k++
	return nil
}
