package kirigami

import (
	"math"
	"slices"
	"testing"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
)

func u(d int) Facet { return Facet{Orientation: Upward, Depth: d} }
func f(d int) Facet { return Facet{Orientation: Face, Depth: d} }

func TestFacetize(t *testing.T) {
	tests := []struct {
		name   string
		depths []int
		base   int
		want   []Facet
	}{
		{
			name:   "flat column",
			depths: []int{0, 0},
			base:   2,
			want:   []Facet{u(0), u(0), f(0), f(0)},
		},
		{
			name:   "single voxel",
			depths: []int{1, 0},
			base:   2,
			want:   []Facet{u(0), f(1), u(1), f(0)},
		},
		{
			name:   "one step",
			depths: []int{1, 0, 0},
			base:   2,
			want:   []Facet{u(0), f(1), u(1), f(0), f(0)},
		},
		{
			name:   "two steps",
			depths: []int{1, 1, 0},
			base:   2,
			want:   []Facet{u(0), f(1), f(1), u(2), f(0)},
		},
		{
			name:   "ascending step pads with filler",
			depths: []int{0, 1, 0, 0, 0},
			base:   5,
			want:   []Facet{u(0), u(0), u(0), u(0), u(0), f(1), u(0), f(0), f(0), f(0)},
		},
		{
			name:   "no base plane",
			depths: []int{1, 1},
			base:   0,
			want:   []Facet{f(1), f(1)},
		},
		{
			name:   "no background rows pads with faces",
			depths: []int{},
			base:   3,
			want:   []Facet{f(0), f(0), f(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Facetize(tt.depths, tt.base)
			if err != nil {
				t.Fatalf("Facetize() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Facetize(%v, %d) = %v, want %v", tt.depths, tt.base, got, tt.want)
			}
		})
	}
}

func TestFacetizeAllZero(t *testing.T) {
	for base := 0; base < 4; base++ {
		for h := 1; h < 4; h++ {
			got, err := Facetize(make([]int, h), base)
			if err != nil {
				t.Fatalf("Facetize(zeros(%d), %d) error: %v", h, base, err)
			}
			if len(got) != base+h {
				t.Fatalf("len = %d, want %d", len(got), base+h)
			}
			for i, fc := range got {
				want := f(0)
				if i < base {
					want = u(0)
				}
				if fc != want {
					t.Errorf("base=%d h=%d: facet %d = %+v, want %+v", base, h, i, fc, want)
				}
			}
		}
	}
}

func TestFacetizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		depths []int
		base   int
		code   kerrors.Code
	}{
		{"negative base", []int{0}, -1, kerrors.ErrCodeInvalidDimensions},
		{"negative depth", []int{-1, 0}, 1, kerrors.ErrCodeInvalidDepth},
		{"depth above background height", []int{3, 0}, 4, kerrors.ErrCodeInvalidDepth},
		{"overflow on descent", []int{2, 0}, 0, kerrors.ErrCodeInvalidDimensions},
		{"overflow on filler", []int{0, 2, 0, 2}, 0, kerrors.ErrCodeInvalidDimensions},
		{"base at max int", []int{0}, math.MaxInt, kerrors.ErrCodeInvalidDimensions},
		{"base over max cells", []int{0}, MaxCells, kerrors.ErrCodeInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Facetize(tt.depths, tt.base)
			if err == nil {
				t.Fatal("Facetize() should fail")
			}
			if !kerrors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", kerrors.GetCode(err), tt.code)
			}
			if !kerrors.IsValidation(err) {
				t.Errorf("IsValidation(%v) = false, want true", err)
			}
		})
	}
}

func TestColumnStateStep(t *testing.T) {
	dst := make([]Facet, 4)
	st := columnState{depth: 2}

	st, err := st.step(dst, 0, 1, 2)
	if err != nil {
		t.Fatalf("step() error: %v", err)
	}
	if want := (columnState{depth: 1, baseDepth: 1, k: 2}); st != want {
		t.Errorf("after descent: state = %+v, want %+v", st, want)
	}

	st, err = st.step(dst, 1, 0, 2)
	if err != nil {
		t.Fatalf("step() error: %v", err)
	}
	if want := (columnState{depth: 0, baseDepth: 1, k: 3}); st != want {
		t.Errorf("after second descent: state = %+v, want %+v", st, want)
	}
	if !slices.Equal(dst[:3], []Facet{u(0), f(1), u(1)}) {
		t.Errorf("written facets = %v", dst[:3])
	}
}
