package io

import (
	"github.com/matzehuels/kirigami/pkg/kirigami"
)

// DefaultBasePlaneDepth is used when a pattern does not specify one.
const DefaultBasePlaneDepth = 2

// Pattern is a depth grid plus the base plane depth it should be folded with.
type Pattern struct {
	Name           string  `json:"name,omitempty" toml:"name"`
	BasePlaneDepth *int    `json:"base_plane_depth,omitempty" toml:"base_plane_depth"`
	Depths         [][]int `json:"depths" toml:"depths"`
}

// Base returns the pattern's base plane depth, or DefaultBasePlaneDepth
// when the document left it out.
func (p *Pattern) Base() int {
	if p.BasePlaneDepth == nil {
		return DefaultBasePlaneDepth
	}
	return *p.BasePlaneDepth
}

// WithBasePlaneDepth returns a copy of p using base as its base plane depth.
func (p Pattern) WithBasePlaneDepth(base int) Pattern {
	p.BasePlaneDepth = &base
	return p
}

// Configuration facetizes the pattern.
func (p *Pattern) Configuration() (*kirigami.Configuration, error) {
	return kirigami.FromDepths(p.Depths, p.Base())
}
