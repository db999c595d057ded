package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact of a pattern.
	ArtifactKey(patternHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format         string            `json:"format"`
	BasePlaneDepth int               `json:"base_plane_depth"`
	CellWidth      float64           `json:"cell_width,omitempty"`
	CellHeight     float64           `json:"cell_height,omitempty"`
	PageWidth      float64           `json:"page_width,omitempty"`
	PageHeight     float64           `json:"page_height,omitempty"`
	PreserveAspect bool              `json:"preserve_aspect"`
	Styles         map[string]string `json:"styles,omitempty"`
	Sorted         bool              `json:"sorted,omitempty"`
	Scale          float64           `json:"scale,omitempty"`
}

// DefaultKeyer builds keys of the form "artifact:<format>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the pattern hash with opts. Map keys in opts.Styles are
// serialized in sorted order, so equal option sets give equal keys.
func (DefaultKeyer) ArtifactKey(patternHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), patternHash, opts)
}
