package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/kirigami/pkg/cache"
	kerrors "github.com/matzehuels/kirigami/pkg/errors"
	pkgio "github.com/matzehuels/kirigami/pkg/io"
	"github.com/matzehuels/kirigami/pkg/kirigami"
)

// LoadPattern resolves the pattern named by opts and applies the base plane
// depth override. The returned pattern always carries an explicit base.
func LoadPattern(opts Options) (*pkgio.Pattern, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	var p pkgio.Pattern
	if opts.Pattern != nil {
		p = *opts.Pattern
	} else {
		if err := kerrors.ValidatePath(opts.PatternPath); err != nil {
			return nil, err
		}
		loaded, err := pkgio.Import(opts.PatternPath)
		if err != nil {
			return nil, err
		}
		p = *loaded
	}

	base := p.Base()
	if opts.BasePlaneDepth != nil {
		base = *opts.BasePlaneDepth
	}
	p = p.WithBasePlaneDepth(base)
	return &p, nil
}

// Facetize builds the configuration of p.
func Facetize(p *pkgio.Pattern) (*kirigami.Configuration, error) {
	return p.Configuration()
}

// PatternHash hashes the content of p that affects rendering.
func PatternHash(p *pkgio.Pattern) string {
	data, _ := json.Marshal(struct {
		Name   string  `json:"name"`
		Base   int     `json:"base"`
		Depths [][]int `json:"depths"`
	}{p.Name, p.Base(), p.Depths})
	return cache.Hash(data)
}
