package pipeline

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
)

// RenderConfig is the on-disk render configuration:
//
//	cell_size = [10, 10]
//	page_size = [210, 297]
//	preserve_aspect_ratio = true
//	formats = ["svg", "pdf"]
//
//	[styles]
//	cut = "stroke:rgb(0,0,0);stroke-width:1"
type RenderConfig struct {
	CellSize            []float64         `toml:"cell_size"`
	PageSize            []float64         `toml:"page_size"`
	PreserveAspectRatio *bool             `toml:"preserve_aspect_ratio"`
	Formats             []string          `toml:"formats"`
	Styles              map[string]string `toml:"styles"`
	Sorted              *bool             `toml:"sorted"`
	Scale               float64           `toml:"scale"`
}

// LoadRenderConfig reads a TOML render configuration file.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	if err := kerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "render config not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRenderConfig(f)
}

// ReadRenderConfig decodes a TOML render configuration. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func ReadRenderConfig(r io.Reader) (*RenderConfig, error) {
	var cfg RenderConfig
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode render config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, kerrors.New(kerrors.ErrCodeInvalidFormat,
			"unknown render config keys: %s", strings.Join(keys, ", "))
	}
	if err := checkPair("cell_size", cfg.CellSize); err != nil {
		return nil, err
	}
	if err := checkPair("page_size", cfg.PageSize); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func checkPair(name string, v []float64) error {
	if v != nil && len(v) != 2 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "%s must be [width, height], got %d values", name, len(v))
	}
	return nil
}

// Apply fills the fields of opts that are still unset. Values already in opts
// (from flags or request parameters) take precedence. Styles merge per name.
func (c *RenderConfig) Apply(opts *Options) {
	if opts.CellWidth == 0 && opts.CellHeight == 0 && len(c.CellSize) == 2 {
		opts.CellWidth, opts.CellHeight = c.CellSize[0], c.CellSize[1]
	}
	if opts.PageWidth == 0 && opts.PageHeight == 0 && len(c.PageSize) == 2 {
		opts.PageWidth, opts.PageHeight = c.PageSize[0], c.PageSize[1]
	}
	if opts.PreserveAspect == nil && c.PreserveAspectRatio != nil {
		on := *c.PreserveAspectRatio
		opts.PreserveAspect = &on
	}
	if len(opts.Formats) == 0 && len(c.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Formats...)
	}
	if len(c.Styles) > 0 {
		merged := make(map[string]string, len(c.Styles)+len(opts.Styles))
		for k, v := range c.Styles {
			merged[k] = v
		}
		for k, v := range opts.Styles {
			merged[k] = v
		}
		opts.Styles = merged
	}
	if opts.Sorted == nil && c.Sorted != nil {
		on := *c.Sorted
		opts.Sorted = &on
	}
	if opts.Scale == 0 && c.Scale != 0 {
		opts.Scale = c.Scale
	}
}
