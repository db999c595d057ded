// Package pipeline runs the load → facetize → render pipeline shared by the
// CLI render command and the HTTP server.
//
// # Stages
//
//  1. Load: read a pattern file (JSON, TOML or CSV) or take an inline pattern
//  2. Facetize: build a [kirigami.Configuration] and scan its lines
//  3. Render: produce the requested formats (SVG, JSON, PDF, PNG)
//
// Rendered artifacts are cached by pattern content and render options, so a
// repeated render of an unchanged pattern is served from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    PatternPath: "examples/stairs.json",
//	    Formats:     []string{"svg"},
//	    PageWidth:   210,
//	    PageHeight:  297,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kirigami/pkg/cache"
	kerrors "github.com/matzehuels/kirigami/pkg/errors"
	pkgio "github.com/matzehuels/kirigami/pkg/io"
	"github.com/matzehuels/kirigami/pkg/kirigami"
	"github.com/matzehuels/kirigami/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultWorkers bounds the goroutines used for line scanning.
	DefaultWorkers = 4
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of PatternPath and Pattern is set.
	PatternPath    string         `json:"pattern_path,omitempty"`
	Pattern        *pkgio.Pattern `json:"pattern,omitempty"`
	BasePlaneDepth *int           `json:"base_plane_depth,omitempty"` // overrides the pattern's value
	Refresh        bool           `json:"refresh,omitempty"`

	// Render options
	Formats        []string          `json:"formats,omitempty"`
	CellWidth      float64           `json:"cell_width,omitempty"`
	CellHeight     float64           `json:"cell_height,omitempty"`
	PageWidth      float64           `json:"page_width,omitempty"`
	PageHeight     float64           `json:"page_height,omitempty"`
	PreserveAspect *bool             `json:"preserve_aspect_ratio,omitempty"`
	Styles         map[string]string `json:"styles,omitempty"` // keyed by cut, mountain, valley
	Sorted         *bool             `json:"sorted,omitempty"`
	Scale          float64           `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Workers int         `json:"-"`
	Logger  *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Pattern is the loaded pattern with its effective base plane depth.
	Pattern *pkgio.Pattern

	// PatternHash is the content hash used for cache keys.
	PatternHash string

	// Configuration is the facetized sheet.
	Configuration *kirigami.Configuration

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width        int
	Height       int
	Lines        LineStats
	LoadTime     time.Duration
	FacetizeTime time.Duration
	RenderTime   time.Duration
}

// LineStats counts lines per style.
type LineStats struct {
	Cut      int `json:"cut"`
	Mountain int `json:"mountain"`
	Valley   int `json:"valley"`
}

// Total returns the number of lines of every style.
func (s LineStats) Total() int { return s.Cut + s.Mountain + s.Valley }

// CountLines tallies lines by style.
func CountLines(lines []kirigami.Line) LineStats {
	var s LineStats
	for _, l := range lines {
		switch l.Style {
		case kirigami.Cut:
			s.Cut++
		case kirigami.MountainFold:
			s.Mountain++
		case kirigami.ValleyFold:
			s.Valley++
		}
	}
	return s
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool            // Whether all artifacts came from cache
	Hits      map[string]bool // Per-format hits
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return kerrors.New(kerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the pattern source fields.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.PatternPath == "" && o.Pattern == nil:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "pattern path or inline pattern is required")
	case o.PatternPath != "" && o.Pattern != nil:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "pattern path and inline pattern are mutually exclusive")
	}
	if o.BasePlaneDepth != nil && *o.BasePlaneDepth < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidDimensions,
			"base plane depth must be non-negative, got %d", *o.BasePlaneDepth)
	}
	if o.BasePlaneDepth != nil && *o.BasePlaneDepth >= kirigami.MaxCells {
		return kerrors.New(kerrors.ErrCodeInvalidDimensions,
			"base plane depth must be below %d, got %d", kirigami.MaxCells, *o.BasePlaneDepth)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PreserveAspect == nil {
		on := true
		o.PreserveAspect = &on
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.CellWidth != 0 || o.CellHeight != 0 {
		if err := kerrors.ValidateSize("cell size", o.CellWidth, o.CellHeight); err != nil {
			return err
		}
	}
	if o.PageWidth != 0 || o.PageHeight != 0 {
		if err := kerrors.ValidateSize("page size", o.PageWidth, o.PageHeight); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.Scale)
	}
	if _, err := sink.ParseLineStyles(o.Styles); err != nil {
		return err
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string, basePlaneDepth int) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:         format,
		BasePlaneDepth: basePlaneDepth,
		CellWidth:      o.CellWidth,
		CellHeight:     o.CellHeight,
		PageWidth:      o.PageWidth,
		PageHeight:     o.PageHeight,
		PreserveAspect: o.PreserveAspect == nil || *o.PreserveAspect,
		Styles:         o.Styles,
		Sorted:         o.sorted(),
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// String summarizes the render options for debug logs.
func (o *Options) String() string {
	return fmt.Sprintf("formats=%v cell=%gx%g page=%gx%g sorted=%v",
		o.Formats, o.CellWidth, o.CellHeight, o.PageWidth, o.PageHeight, o.sorted())
}

// sorted reports whether lines are written in canonical order. Unset means no.
func (o *Options) sorted() bool {
	return o.Sorted != nil && *o.Sorted
}

// source names the pattern being loaded, for hooks.
func (o *Options) source() string {
	if o.PatternPath != "" {
		return o.PatternPath
	}
	if o.Pattern != nil && o.Pattern.Name != "" {
		return o.Pattern.Name
	}
	return "inline"
}
