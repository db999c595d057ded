package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
	"github.com/matzehuels/kirigami/pkg/kirigami"
	"github.com/matzehuels/kirigami/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, cfg *kirigami.Configuration, name string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, cfg, name, format, svgOpts, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, cfg *kirigami.Configuration, name, format string, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(cfg, svgOpts...)
	case FormatPNG:
		return sink.RenderPNG(ctx, cfg, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, cfg, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONName(name)}
		if opts.sorted() {
			jsonOpts = append(jsonOpts, sink.WithJSONSortedLines())
		}
		return sink.RenderJSON(cfg, jsonOpts...)
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// buildSVGOptions translates pipeline options into SVG sink options.
func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	var svgOpts []sink.SVGOption

	if opts.CellWidth != 0 || opts.CellHeight != 0 {
		svgOpts = append(svgOpts, sink.WithCellSize(opts.CellWidth, opts.CellHeight))
	}
	if opts.PageWidth != 0 || opts.PageHeight != 0 {
		svgOpts = append(svgOpts, sink.WithPageSize(opts.PageWidth, opts.PageHeight))
	}
	if opts.PreserveAspect != nil {
		svgOpts = append(svgOpts, sink.WithPreserveAspectRatio(*opts.PreserveAspect))
	}
	if len(opts.Styles) > 0 {
		styles, err := sink.ParseLineStyles(opts.Styles)
		if err != nil {
			return nil, err
		}
		svgOpts = append(svgOpts, sink.WithLineStyles(styles))
	}
	if opts.sorted() {
		svgOpts = append(svgOpts, sink.WithSortedLines())
	}

	return svgOpts, nil
}
