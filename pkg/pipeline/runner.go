package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/kirigami/pkg/cache"
	pkgio "github.com/matzehuels/kirigami/pkg/io"
	"github.com/matzehuels/kirigami/pkg/kirigami"
	"github.com/matzehuels/kirigami/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the HTTP server use it.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → facetize → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])
	logger.Debug("starting pipeline", "options", opts.String())

	result := &Result{RunID: runID}
	hooks := observability.Pipeline()

	// Stage 1: Load
	source := opts.source()
	hooks.OnLoadStart(ctx, source)
	loadStart := time.Now()
	p, err := LoadPattern(opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	hooks.OnLoadComplete(ctx, source, len(p.Depths), time.Since(loadStart), nil)
	result.Pattern = p
	result.PatternHash = PatternHash(p)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Facetize and scan
	hooks.OnFacetizeStart(ctx, len(p.Depths), p.Base())
	facetizeStart := time.Now()
	cfg, err := Facetize(p)
	if err != nil {
		hooks.OnFacetizeComplete(ctx, 0, time.Since(facetizeStart), err)
		return nil, fmt.Errorf("facetize: %w", err)
	}
	lines, err := cfg.CollectLinesConcurrent(ctx, opts.Workers)
	if err != nil {
		hooks.OnFacetizeComplete(ctx, 0, time.Since(facetizeStart), err)
		return nil, fmt.Errorf("scan: %w", err)
	}
	hooks.OnFacetizeComplete(ctx, len(lines), time.Since(facetizeStart), nil)
	result.Configuration = cfg
	result.Stats.Width = cfg.Width()
	result.Stats.Height = cfg.Height()
	result.Stats.Lines = CountLines(lines)
	result.Stats.FacetizeTime = time.Since(facetizeStart)

	logger.Info("facetized pattern",
		"width", cfg.Width(),
		"height", cfg.Height(),
		"lines", result.Stats.Lines.Total(),
		"duration", result.Stats.FacetizeTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, cfg, p, result.PatternHash, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", info.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders the formats of opts, serving what it can from
// the cache and rendering the rest.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, cfg *kirigami.Configuration, p *pkgio.Pattern, patternHash string, opts Options) (map[string][]byte, CacheInfo, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, CacheInfo{}, err
	}

	cacheHooks := observability.Cache()
	info := CacheInfo{Hits: make(map[string]bool, len(opts.Formats))}
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(patternHash, opts.ArtifactKeyOpts(format, p.Base()))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				info.Hits[format] = true
				cacheHooks.OnCacheHit(ctx, format)
				continue
			} else if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		info.RenderHit = true
		return artifacts, info, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, cfg, p.Name, renderOpts)
	if err != nil {
		return nil, info, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(patternHash, opts.ArtifactKeyOpts(format, p.Base()))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}

	return artifacts, info, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
