package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgeo/pkg/cache"
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/observability"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different requests.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Widgets *widget.Registry
	Logger  *log.Logger

	// TTL overrides cache.TTLLayout and cache.TTLArtifact when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache, keyer and widgets.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If widgets is nil, the default registry is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, widgets *widget.Registry, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if widgets == nil {
		widgets = widget.Default(widget.Settings{})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Widgets: widgets,
		Logger:  logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, req widget.Request, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	res, hash, layoutHit, err := r.LayoutWithCacheInfo(ctx, req, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Geometry = res
	result.LayoutHash = hash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"kind", res.Kind,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	formats, skipped := opts.FormatsFor(res.Kind)
	if len(formats) == 0 {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"format %s is only available for sankey charts", skipped[0])
	}
	for _, f := range skipped {
		logger.Debug("skipping format", "kind", res.Kind, "format", f)
	}
	opts.Formats = formats
	result.Skipped = skipped

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	for _, data := range artifacts {
		result.Stats.Bytes += len(data)
	}

	logger.Info("rendered outputs",
		"formats", formats,
		"bytes", result.Stats.Bytes,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the geometry for req with caching. It returns
// the geometry, the hash of its encoding and whether it came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, req widget.Request, refresh bool) (widget.Result, string, bool, error) {
	kind, err := r.Widgets.Resolve(string(req.Kind))
	if err != nil {
		return widget.Result{}, "", false, err
	}
	req.Kind = kind

	reqData, err := json.Marshal(req)
	if err != nil {
		return widget.Result{}, "", false, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode %s request", kind)
	}
	cacheKey := r.Keyer.LayoutKey(string(kind), cache.Hash(reqData))

	// Try cache first (unless refresh requested)
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if res, err := r.Widgets.DecodeResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return res, cache.Hash(data), true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(kind))
	start := time.Now()
	res, err := r.Widgets.Render(req)
	hooks.OnLayoutComplete(ctx, string(kind), time.Since(start), err)
	if err != nil {
		return widget.Result{}, "", false, err
	}

	data, err := json.Marshal(res)
	if err != nil {
		return widget.Result{}, "", false, errors.Wrap(errors.ErrCodeInternal, err, "encode %s geometry", kind)
	}
	r.store(ctx, cacheKey, "layout", data, r.ttl(cache.TTLLayout))

	return res, cache.Hash(data), false, nil // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache info.
func (r *Runner) Layout(ctx context.Context, req widget.Request) (widget.Result, error) {
	res, _, _, err := r.LayoutWithCacheInfo(ctx, req, false)
	return res, err
}

// RenderWithCacheInfo generates artifacts for res with caching and returns
// whether every artifact came from cache. layoutHash identifies res.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res widget.Result, layoutHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(res.Kind), opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, res, layoutHash, opts)
	hooks.OnRenderComplete(ctx, string(res.Kind), opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, cacheKey, "artifact", data, r.ttl(cache.TTLArtifact))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res widget.Result, layoutHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, layoutHash, opts)
	return artifacts, err
}

// Hit computes (or loads) the geometry for req and hit-tests in against it.
func (r *Runner) Hit(ctx context.Context, req widget.Request, in widget.Interaction) (widget.Hit, bool, error) {
	res, err := r.Layout(ctx, req)
	if err != nil {
		return widget.Hit{}, false, err
	}
	return r.Widgets.Hit(res, in)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
