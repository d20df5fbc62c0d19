package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/multiplex/pkg/cache"
	"github.com/matzehuels/multiplex/pkg/document"
	"github.com/matzehuels/multiplex/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. If c is nil, caching is disabled.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs layout and render for doc, serving artifacts from the cache
// where possible. Layout is skipped entirely when every requested format
// is cached.
func (r *Runner) Execute(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}
	result.Stats.Sections = doc.Sections()

	cacheable := !opts.NoCache && len(doc.Source) > 0
	if len(doc.Source) > 0 {
		result.DocHash = cache.Hash(doc.Source)
	}

	var missing []string
	for _, format := range opts.Formats {
		if cacheable {
			if data, ok := r.lookup(ctx, result.DocHash, format, opts); ok {
				result.Artifacts[format] = data
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		logger.Debug("served from cache", "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Layout
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, doc.Title, result.Stats.Sections)
	layoutStart := time.Now()
	c, err := Layout(ctx, doc, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	items := 0
	if c != nil {
		items = len(c.Items())
	}
	hooks.OnLayoutComplete(ctx, doc.Title, items, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.Items = items

	logger.Info("computed layout",
		"sections", result.Stats.Sections,
		"items", items,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderOpts := opts
	renderOpts.Formats = missing
	hooks.OnRenderStart(ctx, missing)
	renderStart := time.Now()
	artifacts, err := Render(c, doc.Title, renderOpts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, missing, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	logger.Info("rendered outputs",
		"formats", missing,
		"duration", result.Stats.RenderTime)

	for format, data := range artifacts {
		result.Artifacts[format] = data
		if cacheable {
			r.store(ctx, result.DocHash, format, data, opts)
		}
	}
	return result, nil
}

func (r *Runner) lookup(ctx context.Context, docHash, format string, opts Options) ([]byte, bool) {
	key := cache.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "error", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	return data, true
}

func (r *Runner) store(ctx context.Context, docHash, format string, data []byte, opts Options) {
	key := cache.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
