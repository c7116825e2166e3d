package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/observability"
	"github.com/matzehuels/carousel/pkg/render/sink"
	"github.com/matzehuels/carousel/pkg/scene"
)

// Runner runs the pipeline against a cache. It keeps no per-run state and
// may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. Nil arguments select a NullCache, the
// DefaultKeyer and log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute lays out sc and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, sc *scene.Scene, opts Options) (*Result, error) {
	r.defaultLogger(&opts)
	if err := opts.ValidateForRender(sc); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hash, err := SceneHash(sc)
	if err != nil {
		return nil, err
	}
	res := &Result{Scene: sc, SceneHash: hash, Stats: Stats{ItemCount: len(sc.Items)}}

	start := time.Now()
	lr, hit, err := r.GenerateLayoutWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Config, res.Width, res.Height, res.Targets = lr.Config, lr.Width, lr.Height, lr.Targets
	res.Stats.LayoutTime = time.Since(start)
	res.CacheInfo.LayoutHit = hit
	r.Logger.Info("computed layout", "items", len(lr.Targets), "active", lr.Config.ActiveItem,
		"cached", hit, "duration", res.Stats.LayoutTime)

	start = time.Now()
	if res.Snapshot, err = BuildSnapshot(sc, lr, opts); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if res.Artifacts, hit, err = r.RenderWithCacheInfo(ctx, hash, res.Snapshot, lr, opts); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Stats.RenderTime = time.Since(start)
	res.CacheInfo.RenderHit = hit
	r.Logger.Info("rendered outputs", "formats", opts.Formats, "at", opts.At,
		"cached", hit, "duration", res.Stats.RenderTime)

	return res, nil
}

// GenerateLayoutWithCacheInfo runs the layout stage, reporting whether the
// result came from the cache. Undecodable cache entries are recomputed.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options) (*LayoutResult, bool, error) {
	r.defaultLogger(&opts)
	if err := opts.ValidateForLayout(sc); err != nil {
		return nil, false, err
	}
	hash, err := SceneHash(sc)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, key); ok {
			if lr, err := UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, kindLayout)
				return lr, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, kindLayout)
	}

	lr, err := GenerateLayout(ctx, sc, opts)
	if err != nil {
		return nil, false, err
	}
	if data, err := MarshalLayout(lr); err == nil {
		r.store(ctx, kindLayout, key, data, cache.TTLLayout)
	}
	return lr, false, nil
}

// RenderWithCacheInfo renders snap in every requested format. It reports a
// hit only when all formats came from the cache; otherwise all are rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sceneHash string, snap sink.Snapshot, lr *LayoutResult, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	keys := make(map[string]string, len(opts.Formats))
	for _, f := range opts.Formats {
		keys[f] = r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(f))
	}

	if !opts.Refresh {
		if cached, ok := r.lookupAll(ctx, keys); ok {
			observability.Cache().OnCacheHit(ctx, kindArtifact)
			return cached, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, kindArtifact)
	}

	rendered, err := RenderSnapshot(snap, lr.Config, opts)
	if err != nil {
		return nil, false, err
	}
	for f, data := range rendered {
		r.store(ctx, kindArtifact, keys[f], data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close closes the cache.
func (r *Runner) Close() error { return r.Cache.Close() }

const (
	kindLayout   = "layout"
	kindArtifact = "artifact"
)

// lookup reads key, treating backend errors as misses.
func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "err", err)
		return nil, false
	}
	return data, hit
}

func (r *Runner) lookupAll(ctx context.Context, keys map[string]string) (map[string][]byte, bool) {
	out := make(map[string][]byte, len(keys))
	for f, key := range keys {
		data, ok := r.lookup(ctx, key)
		if !ok {
			return nil, false
		}
		out[f] = data
	}
	return out, true
}

// store writes data under key. A failed write is logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func (r *Runner) defaultLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
