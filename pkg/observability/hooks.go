// Package observability lets a host program watch the carousel without the
// core packages importing a metrics backend.
//
// Three hook sets exist, one per event source. Each starts as a no-op and can
// be replaced once at startup:
//
//	observability.SetCarouselHooks(passMetrics{})
//
// Emitters fetch the current set on every event:
//
//	observability.Carousel().OnTap(ctx, from, to)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// CarouselHooks receives layout pass and tap events from a carousel control.
type CarouselHooks interface {
	OnPassStart(ctx context.Context, passID string, items int)
	OnPassComplete(ctx context.Context, passID string, items int, duration time.Duration, err error)
	// OnPassSkipped fires when a pass is requested before the first load.
	OnPassSkipped(ctx context.Context, reason string)
	// OnTap fires when a tap moved the active item.
	OnTap(ctx context.Context, from, to int)
}

// CacheHooks receives pipeline cache events. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives one event per request served by "carousel serve".
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

type NoopCarouselHooks struct{}

func (NoopCarouselHooks) OnPassStart(context.Context, string, int)                          {}
func (NoopCarouselHooks) OnPassComplete(context.Context, string, int, time.Duration, error) {}
func (NoopCarouselHooks) OnPassSkipped(context.Context, string)                             {}
func (NoopCarouselHooks) OnTap(context.Context, int, int)                                   {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// slot holds one registered hook set. Reads are lock-free because emitters
// sit on the tap and render paths.
type slot[H any] struct {
	noop H
	cur  atomic.Pointer[H]
}

func (s *slot[H]) get() H {
	if h := s.cur.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[H]) set(h H) { s.cur.Store(&h) }
func (s *slot[H]) reset()  { s.cur.Store(nil) }

var (
	carouselSlot = slot[CarouselHooks]{noop: NoopCarouselHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetCarouselHooks installs h. A nil h is ignored.
func SetCarouselHooks(h CarouselHooks) {
	if h != nil {
		carouselSlot.set(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Carousel() CarouselHooks { return carouselSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores the no-op hooks. Tests use it to undo SetXHooks.
func Reset() {
	carouselSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
