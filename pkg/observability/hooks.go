// Package observability lets the autofeyn libraries report what they do
// without depending on a logging or metrics backend.
//
// The pager, the count cache and the HTTP server each call a small hook
// interface. Until an application installs its own implementation the
// hooks are no-ops. The serve command installs [LogHooks]:
//
//	observability.NewLogHooks(logger).Register()
//	defer observability.Reset()
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PagerHooks observes page requests and the life of browsing sessions.
type PagerHooks interface {
	OnPageStart(ctx context.Context, sessionID string, page int)
	// OnPageComplete fires once per page request. attempts is the number of
	// complete pairings the page inspected; err is set when the page failed.
	OnPageComplete(ctx context.Context, sessionID string, page, diagrams, attempts int, duration time.Duration, err error)

	OnSessionCreated(ctx context.Context, sessionID string)
	OnSessionExpired(ctx context.Context, sessionID string)
	OnSessionDeleted(ctx context.Context, sessionID string)
}

// CacheHooks observes the count cache. keyType names the kind of entry.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes API requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

type NoopPagerHooks struct{}

func (NoopPagerHooks) OnPageStart(context.Context, string, int)                                   {}
func (NoopPagerHooks) OnPageComplete(context.Context, string, int, int, int, time.Duration, error) {}
func (NoopPagerHooks) OnSessionCreated(context.Context, string)                                   {}
func (NoopPagerHooks) OnSessionExpired(context.Context, string)                                   {}
func (NoopPagerHooks) OnSessionDeleted(context.Context, string)                                   {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the installed implementation of one hook interface.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }

func (s *slot[T]) reset() { s.p.Store(nil) }

var (
	pagerSlot = slot[PagerHooks]{noop: NoopPagerHooks{}}
	cacheSlot = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot  = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPagerHooks installs h. A nil h is ignored.
func SetPagerHooks(h PagerHooks) {
	if h != nil {
		pagerSlot.set(h)
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

func Pager() PagerHooks { return pagerSlot.get() }
func Cache() CacheHooks { return cacheSlot.get() }
func HTTP() HTTPHooks   { return httpSlot.get() }

// Reset uninstalls every hook.
func Reset() {
	pagerSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
