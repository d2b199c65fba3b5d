package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRegistry(t *testing.T) {
	Reset()
	defer Reset()

	ctx := context.Background()
	Pager().OnPageComplete(ctx, "s1", 0, 9, 120, time.Second, nil)
	Cache().OnCacheSet(ctx, "count", 2)
	HTTP().OnResponse(ctx, "GET", "/api/diagrams", 200, time.Second)

	if _, ok := Pager().(NoopPagerHooks); !ok {
		t.Errorf("default pager hooks = %T", Pager())
	}

	pager, cache, http := &testPagerHooks{}, &testCacheHooks{}, &testHTTPHooks{}
	SetPagerHooks(pager)
	SetCacheHooks(cache)
	SetHTTPHooks(http)
	SetPagerHooks(nil)

	if Pager() != pager || Cache() != cache || HTTP() != http {
		t.Error("installed hooks not returned")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("after Reset cache hooks = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("after Reset HTTP hooks = %T", HTTP())
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	hooks := NewLogHooks(logger)
	hooks.Register()

	ctx := context.Background()
	Pager().OnPageComplete(ctx, "abc", 2, 9, 40, time.Millisecond, nil)
	Pager().OnPageComplete(ctx, "abc", 3, 0, 0, 0, errors.New("boom"))
	Cache().OnCacheHit(ctx, "count")
	HTTP().OnResponse(ctx, "GET", "/healthz", 503, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"page complete", "session=abc", "page failed", "boom", "cache hit", "status=503"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPagerHooks struct{ NoopPagerHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
