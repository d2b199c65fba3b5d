package pager

import (
	"context"
	"encoding/json"
	stdio "io"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/autofeyn/pkg/cache"
	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/io"
	"github.com/matzehuels/autofeyn/pkg/observability"
	"github.com/matzehuels/autofeyn/pkg/session"
)

func annihilation() *io.Request {
	return &io.Request{
		IncomingElectrons: []string{"i1"},
		IncomingPositrons: []string{"i2"},
		OutgoingPhotons:   []string{"o1"},
		Interactions:      []string{"v1", "v2", "v3"},
	}
}

// allDiagrams enumerates req directly, without paging.
func allDiagrams(t *testing.T, req *io.Request) []io.Diagram {
	t.Helper()
	g, err := req.Graph()
	if err != nil {
		t.Fatal(err)
	}
	var out []io.Diagram
	for c := range diagram.Enumerate(g).All() {
		out = append(out, io.Export(c))
	}
	return out
}

func newTestRunner() *Runner {
	return NewRunner(session.NewMemoryStore(), nil, nil, log.New(stdio.Discard))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	if r.Store == nil || r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("nil dependency not defaulted: %+v", r)
	}
	if r.PageSize != 9 {
		t.Errorf("PageSize = %d, want 9", r.PageSize)
	}
}

func TestPage_Sequence(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner()
	want := allDiagrams(t, annihilation())

	tests := []struct {
		index, offset, n int
		more             bool
	}{
		{0, 0, 9, true},
		{1, 9, 9, true},
		{2, 18, 6, false},
		{3, 24, 0, false},
	}

	var got []io.Diagram
	for i, tt := range tests {
		req := annihilation()
		if i > 0 {
			req = nil
		}
		page, err := r.Page(ctx, "s1", req)
		if err != nil {
			t.Fatalf("page %d: %v", i, err)
		}
		if page.SessionID != "s1" || page.Index != tt.index || page.Offset != tt.offset {
			t.Errorf("page %d: got uid=%s index=%d offset=%d", i, page.SessionID, page.Index, page.Offset)
		}
		if len(page.Diagrams) != tt.n || page.More != tt.more {
			t.Errorf("page %d: got %d diagrams more=%v, want %d more=%v", i, len(page.Diagrams), page.More, tt.n, tt.more)
		}
		got = append(got, page.Diagrams...)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("paged diagrams differ from a direct enumeration")
	}
}

func TestPage_LookaheadIsNotSkipped(t *testing.T) {
	ctx := context.Background()
	want := allDiagrams(t, annihilation())

	for _, size := range []int{1, 5, 23, 24, 25} {
		r := newTestRunner()
		r.PageSize = size

		var got []io.Diagram
		for i := 0; ; i++ {
			page, err := r.Page(ctx, "s", annihilation())
			if err != nil {
				t.Fatal(err)
			}
			got = append(got, page.Diagrams...)
			if wantMore := len(got) < len(want); page.More != wantMore {
				t.Errorf("size %d page %d: more=%v, want %v", size, i, page.More, wantMore)
			}
			if !page.More {
				break
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("size %d: got %d diagrams, want the full %d in order", size, len(got), len(want))
		}
	}
}

func TestPage_IgnoresRequestForExistingSession(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner()
	if _, err := r.Page(ctx, "s", annihilation()); err != nil {
		t.Fatal(err)
	}
	other := &io.Request{Interactions: []string{"a", "b"}}
	page, err := r.Page(ctx, "s", other)
	if err != nil {
		t.Fatal(err)
	}
	if page.Index != 1 || len(page.Diagrams) != 9 {
		t.Errorf("existing session should continue: index=%d n=%d", page.Index, len(page.Diagrams))
	}
}

func TestPage_GeneratedID(t *testing.T) {
	r := newTestRunner()
	page, err := r.Page(context.Background(), "", annihilation())
	if err != nil {
		t.Fatal(err)
	}
	if page.SessionID == "" {
		t.Fatal("expected generated session id")
	}
	next, err := r.Page(context.Background(), page.SessionID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if next.Index != 1 {
		t.Errorf("Index = %d, want 1", next.Index)
	}
}

func TestPage_Errors(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner()

	tests := []struct {
		name string
		uid  string
		req  *io.Request
		code errors.Code
	}{
		{"unknown session", "missing", nil, errors.ErrCodeSessionNotFound},
		{"bad session id", "../x", annihilation(), errors.ErrCodeInvalidInput},
		{"duplicate names", "dup", &io.Request{IncomingElectrons: []string{"a"}, Interactions: []string{"a"}}, errors.ErrCodeInvalidInput},
		{"bad name", "bad", &io.Request{Interactions: []string{"v-1"}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Page(ctx, tt.uid, tt.req)
			if !errors.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestPage_Expired(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	r := NewRunner(store, nil, nil, log.New(stdio.Discard))

	if _, err := r.Page(ctx, "s", annihilation()); err != nil {
		t.Fatal(err)
	}
	expire(t, store, "s")

	_, err := r.Page(ctx, "s", nil)
	if !errors.Is(err, errors.ErrCodeSessionExpired) {
		t.Fatalf("expected SESSION_EXPIRED, got %v", err)
	}

	// With request data an expired session starts over.
	if _, err := r.Page(ctx, "s", annihilation()); err != nil {
		t.Fatal(err)
	}
	expire(t, store, "s")
	page, err := r.Page(ctx, "s", annihilation())
	if err != nil {
		t.Fatal(err)
	}
	if page.Index != 0 {
		t.Errorf("restarted session should be at page 0, got %d", page.Index)
	}
}

func expire(t *testing.T, store session.Store, uid string) {
	t.Helper()
	ctx := context.Background()
	sess, err := store.Get(ctx, uid)
	if err != nil || sess == nil {
		t.Fatalf("Get(%s): %v, %v", uid, sess, err)
	}
	sess.ExpiresAt = time.Now().Add(-time.Second)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}
}

func TestPage_CorruptCursor(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	r := NewRunner(store, nil, nil, log.New(stdio.Discard))
	if _, err := r.Page(ctx, "s", annihilation()); err != nil {
		t.Fatal(err)
	}

	sess, _ := store.Get(ctx, "s")
	sess.Cursor.Frames[0].Via = 3
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Page(ctx, "s", nil); !errors.Is(err, errors.ErrCodeInvalidCursor) {
		t.Errorf("expected INVALID_CURSOR, got %v", err)
	}
}

func TestPage_FileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var got []io.Diagram
	for i := 0; i < 3; i++ {
		// A fresh runner per call: all state must come from the store.
		r := NewRunner(store, nil, nil, log.New(stdio.Discard))
		page, err := r.Page(ctx, "cli", annihilation())
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, page.Diagrams...)
	}
	if !reflect.DeepEqual(got, allDiagrams(t, annihilation())) {
		t.Error("file-backed paging differs from a direct enumeration")
	}
}

func TestPage_ConcurrentSameSession(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner()
	if _, err := r.Page(ctx, "s", annihilation()); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	indexes := make(map[int]bool)
	var g errgroup.Group
	for range 2 {
		g.Go(func() error {
			page, err := r.Page(ctx, "s", nil)
			if err != nil {
				return err
			}
			mu.Lock()
			indexes[page.Index] = true
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if !indexes[1] || !indexes[2] {
		t.Errorf("concurrent calls should get distinct pages, got %v", indexes)
	}
}

func TestPage_JSON(t *testing.T) {
	r := newTestRunner()
	page, err := r.Page(context.Background(), "s", annihilation())
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(page)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"uid", "index", "offset", "diagrams", "more"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("page JSON missing %q: %s", key, data)
		}
	}
	if _, ok := decoded["Graphs"]; ok {
		t.Error("graphs should not be serialized")
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner()
	if _, err := r.Page(ctx, "s", annihilation()); err != nil {
		t.Fatal(err)
	}
	if err := r.Reset(ctx, "s"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Page(ctx, "s", nil); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expected SESSION_NOT_FOUND after reset, got %v", err)
	}
	if err := r.Reset(ctx, "never-existed"); err != nil {
		t.Errorf("resetting an unknown session should succeed: %v", err)
	}
}

func TestPage_Hooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetPagerHooks(hooks)

	ctx := context.Background()
	r := newTestRunner()
	r.Page(ctx, "s", annihilation())
	r.Page(ctx, "s", nil)
	r.Reset(ctx, "s")

	want := []string{"created", "start", "complete", "start", "complete", "deleted"}
	if !reflect.DeepEqual(hooks.events, want) {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

type recordingHooks struct {
	observability.NoopPagerHooks
	events []string
}

func (h *recordingHooks) OnPageStart(context.Context, string, int) {
	h.events = append(h.events, "start")
}

func (h *recordingHooks) OnPageComplete(context.Context, string, int, int, int, time.Duration, error) {
	h.events = append(h.events, "complete")
}

func (h *recordingHooks) OnSessionCreated(context.Context, string) {
	h.events = append(h.events, "created")
}

func (h *recordingHooks) OnSessionDeleted(context.Context, string) {
	h.events = append(h.events, "deleted")
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(nil, c, nil, log.New(stdio.Discard))

	first, err := r.Count(ctx, *annihilation(), false)
	if err != nil {
		t.Fatal(err)
	}
	if first.Diagrams != 24 || first.Cached {
		t.Errorf("first count = %+v", first)
	}

	second, err := r.Count(ctx, *annihilation(), false)
	if err != nil {
		t.Fatal(err)
	}
	if second.Diagrams != 24 || !second.Cached || second.Attempts != first.Attempts {
		t.Errorf("second count should come from cache: %+v", second)
	}

	fresh, err := r.Count(ctx, *annihilation(), true)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Cached {
		t.Error("refresh should bypass the cache")
	}
}

func TestCount_Errors(t *testing.T) {
	r := newTestRunner()
	if _, err := r.Count(context.Background(), io.Request{Interactions: []string{"x", "x"}}, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Count(ctx, *annihilation(), false); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
