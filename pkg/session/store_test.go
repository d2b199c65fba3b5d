package session

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/io"
)

func sampleSession(t *testing.T, ttl time.Duration) *Session {
	t.Helper()
	sess, err := New("", io.Request{
		IncomingElectrons: []string{"i1"},
		IncomingPositrons: []string{"i2"},
		OutgoingPhotons:   []string{"o1"},
		Interactions:      []string{"v1", "v2", "v3"},
	}, ttl)
	if err != nil {
		t.Fatal(err)
	}
	sess.Cursor = diagram.Cursor{
		Frames:   []diagram.FrameState{{Via: -1, Scan: 7}, {Via: 8, Scan: 3}},
		Attempts: 12,
	}
	sess.Page = 2
	sess.Served = 18
	return sess
}

// testStore runs the behaviour every backend must share.
func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		sess, err := store.Get(ctx, GenerateID())
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if sess != nil {
			t.Errorf("expected nil session, got %+v", sess)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		want := sampleSession(t, time.Hour)
		if err := store.Set(ctx, want); err != nil {
			t.Fatalf("Set error: %v", err)
		}
		got, err := store.Get(ctx, want.ID)
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if got == nil {
			t.Fatal("expected session")
		}
		if !reflect.DeepEqual(got.Request, want.Request) {
			t.Errorf("request: got %+v, want %+v", got.Request, want.Request)
		}
		if !reflect.DeepEqual(got.Cursor, want.Cursor) {
			t.Errorf("cursor: got %+v, want %+v", got.Cursor, want.Cursor)
		}
		if got.Page != want.Page || got.Served != want.Served {
			t.Errorf("progress: got page %d served %d", got.Page, got.Served)
		}
		if !got.ExpiresAt.Equal(want.ExpiresAt) {
			t.Errorf("expiry: got %v, want %v", got.ExpiresAt, want.ExpiresAt)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		sess := sampleSession(t, time.Hour)
		if err := store.Set(ctx, sess); err != nil {
			t.Fatal(err)
		}
		sess.Page = 7
		if err := store.Set(ctx, sess); err != nil {
			t.Fatal(err)
		}
		got, err := store.Get(ctx, sess.ID)
		if err != nil || got == nil {
			t.Fatalf("Get: %v, %v", got, err)
		}
		if got.Page != 7 {
			t.Errorf("Page = %d, want 7", got.Page)
		}
	})

	t.Run("delete", func(t *testing.T) {
		sess := sampleSession(t, time.Hour)
		if err := store.Set(ctx, sess); err != nil {
			t.Fatal(err)
		}
		if err := store.Delete(ctx, sess.ID); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		got, err := store.Get(ctx, sess.ID)
		if err != nil || got != nil {
			t.Errorf("after delete: got %v, %v", got, err)
		}
		if err := store.Delete(ctx, sess.ID); err != nil {
			t.Errorf("second Delete should not fail: %v", err)
		}
	})

	t.Run("cleanup keeps live sessions", func(t *testing.T) {
		sess := sampleSession(t, time.Hour)
		if err := store.Set(ctx, sess); err != nil {
			t.Fatal(err)
		}
		if err := store.Cleanup(ctx); err != nil {
			t.Fatalf("Cleanup error: %v", err)
		}
		got, err := store.Get(ctx, sess.ID)
		if err != nil || got == nil {
			t.Errorf("live session removed by Cleanup: %v, %v", got, err)
		}
	})
}

// testExpiry checks stores that hold expired sessions until read.
func testExpiry(t *testing.T, store Store) {
	ctx := context.Background()
	sess := sampleSession(t, time.Hour)
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, sess.ID)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
	if got != nil {
		t.Error("expired session should not be returned")
	}

	// The expired entry is dropped on read.
	got, err = store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("second read: got %v, %v", got, err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
	testExpiry(t, NewMemoryStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := sampleSession(t, time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	sess.Cursor.Frames[0].Scan = 99
	sess.Request.Interactions[0] = "changed"

	got, _ := store.Get(ctx, sess.ID)
	if got.Cursor.Frames[0].Scan != 7 || got.Request.Interactions[0] != "v1" {
		t.Errorf("stored session shares memory with the caller: %+v", got)
	}
}

func TestMemoryStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	live := sampleSession(t, time.Hour)
	stale := sampleSession(t, time.Hour)
	stale.ExpiresAt = time.Now().Add(-time.Second)
	store.Set(ctx, live)
	store.Set(ctx, stale)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testStore(t, store)
	testExpiry(t, store)
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"", "../escape", "a/b", "with space"} {
		if _, err := store.Get(ctx, id); err == nil {
			t.Errorf("Get(%q) should fail", id)
		}
		sess := sampleSession(t, time.Hour)
		sess.ID = id
		if err := store.Set(ctx, sess); err == nil {
			t.Errorf("Set(%q) should fail", id)
		}
	}
}

func TestFileStore_Clear(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := store.Set(ctx, sampleSession(t, time.Hour)); err != nil {
			t.Fatal(err)
		}
	}
	n, err := store.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d, want 3", n)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("default backend: got %T", store)
	}

	store, err = Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Errorf("file backend: got %T", store)
	}

	if _, err := Open(ctx, Config{Backend: "etcd"}); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestNew(t *testing.T) {
	sess, err := New("", io.Request{}, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if sess.ID == "" {
		t.Error("expected generated ID")
	}
	if sess.IsExpired() {
		t.Error("new session should not be expired")
	}
	if !sess.Cursor.Done() || sess.Page != 0 {
		t.Errorf("new session should start empty: %+v", sess)
	}

	named, _ := New("client-id", io.Request{}, time.Minute)
	if named.ID != "client-id" {
		t.Errorf("ID = %q, want client-id", named.ID)
	}
}
