//go:build integration

package session

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("AUTOFEYN_REDIS_ADDR")
	if addr == "" {
		t.Skip("AUTOFEYN_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "autofeyn:test:"})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer store.Close()
	testStore(t, store)
}

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("AUTOFEYN_MONGO_URI")
	if uri == "" {
		t.Skip("AUTOFEYN_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "autofeyn_test"})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer store.Close()
	testStore(t, store)
	testExpiry(t, store)
}
