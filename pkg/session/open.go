package session

import (
	"context"
	"fmt"
)

// Backend names a session storage backend.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendMongo  Backend = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend Backend
	Dir     string // file backend; DefaultDir if empty
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open creates the store described by cfg. An empty backend means memory.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
