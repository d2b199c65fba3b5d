package pager

import (
	"context"
	"time"

	"github.com/matzehuels/autofeyn/pkg/cache"
	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/io"
	"github.com/matzehuels/autofeyn/pkg/observability"
)

// CountResult is the total number of diagrams for a request.
type CountResult struct {
	Diagrams int           `json:"diagrams"`
	Attempts int           `json:"attempts"` // pairings the search made
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"duration"`
}

type countEntry struct {
	Diagrams int `json:"diagrams"`
	Attempts int `json:"attempts"`
}

// Count returns the number of diagrams req produces, using the cache when
// possible. Set refresh to ignore a cached value.
func (r *Runner) Count(ctx context.Context, req io.Request, refresh bool) (*CountResult, error) {
	g, err := req.Graph()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	key := r.Keyer.CountKey(req.Canonical())

	if !refresh {
		var entry countEntry
		if hit, err := cache.GetJSON(ctx, r.Cache, key, &entry); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "count")
			r.Logger.Debug("count cache hit", "diagrams", entry.Diagrams)
			return &CountResult{Diagrams: entry.Diagrams, Attempts: entry.Attempts, Cached: true, Duration: time.Since(start)}, nil
		}
		observability.Cache().OnCacheMiss(ctx, "count")
	}

	e := diagram.Enumerate(g)
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := e.Next(); !ok {
			break
		}
		n++
	}

	entry := countEntry{Diagrams: n, Attempts: e.Attempts()}
	if size, err := cache.SetJSON(ctx, r.Cache, key, entry, r.CountTTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "count", size)
	}

	result := &CountResult{Diagrams: n, Attempts: e.Attempts(), Duration: time.Since(start)}
	r.Logger.Info("counted diagrams",
		"diagrams", n,
		"attempts", result.Attempts,
		"duration", result.Duration)
	return result, nil
}
