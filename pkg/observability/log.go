package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failures are
// logged at warn level. It implements all hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h as the pager, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetPagerHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnPageStart(_ context.Context, sessionID string, page int) {
	h.logger.Debug("page start", "session", sessionID, "page", page)
}

func (h *LogHooks) OnPageComplete(_ context.Context, sessionID string, page, diagrams, attempts int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("page failed", "session", sessionID, "page", page, "error", err)
		return
	}
	h.logger.Debug("page complete", "session", sessionID, "page", page, "diagrams", diagrams, "attempts", attempts, "took", d)
}

func (h *LogHooks) OnSessionCreated(_ context.Context, sessionID string) {
	h.logger.Debug("session created", "session", sessionID)
}

func (h *LogHooks) OnSessionExpired(_ context.Context, sessionID string) {
	h.logger.Debug("session expired", "session", sessionID)
}

func (h *LogHooks) OnSessionDeleted(_ context.Context, sessionID string) {
	h.logger.Debug("session deleted", "session", sessionID)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("response", "method", method, "path", path, "status", status, "took", d)
		return
	}
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

var (
	_ PagerHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
