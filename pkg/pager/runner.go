package pager

import (
	"context"
	stderrors "errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autofeyn/pkg/cache"
	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/io"
	"github.com/matzehuels/autofeyn/pkg/observability"
	"github.com/matzehuels/autofeyn/pkg/session"
)

// DefaultPageSize is the number of diagrams per page.
const DefaultPageSize = 9

// Page is one batch of diagrams for a session.
type Page struct {
	SessionID string           `json:"uid"`
	Index     int              `json:"index"`  // zero-based page number
	Offset    int              `json:"offset"` // diagrams served before this page
	Diagrams  []io.Diagram     `json:"diagrams"`
	More      bool             `json:"more"`
	Graphs    []*diagram.Graph `json:"-"`
}

// Runner pages through enumerations on behalf of browsing sessions.
//
// A Runner holds no enumeration state of its own; everything lives in the
// session store. Requests for the same session are serialized within one
// Runner.
type Runner struct {
	Store    session.Store
	Cache    cache.Cache
	Keyer    cache.Keyer
	PageSize int
	TTL      time.Duration // session lifetime, refreshed on every page
	CountTTL time.Duration // lifetime of cached counts; zero keeps them
	Logger   *log.Logger

	locks [64]sync.Mutex
}

// NewRunner creates a runner over store.
// If store is nil, an in-memory store is used.
// If cache is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(store session.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if store == nil {
		store = session.NewMemoryStore()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:    store,
		Cache:    c,
		Keyer:    keyer,
		PageSize: DefaultPageSize,
		TTL:      session.DefaultTTL,
		Logger:   logger,
	}
}

func (r *Runner) lock(uid string) func() {
	h := fnv.New32a()
	h.Write([]byte(uid))
	mu := &r.locks[h.Sum32()%uint32(len(r.locks))]
	mu.Lock()
	return mu.Unlock
}

// Page returns the next page for session uid.
//
// If the store has no live session for uid, req describes the diagram to
// enumerate and a new session is started at page 0; an empty uid gets a
// generated id. If the session exists, req is ignored. A missing session
// without req is reported as errors.ErrCodeSessionNotFound, an expired one
// as errors.ErrCodeSessionExpired.
func (r *Runner) Page(ctx context.Context, uid string, req *io.Request) (page *Page, err error) {
	if uid == "" {
		uid = session.GenerateID()
	}
	if err := errors.ValidateSessionID(uid); err != nil {
		return nil, err
	}
	unlock := r.lock(uid)
	defer unlock()

	sess, err := r.Store.Get(ctx, uid)
	switch {
	case stderrors.Is(err, session.ErrExpired):
		observability.Pager().OnSessionExpired(ctx, uid)
		if req == nil {
			return nil, errors.New(errors.ErrCodeSessionExpired, "session %s has expired", uid)
		}
		sess = nil
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load session %s", uid)
	}

	var e *diagram.Enumerator
	if sess == nil {
		if req == nil {
			return nil, errors.New(errors.ErrCodeSessionNotFound, "no session %s and no request data", uid)
		}
		g, err := req.Graph()
		if err != nil {
			return nil, err
		}
		if sess, err = session.New(uid, *req, r.ttl()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create session")
		}
		e = diagram.Enumerate(g)
		observability.Pager().OnSessionCreated(ctx, uid)
		r.Logger.Debug("started session", "session", uid, "legs", g.Size())
	} else {
		g, err := sess.Request.Graph()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "rebuild graph for session %s", uid)
		}
		if e, err = diagram.Resume(g, sess.Cursor); err != nil {
			return nil, err
		}
	}

	start, index := time.Now(), sess.Page
	observability.Pager().OnPageStart(ctx, uid, index)
	defer func() {
		n := 0
		if page != nil {
			n = len(page.Diagrams)
		}
		observability.Pager().OnPageComplete(ctx, uid, index, n, e.Attempts(), time.Since(start), err)
	}()

	graphs, err := pull(ctx, e, r.pageSize())
	if err != nil {
		return nil, err
	}
	cursor := e.Cursor()
	_, more := e.Next()

	page = &Page{
		SessionID: uid,
		Index:     index,
		Offset:    sess.Served,
		Diagrams:  io.ExportAll(graphs),
		More:      more,
		Graphs:    graphs,
	}

	sess.Cursor = cursor
	sess.Page++
	sess.Served += len(graphs)
	sess.Touch(r.ttl())
	if err := r.Store.Set(ctx, sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "save session %s", uid)
	}

	r.Logger.Info("served page",
		"session", uid,
		"page", page.Index,
		"diagrams", len(graphs),
		"more", more)
	return page, nil
}

// pull takes up to n completions, checking ctx between pulls.
func pull(ctx context.Context, e *diagram.Enumerator, n int) ([]*diagram.Graph, error) {
	out := make([]*diagram.Graph, 0, n)
	for len(out) < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, ok := e.Next()
		if !ok {
			break
		}
		out = append(out, g)
	}
	return out, nil
}

// Reset forgets session uid. Resetting an unknown session is not an error.
func (r *Runner) Reset(ctx context.Context, uid string) error {
	if err := errors.ValidateSessionID(uid); err != nil {
		return err
	}
	unlock := r.lock(uid)
	defer unlock()

	if err := r.Store.Delete(ctx, uid); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete session %s", uid)
	}
	observability.Pager().OnSessionDeleted(ctx, uid)
	r.Logger.Debug("reset session", "session", uid)
	return nil
}

func (r *Runner) pageSize() int {
	if r.PageSize < 1 {
		return DefaultPageSize
	}
	return r.PageSize
}

func (r *Runner) ttl() time.Duration {
	if r.TTL <= 0 {
		return session.DefaultTTL
	}
	return r.TTL
}
