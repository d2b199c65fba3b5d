// Package pager serves enumerated diagrams a page at a time.
//
// A [Runner] keeps one browsing session per client id. The first call for a
// session builds the graph from the client's request and starts a fresh
// enumeration; every later call resumes the enumeration from the cursor saved
// in the session store, pulls the next page, and saves the new cursor. The
// store only ever holds serialized state, so any [session.Store] backend can
// serve any number of server instances.
//
// Each page reports whether more diagrams follow. The runner finds out by
// pulling one diagram beyond the page after the cursor has been captured, so
// the lookahead diagram is produced again, not skipped, by the next call.
//
// [Runner.Count] exhausts an enumeration and caches the total per request.
package pager
