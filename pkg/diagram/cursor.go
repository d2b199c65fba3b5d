package diagram

import "github.com/matzehuels/autofeyn/pkg/errors"

// Cursor is a serializable snapshot of an enumerator's search state. It is
// only meaningful together with the graph the enumerator was started from.
//
// The zero Cursor describes an exhausted search.
type Cursor struct {
	Frames   []FrameState `json:"frames"`
	Attempts int          `json:"attempts,omitempty"`
}

// FrameState is one level of a Cursor.
type FrameState struct {
	Via  int `json:"via"`  // pool position in the parent frame, -1 for the root
	Scan int `json:"scan"` // next pool position to try
}

// Done reports whether the cursor describes an exhausted search.
func (c Cursor) Done() bool { return len(c.Frames) == 0 }

// Cursor captures the current search state.
func (e *Enumerator) Cursor() Cursor {
	c := Cursor{
		Frames:   make([]FrameState, len(e.stack)),
		Attempts: e.attempts,
	}
	for i, f := range e.stack {
		c.Frames[i] = FrameState{Via: f.via, Scan: f.scan}
	}
	return c
}

// Resume rebuilds an enumerator from a cursor taken from an enumerator over
// g. Each frame is replayed against g and validated; a cursor that does not
// fit g is reported as errors.ErrCodeInvalidCursor.
func Resume(g *Graph, c Cursor) (*Enumerator, error) {
	e := &Enumerator{root: g, attempts: c.Attempts}
	if c.Done() {
		return e, nil
	}
	if c.Attempts < 0 {
		return nil, errors.New(errors.ErrCodeInvalidCursor, "negative attempt count")
	}

	e.stack = make([]frame, 0, len(c.Frames))
	for depth, fs := range c.Frames {
		var cur *Graph
		if depth == 0 {
			if fs.Via != -1 {
				return nil, errors.New(errors.ErrCodeInvalidCursor, "root frame has via %d", fs.Via)
			}
			cur = g
		} else {
			parent := e.stack[depth-1]
			last := len(parent.g.pool) - 1
			if fs.Via < 0 || fs.Via >= last {
				return nil, errors.New(errors.ErrCodeInvalidCursor, "frame %d: via %d out of range", depth, fs.Via)
			}
			if parent.scan != fs.Via-1 {
				return nil, errors.New(errors.ErrCodeInvalidCursor, "frame %d: parent scan %d does not precede via %d", depth, parent.scan, fs.Via)
			}
			if !parent.g.IsCompatiblePair(parent.g.pool[last], parent.g.pool[fs.Via]) {
				return nil, errors.New(errors.ErrCodeInvalidCursor, "frame %d: incompatible pair", depth)
			}
			cur = parent.g.branch(fs.Via)
		}
		if fs.Scan < -2 || fs.Scan > len(cur.pool)-2 {
			return nil, errors.New(errors.ErrCodeInvalidCursor, "frame %d: scan %d out of range", depth, fs.Scan)
		}
		e.stack = append(e.stack, frame{g: cur, via: fs.Via, scan: fs.Scan})
	}
	return e, nil
}
