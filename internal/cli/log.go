// Package cli implements the autofeyn command-line interface.
//
// Commands complete partial QED diagrams from flags or request files, count
// them, browse them page by page in the terminal, and serve them over HTTP.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - enumerate: List the diagrams of a request as text or JSON
//   - count: Count the diagrams of a request, with a result cache
//   - browse: Page through diagrams interactively
//   - serve: Run the HTTP paging API
//   - particles: Show the particle and interaction catalogue
//   - sessions, cache: Manage on-disk state
//
// # Logging
//
// Commands log through charmbracelet/log on stderr and find their logger in
// the command context. --verbose (-v) lowers the level to debug.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a text logger that stamps lines with wall-clock time
// to the hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetReportTimestamp(true)
	l.SetTimeFormat("15:04:05.00")
	l.SetLevel(level)
	return l
}

// progress times one step of a command and logs its outcome once.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Enumerated 24 diagrams (3ms)".
func (p *progress) done(format string, args ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(fmt.Sprintf(format, args...) + " (" + elapsed.String() + ")")
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
