package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Spinner animates a status line on stderr while a count runs, with the
// elapsed time next to the message. Cancelling its context clears it.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	message string

	once sync.Once
	quit chan struct{}
	idle chan struct{}

	mu    sync.Mutex
	width int // widest line drawn, for clearing
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       os.Stderr,
		ctx:     ctx,
		cancel:  cancel,
		message: message,
		quit:    make(chan struct{}),
		idle:    make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	go s.run(time.Now())
}

func (s *Spinner) run(start time.Time) {
	defer close(s.idle)
	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	const frames = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"
	runes := []rune(frames)
	for i := 0; ; i++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			s.clear()
			return
		case <-tick.C:
			line := fmt.Sprintf("%s %s", s.message, time.Since(start).Truncate(time.Second))
			s.mu.Lock()
			s.width = max(s.width, len(line))
			fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(string(runes[i%len(runes)])), StyleDim.Render(line))
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width+4)+"\r")
}

// Stop halts the animation and clears the line. Later calls do nothing.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.idle
		s.cancel()
		s.clear()
	})
}

// StopWithError stops the spinner and reports message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
