package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/jigsaw/pkg/observability"
)

// Spinner is a stderr progress indicator that stops with its context.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	started bool
	once    sync.Once

	mu      sync.Mutex
	message string
	width   int
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       os.Stderr,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				line := styleIconSpinner.Render(s.frames[i%len(s.frames)]) + " " + StyleDim.Render(s.message)
				s.width = max(s.width, len(s.message)+4)
				fmt.Fprintf(s.w, "\r%s", line)
				s.mu.Unlock()
			}
		}
	}()
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop stops the spinner and clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.cancel()
	s.once.Do(func() { close(s.done) })
	if s.started {
		<-s.stopped
	}
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", max(s.width, len(s.message)+4)))
}

// Cancelled reports whether the spinner stopped because its parent context ended
// rather than through Stop.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.done:
		return false
	default:
		return s.ctx.Err() != nil
	}
}

// rasterProgress counts rasterized pieces and shows the count on a spinner.
type rasterProgress struct {
	observability.NoopRasterHooks
	spinner *Spinner
	total   int
	done    atomic.Int64
	failed  atomic.Int64
}

func newRasterProgress(s *Spinner, total int) *rasterProgress {
	return &rasterProgress{spinner: s, total: total}
}

func (p *rasterProgress) OnRaster(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	n := p.done.Add(1)
	if err != nil {
		p.failed.Add(1)
	}
	p.spinner.Update(p.message(int(n)))
}

func (p *rasterProgress) message(n int) string {
	msg := fmt.Sprintf("Rasterizing pieces %d/%d", n, p.total)
	if f := p.failed.Load(); f > 0 {
		msg += fmt.Sprintf(" (%d failed)", f)
	}
	return msg
}
