package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerBasic(t *testing.T) {
	var out syncBuffer
	s := newSpinner("Testing...")
	s.w = &out
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("explicit Stop reported as cancellation")
	}
	if !strings.Contains(out.String(), "Testing...") {
		t.Errorf("spinner never drew its message: %q", out.String())
	}
}

func TestSpinnerUpdate(t *testing.T) {
	var out syncBuffer
	s := newSpinner("first")
	s.w = &out
	s.Start()
	s.Update("second message")
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "second message") {
		t.Errorf("updated message not drawn: %q", out.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.w = &syncBuffer{}
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.w = &syncBuffer{}
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.w = &syncBuffer{}
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner("never started")
	s.w = &syncBuffer{}
	s.Stop()
}

func TestRasterProgress(t *testing.T) {
	s := newSpinner("")
	s.w = &syncBuffer{}
	p := newRasterProgress(s, 4)

	ctx := context.Background()
	p.OnRaster(ctx, "canvas", 0, 0, time.Millisecond, nil)
	p.OnRaster(ctx, "canvas", 0, 1, time.Millisecond, errors.New("boom"))

	s.mu.Lock()
	msg := s.message
	s.mu.Unlock()
	if msg != "Rasterizing pieces 2/4 (1 failed)" {
		t.Errorf("message = %q", msg)
	}
}
