package debug

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	s := Read()
	if s.Goroutines == 0 {
		t.Fatalf("expected at least one goroutine")
	}
	if s.HeapAlloc == 0 {
		t.Fatalf("expected non-zero heap")
	}
}

type countingWriter struct{ n chan struct{} }

func (w *countingWriter) Write(p []byte) (int, error) {
	select {
	case w.n <- struct{}{}:
	default:
	}
	return len(p), nil
}

func TestStartRuntimeLogger_StopsOnCancel(t *testing.T) {
	w := &countingWriter{n: make(chan struct{}, 1)}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx, cancel := context.WithCancel(context.Background())
	StartRuntimeLogger(ctx, 5*time.Millisecond, logger)
	select {
	case <-w.n:
	case <-time.After(2 * time.Second):
		t.Fatalf("no runtime sample logged")
	}
	cancel()
}
