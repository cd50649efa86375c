package monitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogBufferCapacity(t *testing.T) {
	b := NewLogBuffer(3)
	for i := 0; i < 5; i++ {
		b.Append("INFO", fmt.Sprintf("line %d", i))
	}
	entries := b.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "line 2" || entries[2].Message != "line 4" {
		t.Fatalf("expected oldest entries discarded, got %v", entries)
	}
}

func TestLogBufferFormatted(t *testing.T) {
	b := NewLogBuffer(5)
	b.Append("ERROR", "boom")
	lines := b.Formatted()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ERROR: boom") {
		t.Fatalf("unexpected format: %q", lines[0])
	}
}

func TestLogBufferConcurrentAppend(t *testing.T) {
	b := NewLogBuffer(10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Append("INFO", "x")
				_ = b.Entries()
			}
		}()
	}
	wg.Wait()
	if n := len(b.Entries()); n != 10 {
		t.Fatalf("expected buffer capped at 10, got %d", n)
	}
}

func TestSamplerServesLatestSnapshot(t *testing.T) {
	s := NewSystemSampler(5 * time.Millisecond)
	var calls int
	var mu sync.Mutex
	s.sample = func(context.Context) (Stats, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return Stats{CPUPercent: float64(calls), SampledAt: time.Now()}, nil
	}
	s.Start()
	defer func() {
		s.Stop()
		s.Wait()
	}()

	deadline := time.Now().Add(time.Second)
	for s.Stats().CPUPercent < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("sampler never refreshed the snapshot")
		}
		time.Sleep(2 * time.Millisecond)
	}
	if s.Stats().SampledAt.IsZero() {
		t.Fatalf("expected sample timestamp set")
	}
}

func TestSamplerKeepsLastSnapshotOnError(t *testing.T) {
	s := NewSystemSampler(time.Millisecond)
	first := true
	s.sample = func(context.Context) (Stats, error) {
		if first {
			first = false
			return Stats{CPUPercent: 42}, nil
		}
		return Stats{}, errors.New("sample failed")
	}
	s.Start()
	deadline := time.Now().Add(time.Second)
	for s.Stats().CPUPercent != 42 {
		if time.Now().After(deadline) {
			t.Fatalf("first sample never landed")
		}
		time.Sleep(time.Millisecond)
	}
	s.Stop()
	s.Wait()
	if got := s.Stats().CPUPercent; got != 42 {
		t.Fatalf("expected stale snapshot retained, got %v", got)
	}
}

func TestSamplerStopsPromptly(t *testing.T) {
	s := NewSystemSampler(time.Hour)
	s.sample = func(context.Context) (Stats, error) { return Stats{}, nil }
	s.Start()
	s.Stop()
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sampler did not stop")
	}
}
