// Package monitor hosts the background samplers feeding read-only
// snapshots to the render loop: system resource stats and a bounded
// ring of recent log lines.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/scrapeworks/scrape-console/internal/logging/events"
)

// errBackoff stretches the poll interval after a failed sample.
const errBackoff = 5 * time.Second

// Stats is one immutable resource snapshot.
type Stats struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
	NetBytesSent  uint64
	NetBytesRecv  uint64
	SampledAt     time.Time
}

// sampleFunc collects one snapshot; swapped out in tests.
type sampleFunc func(context.Context) (Stats, error)

// SystemSampler polls resource usage at a fixed interval and serves the
// most recent snapshot without ever blocking the reader.
type SystemSampler struct {
	interval time.Duration
	sample   sampleFunc

	mu    sync.RWMutex
	stats Stats

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewSystemSampler creates a sampler polling every interval.
func NewSystemSampler(interval time.Duration) *SystemSampler {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SystemSampler{
		interval: interval,
		sample:   sampleSystem,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the background poll loop. Safe to call once.
func (s *SystemSampler) Start() {
	s.once.Do(func() {
		s.wg.Add(1)
		go s.loop()
	})
}

// Stop cancels the poll loop. The current sample finishes first.
func (s *SystemSampler) Stop() {
	s.cancel()
}

// Wait blocks until the poll loop has exited. Call after Stop when a
// clean shutdown is required.
func (s *SystemSampler) Wait() {
	s.wg.Wait()
}

// Stats returns the most recent snapshot, stale-but-available.
func (s *SystemSampler) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *SystemSampler) loop() {
	defer s.wg.Done()
	delay := time.Duration(0)
	for {
		timer := time.NewTimer(delay)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		stats, err := s.sample(s.ctx)
		if err != nil {
			events.Monitor.SampleError(err)
			delay = errBackoff
			continue
		}
		s.mu.Lock()
		s.stats = stats
		s.mu.Unlock()
		delay = s.interval
	}
}

func sampleSystem(ctx context.Context) (Stats, error) {
	stats := Stats{SampledAt: time.Now()}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		return stats, err
	} else if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats, err
	}
	stats.MemoryPercent = vm.UsedPercent
	du, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return stats, err
	}
	stats.DiskPercent = du.UsedPercent
	counters, err := gnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return stats, err
	}
	if len(counters) > 0 {
		stats.NetBytesSent = counters[0].BytesSent
		stats.NetBytesRecv = counters[0].BytesRecv
	}
	return stats, nil
}
