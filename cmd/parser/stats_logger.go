package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"pokervr-matchlog/internal/ipc"
)

// statsLogger logs parse throughput and heap use every N finished hands.
// Workers report concurrently, so it is guarded by a mutex.
type statsLogger struct {
	mu       sync.Mutex
	output   *ipc.Output
	every    int
	started  time.Time
	lastDone int
	now      func() time.Time
}

// newStatsLogger returns a logger that writes one entry per every hands.
// every <= 0 turns it off.
func newStatsLogger(output *ipc.Output, every int) *statsLogger {
	return &statsLogger{output: output, every: every, started: time.Now(), now: time.Now}
}

// observe records that done of total hands have finished.
func (s *statsLogger) observe(done, total int) {
	if s.every <= 0 {
		return
	}

	s.mu.Lock()
	if done-s.lastDone < s.every && done != total {
		s.mu.Unlock()
		return
	}
	s.lastDone = done
	elapsed := s.now().Sub(s.started).Seconds()
	s.mu.Unlock()

	rate := 0.0
	if elapsed > 0 {
		rate = float64(done) / elapsed
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.output.Log("info", fmt.Sprintf("Hands %d/%d, %.0f hands/s, HeapInuse=%.1fMB",
		done, total, rate, float64(m.HeapInuse)/(1024*1024)))
}
