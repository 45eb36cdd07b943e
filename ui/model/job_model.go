package model

import (
	"sync"
	"sync/atomic"
	"time"
)

// JobModel tracks the single retrain job the panel may run at a time.
// The zero value is idle and usable. Safe for concurrent use because the job
// finishes on its own goroutine while the UI polls.
type JobModel struct {
	running atomic.Bool

	mu        sync.Mutex
	outputDir string
	started   time.Time
	finished  time.Time
	lastErr   error
}

// Start marks a job as running. It reports false if one already is.
func (m *JobModel) Start(now time.Time) bool {
	if m == nil {
		return false
	}
	if !m.running.CompareAndSwap(false, true) {
		return false
	}
	m.mu.Lock()
	m.outputDir = ""
	m.started = now
	m.finished = time.Time{}
	m.lastErr = nil
	m.mu.Unlock()
	return true
}

// SetOutputDir records where the running job writes.
func (m *JobModel) SetOutputDir(dir string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.outputDir = dir
	m.mu.Unlock()
}

// Finish stores the outcome and marks the model idle.
func (m *JobModel) Finish(err error, now time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.lastErr = err
	m.finished = now
	m.mu.Unlock()
	m.running.Store(false)
}

func (m *JobModel) Running() bool {
	if m == nil {
		return false
	}
	return m.running.Load()
}

// Status returns the output directory, how long the job has run (or ran,
// once finished) and the last error.
func (m *JobModel) Status(now time.Time) (dir string, elapsed time.Duration, err error) {
	if m == nil {
		return "", 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started.IsZero() {
		return m.outputDir, 0, m.lastErr
	}
	end := now
	if !m.finished.IsZero() {
		end = m.finished
	}
	return m.outputDir, end.Sub(m.started), m.lastErr
}
