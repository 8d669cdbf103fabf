// Package stats keeps rolling-window parse statistics for the HTTP API.
package stats

import (
	"slices"
	"sync"
	"time"

	"github.com/dgallion1/jobpost/internal/posting"
)

type sample struct {
	timestamp       time.Time
	durationUs      int64
	headers         int
	unknownHeadings int
	noHeaders       bool
}

// Snapshot is a point-in-time aggregate of parse samples.
type Snapshot struct {
	Count           int     `json:"count"`
	MinUs           int64   `json:"min_us"`
	MaxUs           int64   `json:"max_us"`
	AvgUs           float64 `json:"avg_us"`
	P50Us           float64 `json:"p50_us"`
	P95Us           float64 `json:"p95_us"`
	P99Us           float64 `json:"p99_us"`
	Headers         int     `json:"headers"`
	UnknownHeadings int     `json:"unknown_headings"`
	NoHeaders       int     `json:"no_headers"`
	Total           uint64  `json:"total"`
	WindowSeconds   float64 `json:"window_seconds"`
}

// Recorder tracks recent parses within a rolling window. It implements
// posting.Observer.
type Recorder struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	total   uint64
	now     func() time.Time
}

var _ posting.Observer = (*Recorder)(nil)

func NewRecorder(maxAge time.Duration) *Recorder {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Recorder{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// ObserveParse records one parse outcome.
func (s *Recorder) ObserveParse(o posting.Outcome) {
	us := o.Duration.Microseconds()
	if us < 0 {
		us = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.total++
	s.samples = append(s.samples, sample{
		timestamp:       now,
		durationUs:      us,
		headers:         o.Headers,
		unknownHeadings: o.UnknownHeadings,
		noHeaders:       o.NoHeaders,
	})
}

func (s *Recorder) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	snap := Snapshot{Total: s.total, WindowSeconds: s.maxAge.Seconds()}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationUs)
		sum += sm.durationUs
		snap.Headers += sm.headers
		snap.UnknownHeadings += sm.unknownHeadings
		if sm.noHeaders {
			snap.NoHeaders++
		}
	}
	slices.Sort(values)

	snap.Count = len(values)
	snap.MinUs = values[0]
	snap.MaxUs = values[len(values)-1]
	snap.AvgUs = float64(sum) / float64(len(values))
	snap.P50Us = percentile(values, 50)
	snap.P95Us = percentile(values, 95)
	snap.P99Us = percentile(values, 99)
	return snap
}

func (s *Recorder) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
