package imaging

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stats accumulates counters and byte totals across one run. A single
// Stats is created by Walker.Run and shared by pointer with every
// directory visit.
type Stats struct {
	RunID           string
	Root            string // resolved absolute root of the run
	Started         time.Time
	Finished        time.Time
	Succeeded       int
	Failed          int
	Planned         int
	OriginalBytes   int64
	CompressedBytes int64
}

// NewStats returns an empty Stats stamped with a fresh run ID.
func NewStats() *Stats {
	return &Stats{
		RunID:   uuid.New().String(),
		Started: time.Now(),
	}
}

// Fold records one outcome. Failures only bump the failure count.
func (s *Stats) Fold(o Outcome) {
	if !o.OK() {
		s.Failed++
		return
	}
	s.Succeeded++
	s.OriginalBytes += o.OriginalBytes
	s.CompressedBytes += o.CompressedBytes
}

// Visited is the number of eligible images the codec was run on.
func (s *Stats) Visited() int {
	return s.Succeeded + s.Failed
}

// Saved returns the byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *Stats) Saved() int64 {
	return s.OriginalBytes - s.CompressedBytes
}

// SavedPercent returns Saved as a percentage of the original total. The
// second result is false when there is nothing to divide by.
func (s *Stats) SavedPercent() (float64, bool) {
	if s.OriginalBytes == 0 {
		return 0, false
	}
	return float64(s.Saved()) / float64(s.OriginalBytes) * 100, true
}

// Elapsed is the wall time of the run, or the time so far if it has not
// finished.
func (s *Stats) Elapsed() time.Duration {
	end := s.Finished
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.Started)
}

// Render returns the plain-text summary block.
func (s *Stats) Render() string {
	var b strings.Builder
	if s.Planned > 0 {
		fmt.Fprintf(&b, "Planned: %d\n", s.Planned)
	}
	fmt.Fprintf(&b, "Processed: %d\n", s.Succeeded)
	if s.Failed > 0 {
		fmt.Fprintf(&b, "Failed: %d\n", s.Failed)
	}
	if s.Succeeded > 0 {
		if pct, ok := s.SavedPercent(); ok {
			fmt.Fprintf(&b, "Saved: %s (%.1f%%)\n", FormatDelta(s.Saved()), pct)
		}
	}
	fmt.Fprintf(&b, "Elapsed: %s\n", s.Elapsed().Round(time.Millisecond))
	return b.String()
}
