package imaging

import (
	"errors"
	"strings"
	"testing"
)

func TestStats_Fold(t *testing.T) {
	s := NewStats()
	s.Fold(Outcome{OriginalBytes: 1000, CompressedBytes: 600})
	s.Fold(Outcome{OriginalBytes: 500, CompressedBytes: 400})
	s.Fold(Outcome{OriginalBytes: 999, CompressedBytes: 1, Err: ErrCodecFailed})

	if s.Succeeded != 2 || s.Failed != 1 {
		t.Errorf("succeeded=%d failed=%d, want 2/1", s.Succeeded, s.Failed)
	}
	if s.Visited() != 3 {
		t.Errorf("Visited() = %d, want 3", s.Visited())
	}
	if s.OriginalBytes != 1500 || s.CompressedBytes != 1000 {
		t.Errorf("bytes = %d -> %d, want 1500 -> 1000", s.OriginalBytes, s.CompressedBytes)
	}
	if s.Saved() != 500 {
		t.Errorf("Saved() = %d, want 500", s.Saved())
	}
	pct, ok := s.SavedPercent()
	if !ok || pct < 33.3 || pct > 33.4 {
		t.Errorf("SavedPercent() = %v, %v, want 33.3, true", pct, ok)
	}
	if s.RunID == "" {
		t.Error("NewStats should stamp a run ID")
	}
}

func TestStats_SavedPercentZeroOriginal(t *testing.T) {
	s := NewStats()
	s.Fold(Outcome{Err: errors.New("boom")})
	if _, ok := s.SavedPercent(); ok {
		t.Error("SavedPercent should report false with no original bytes")
	}
	// A success with zero-byte inputs must not divide by zero either.
	s.Fold(Outcome{})
	if _, ok := s.SavedPercent(); ok {
		t.Error("SavedPercent should report false for empty inputs")
	}
	if strings.Contains(s.Render(), "Saved") {
		t.Errorf("Render printed a savings line without original bytes:\n%s", s.Render())
	}
}

func TestStats_Render(t *testing.T) {
	tests := []struct {
		name    string
		stats   Stats
		want    []string
		notWant []string
	}{
		{
			name:    "all succeeded",
			stats:   Stats{Succeeded: 3, OriginalBytes: 4096, CompressedBytes: 1024},
			want:    []string{"Processed: 3", "Saved: 3.0 KiB (75.0%)"},
			notWant: []string{"Failed", "Planned"},
		},
		{
			name:  "with failures",
			stats: Stats{Succeeded: 1, Failed: 2, OriginalBytes: 100, CompressedBytes: 50},
			want:  []string{"Processed: 1", "Failed: 2", "Saved: 50 B (50.0%)"},
		},
		{
			name:    "only failures",
			stats:   Stats{Failed: 2},
			want:    []string{"Processed: 0", "Failed: 2"},
			notWant: []string{"Saved"},
		},
		{
			name:  "grew",
			stats: Stats{Succeeded: 1, OriginalBytes: 100, CompressedBytes: 150},
			want:  []string{"Saved: - 50 B (-50.0%)"},
		},
		{
			name:    "dry run",
			stats:   Stats{Planned: 4},
			want:    []string{"Planned: 4", "Processed: 0"},
			notWant: []string{"Saved", "Failed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.stats.Render()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render() missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("Render() should not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"typical photo", 3355443, "3.2 MiB"},
		{"negative", -2048, "-2.0 KiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	if _, ok := PercentChange(0, 10); ok {
		t.Error("PercentChange(0, _) should report false")
	}
	if got, ok := PercentChange(200, 50); !ok || got != 75 {
		t.Errorf("PercentChange(200, 50) = %v, %v, want 75, true", got, ok)
	}
}
